// Package loam loads machine definitions from a loam document repository.
// Each document's frontmatter (or JSON/YAML body) holds one definition and
// the markdown body, if any, becomes its description.
package loam

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
)

// Metadata is the raw document data. It stays untyped so that unquoted
// YAML scalars (0, 1) survive until the compiler coerces them.
type Metadata = map[string]any

// Loader adapts a loam typed repository to ports.DefinitionLoader.
type Loader struct {
	Repo *loam.TypedRepository[Metadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[Metadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only, strict loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numbers as json.Number across markdown, JSON and YAML
	// documents; read-only avoids loam's sandbox copy in dev mode.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[Metadata](repo)), nil
}

// GetDefinition retrieves the document whose machine name matches name.
func (l *Loader) GetDefinition(ctx context.Context, name string) (domain.Definition, error) {
	defs, err := l.index(ctx)
	if err != nil {
		return domain.Definition{}, err
	}
	def, ok := defs[name]
	if !ok {
		return domain.Definition{}, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return def, nil
}

// ListDefinitions lists all machine names in the repository, sorted.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	defs, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(defs)), nil
}

func (l *Loader) index(ctx context.Context) (map[string]domain.Definition, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	defs := make(map[string]domain.Definition, len(docs))
	for _, entry := range docs {
		// List leaves Content empty; Get reads the body for the description.
		doc, err := l.Repo.Get(ctx, entry.ID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", entry.ID, err)
		}
		def, err := decodeDocument(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return nil, err
		}
		if existing, ok := seen[def.Name]; ok {
			return nil, fmt.Errorf("collision detected: machine '%s' is defined in both '%s' and '%s'", def.Name, existing, doc.ID)
		}
		seen[def.Name] = doc.ID
		defs[def.Name] = def
	}
	return defs, nil
}

// decodeDocument names the machine after, in order: the name key, the loam
// id key, the document id without extension.
func decodeDocument(docID string, data Metadata, content string) (domain.Definition, error) {
	raw := maps.Clone(data)
	if raw == nil {
		raw = make(Metadata)
	}
	id, _ := raw["id"].(string)
	delete(raw, "id")

	def, err := compiler.Decode(raw)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("document %s: %w", docID, err)
	}

	if def.Name == "" {
		def.Name = id
	}
	if def.Name == "" {
		def.Name = docID
	}
	def.Name = trimExtension(def.Name)

	if def.Description == "" {
		def.Description = strings.TrimSpace(content)
	}
	return def, nil
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
