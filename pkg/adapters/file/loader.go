// Package file loads machine definitions from a directory of YAML and JSON
// files, one machine per file.
package file

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
)

// Loader implements ports.DefinitionLoader and ports.Watchable over a
// directory tree. A machine is named after its file (without extension)
// unless the document sets name explicitly.
type Loader struct {
	root     string
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures the Loader.
type Option func(*Loader)

// WithDebounce sets how long Watch waits for more events before reporting.
func WithDebounce(d time.Duration) Option {
	return func(l *Loader) {
		l.debounce = d
	}
}

// WithLogger sets the logger used for skipped files and watch errors.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a loader rooted at dir. The directory must exist.
func New(dir string, opts ...Option) (*Loader, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open definitions directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}

	l := &Loader{
		root:     abs,
		debounce: 100 * time.Millisecond,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Root returns the absolute directory the loader reads from.
func (l *Loader) Root() string { return l.root }

// LoadFile parses a single definition file. The file name provides the
// machine name when the document has none.
func LoadFile(path string) (domain.Definition, error) {
	format, err := compiler.FormatFromPath(path)
	if err != nil {
		return domain.Definition{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	def, err := compiler.Parse(data, format)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if def.Name == "" {
		def.Name = nameFromPath(path)
	}
	return def, nil
}

// GetDefinition parses the file holding the named machine.
func (l *Loader) GetDefinition(ctx context.Context, name string) (domain.Definition, error) {
	index, err := l.scan(ctx)
	if err != nil {
		return domain.Definition{}, err
	}
	entry, ok := index[name]
	if !ok {
		return domain.Definition{}, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return entry.def, nil
}

// ListDefinitions returns the names of all parseable definitions, sorted.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	index, err := l.scan(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

type entry struct {
	path string
	def  domain.Definition
}

// scan walks the tree and parses every definition file. Files that fail to
// parse are logged and skipped; two files declaring the same name are an
// error.
func (l *Loader) scan(ctx context.Context) (map[string]entry, error) {
	index := make(map[string]entry)
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != l.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isDefinitionFile(path) {
			return nil
		}

		def, err := LoadFile(path)
		if err != nil {
			l.logger.Warn("skipping definition file", "path", path, "err", err)
			return nil
		}
		rel, _ := filepath.Rel(l.root, path)
		if existing, ok := index[def.Name]; ok {
			return fmt.Errorf("collision detected: machine '%s' is defined in both '%s' and '%s'", def.Name, existing.path, rel)
		}
		index[def.Name] = entry{path: rel, def: def}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", l.root, err)
	}
	return index, nil
}

func isDefinitionFile(path string) bool {
	_, err := compiler.FormatFromPath(path)
	return err == nil
}

func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
