package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/registry"
)

// ErrInvalidDefinitions is returned by Validate when any definition fails.
var ErrInvalidDefinitions = errors.New("invalid definitions")

// Validate checks definition files and directories, writing one line per
// definition to w. With no targets the workspace directory is checked.
func Validate(ctx context.Context, ws *Workspace, w io.Writer, targets []string) error {
	if len(targets) == 0 {
		targets = []string{ws.Config.Dir}
	}

	failed := 0
	for _, target := range targets {
		results, err := validateTarget(ctx, ws, target)
		if err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", target, err)
			failed++
			continue
		}
		for _, key := range slices.Sorted(maps.Keys(results)) {
			if err := results[key]; err != nil {
				fmt.Fprintf(w, "FAIL %s: %v\n", key, err)
				failed++
				continue
			}
			fmt.Fprintf(w, "ok   %s\n", key)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d failed", ErrInvalidDefinitions, failed)
	}
	return nil
}

// validateTarget returns the outcome for every definition in target. A nil
// entry is a valid machine.
func validateTarget(ctx context.Context, ws *Workspace, target string) (map[string]error, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		name, err := validateFile(target)
		return map[string]error{name: err}, nil
	}
	if ws.Config.Source == SourceLoam {
		return validateRepository(ctx, ws, target)
	}

	results := make(map[string]error)
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != target && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, err := compiler.FormatFromPath(path); err != nil {
			return nil
		}
		name, err := validateFile(path)
		results[name] = err
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// validateFile reports the file by machine name, or by path when it does
// not parse.
func validateFile(path string) (string, error) {
	def, err := file.LoadFile(path)
	if err != nil {
		return path, err
	}
	_, err = turing.New(def)
	return fmt.Sprintf("%s (%s)", def.Name, filepath.Base(path)), err
}

func validateRepository(ctx context.Context, ws *Workspace, dir string) (map[string]error, error) {
	loader, err := openLoader(Config{Dir: dir, Source: SourceLoam}, ws.Logger)
	if err != nil {
		return nil, err
	}
	reg := registry.New(loader, registry.WithLogger(ws.Logger))
	names, err := reg.Names(ctx)
	if err != nil {
		return nil, err
	}
	failures, err := reg.ValidateAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make(map[string]error, len(names))
	for _, name := range names {
		results[name] = failures[name]
	}
	return results, nil
}
