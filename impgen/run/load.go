package run

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"golang.org/x/mod/modfile"
)

// PackageLoader loads the non-test files of the package in a directory.
type PackageLoader interface {
	Load(dir string) ([]*dst.File, error)
	ImportPath(dir string) (string, error)
}

// DirLoader is the PackageLoader backed by the file system.
type DirLoader struct{}

// ImportPath works out dir's import path from the nearest enclosing go.mod.
func (DirLoader) ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for root := abs; ; root = filepath.Dir(root) {
		data, err := os.ReadFile(filepath.Join(root, "go.mod"))
		if err == nil {
			modulePath := modfile.ModulePath(data)
			if modulePath == "" {
				return "", fmt.Errorf("%w: %s", errNoModulePath, filepath.Join(root, "go.mod"))
			}

			rel, err := filepath.Rel(root, abs)
			if err != nil {
				return "", fmt.Errorf("failed to relate %s to %s: %w", abs, root, err)
			}

			return path.Join(modulePath, filepath.ToSlash(rel)), nil
		}

		if filepath.Dir(root) == root {
			return "", fmt.Errorf("%w above %s", errNoModule, abs)
		}
	}
}

// Load parses every non-test .go file in dir.
func (DirLoader) Load(dir string) ([]*dst.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)
	files := make([]*dst.File, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		file, err := dec.ParseFile(filepath.Join(dir, name), nil, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Join(dir, name), err)
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no parsable .go files in %s", errNoPackagesFound, dir)
	}

	return files, nil
}

// unexported variables.
var (
	errNoModule        = errors.New("no go.mod found")
	errNoModulePath    = errors.New("go.mod has no module directive")
	errNoPackagesFound = errors.New("no packages found")
)
