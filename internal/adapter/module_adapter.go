package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	m "covrun.dev/pkg/covrun/internal/model"
)

// ModuleAdapter answers questions about the Go module under test.
type ModuleAdapter interface {
	// ModulePath returns the module path declared in root/go.mod.
	ModulePath(ctx context.Context, root m.Path) (string, error)

	// PackageDirs maps each import path to the directory holding its sources.
	// Import paths that cannot be resolved are left out of the result.
	PackageDirs(ctx context.Context, root m.Path, importPaths []string) (map[string]m.Path, error)
}

// LocalModuleAdapter reads go.mod from disk and loads packages with go/packages.
type LocalModuleAdapter struct{}

// NewLocalModuleAdapter constructs a LocalModuleAdapter.
func NewLocalModuleAdapter() *LocalModuleAdapter {
	return &LocalModuleAdapter{}
}

// ModulePath parses root/go.mod and returns its module directive.
func (a *LocalModuleAdapter) ModulePath(ctx context.Context, root m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	goMod := filepath.Join(string(root), "go.mod")

	// #nosec G304 - go.mod of the module under test
	data, err := os.ReadFile(goMod)
	if err != nil {
		return "", err
	}

	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("no module directive in %s", goMod)
	}

	return path, nil
}

// PackageDirs loads the import paths relative to root.
func (a *LocalModuleAdapter) PackageDirs(ctx context.Context, root m.Path, importPaths []string) (map[string]m.Path, error) {
	dirs := make(map[string]m.Path, len(importPaths))
	if len(importPaths) == 0 {
		return dirs, nil
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     string(root),
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedModule,
	}

	pkgs, err := packages.Load(cfg, importPaths...)
	if err != nil {
		return nil, fmt.Errorf("packages.Load: %w", err)
	}

	for _, pkg := range pkgs {
		files := pkg.GoFiles
		if len(files) == 0 {
			files = pkg.OtherFiles
		}

		if len(files) == 0 {
			continue
		}

		dirs[pkg.PkgPath] = m.Path(filepath.Dir(files[0]))
	}

	return dirs, nil
}
