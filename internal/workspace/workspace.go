// Package workspace materializes scaffold file sets onto disk under a single
// root directory, one subdirectory per project.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace is the on-disk home for nodebox projects.
type Workspace struct {
	root string
}

// New creates the workspace root if needed and returns a handle to it.
func New(root string) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}
	return &Workspace{root: abs}, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string { return w.root }

// ProjectDir returns the absolute directory for a project name.
func (w *Workspace) ProjectDir(name string) string {
	return filepath.Join(w.root, name)
}

// Exists reports whether a project directory is present.
func (w *Workspace) Exists(name string) bool {
	info, err := os.Stat(w.ProjectDir(name))
	return err == nil && info.IsDir()
}

// WriteProject writes a file set under the project's directory, creating
// parent directories before each write. Names that resolve to the workspace
// root or anywhere outside it, and relative paths that escape the project
// directory, are rejected.
func (w *Workspace) WriteProject(name string, files map[string]string) error {
	dir := w.ProjectDir(name)
	if dir == w.root || filepath.Dir(dir) != w.root {
		return fmt.Errorf("invalid project name: %q", name)
	}
	for path, content := range files {
		if err := w.writeFile(dir, path, content); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workspace) writeFile(dir, relPath, content string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid project-relative path: %s", relPath)
	}
	dest := filepath.Join(dir, cleaned)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}

// Remove deletes a project directory and everything under it.
func (w *Workspace) Remove(name string) error {
	dir := w.ProjectDir(name)
	if dir == w.root || !strings.HasPrefix(dir, w.root+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove %s: outside workspace", dir)
	}
	return os.RemoveAll(dir)
}
