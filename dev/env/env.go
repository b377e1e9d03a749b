// Package devenv resolves paths relative to the workspace root so tests and
// tools behave the same regardless of cwd.
package devenv

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var modName = regexp.MustCompile(`(?m)^module *([\w\-_/\.]+)$`)

func isWorkspaceRoot(dir string) bool {
	mod, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return false
	}
	matches := modName.FindSubmatch(mod)
	return len(matches) >= 2 && string(matches[1]) == "geoconflate"
}

func GetWorkspaceRoot() (string, error) {
	current, err := filepath.Abs(".")
	if err != nil {
		return "", err
	}
	root, err := filepath.Abs("/")
	if err != nil {
		return "", err
	}

	for current != root {
		if isWorkspaceRoot(current) {
			return current, nil
		}
		current = filepath.Join(current, "..")
	}
	return "", os.ErrNotExist
}

// ResolvePath turns a workspace-relative path into an absolute one.
// Absolute paths pass through untouched.
func ResolvePath(path string) (string, error) {
	if strings.HasPrefix(path, "/") {
		return path, nil
	}
	workspace, err := GetWorkspaceRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(workspace, path), nil
}
