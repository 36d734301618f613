// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath functions that
// accept and return types.FilesystemPath, plus the canonicalization used when
// resolving deployment directories.
package fspath

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/skiffworks/skiff/pkg/types"
)

// extendedLengthPrefix is the Windows extended-length path prefix. Paths
// carrying it break downstream consumers that compare or display paths, so
// Canonical strips it.
const extendedLengthPrefix = `\\?\`

// Join wraps filepath.Join, accepting and returning types.FilesystemPath.
func Join(elem ...types.FilesystemPath) types.FilesystemPath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.FilesystemPath(filepath.Join(strs...))
}

// JoinStr wraps filepath.Join, accepting a typed base path and raw string
// segments. Use this when joining a validated path with literal constants
// (e.g., "runtime.toml") or OS-provided file names.
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Base wraps filepath.Base for FilesystemPath.
func Base(p types.FilesystemPath) string {
	return filepath.Base(string(p))
}

// Abs wraps filepath.Abs for FilesystemPath. Returns an error if the
// underlying OS call fails.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// Clean wraps filepath.Clean for FilesystemPath.
func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

// IsAbs wraps filepath.IsAbs for FilesystemPath.
func IsAbs(p types.FilesystemPath) bool {
	return filepath.IsAbs(string(p))
}

// Canonical resolves p to its canonical on-disk form: the path is made
// absolute, symlinks are resolved, and on Windows the extended-length
// \\?\ prefix is stripped. The path must exist.
func Canonical(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := Abs(p)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(string(abs))
	if err != nil {
		return "", fmt.Errorf("resolving symlinks: %w", err)
	}
	return types.FilesystemPath(Simplified(resolved)), nil
}

// Simplified strips the Windows extended-length \\?\ prefix from p when
// running on Windows. On other platforms it returns p unchanged.
func Simplified(p string) string {
	if runtime.GOOS != "windows" {
		return p
	}
	return strings.TrimPrefix(p, extendedLengthPrefix)
}
