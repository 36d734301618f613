// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/skiffworks/skiff/pkg/types"
)

func writeManifest(t *testing.T, content string) types.FilesystemPath {
	t.Helper()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return types.FilesystemPath(root)
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	root := writeManifest(t, "[runtime]\nversion = 1\n")

	m, err := LoadManifest(root)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if m.Runtime.Version != SupportedManifestVersion {
		t.Errorf("Version = %d, want %d", m.Runtime.Version, SupportedManifestVersion)
	}
	if m.Runtime.ModulesDir != DefaultModulesDir {
		t.Errorf("ModulesDir = %q, want default %q", m.Runtime.ModulesDir, DefaultModulesDir)
	}
}

func TestLoadManifestCustomModulesDir(t *testing.T) {
	t.Parallel()

	root := writeManifest(t, "[runtime]\nversion = 1\nmodules_dir = \"scripts\"\n")

	m, err := LoadManifest(root)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if m.Runtime.ModulesDir != "scripts" {
		t.Errorf("ModulesDir = %q, want %q", m.Runtime.ModulesDir, "scripts")
	}
	if got, want := m.ModulesRoot(root), types.FilesystemPath(filepath.Join(string(root), "scripts")); got != want {
		t.Errorf("ModulesRoot() = %q, want %q", got, want)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadManifest(types.FilesystemPath(t.TempDir()))
	if !errors.Is(err, ErrManifestMissing) {
		t.Errorf("LoadManifest() error = %v, want ErrManifestMissing", err)
	}
}

func TestLoadManifestUnsupportedVersion(t *testing.T) {
	t.Parallel()

	root := writeManifest(t, "[runtime]\nversion = 99\n")

	_, err := LoadManifest(root)
	if !errors.Is(err, ErrManifestVersion) {
		t.Errorf("LoadManifest() error = %v, want ErrManifestVersion", err)
	}
}

func TestLoadManifestAbsoluteModulesDir(t *testing.T) {
	t.Parallel()

	root := writeManifest(t, "[runtime]\nversion = 1\nmodules_dir = \"/opt/scripts\"\n")

	if _, err := LoadManifest(root); err == nil {
		t.Error("LoadManifest() error = nil, want rejection of absolute modules_dir")
	}
}

func TestLoadManifestMalformed(t *testing.T) {
	t.Parallel()

	root := writeManifest(t, "[runtime\nversion =")

	if _, err := LoadManifest(root); err == nil {
		t.Error("LoadManifest() error = nil, want parse error")
	}
}
