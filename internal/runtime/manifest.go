// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/skiffworks/skiff/pkg/fspath"
	"github.com/skiffworks/skiff/pkg/types"
)

const (
	// ManifestFileName is the runtime manifest expected at the root of every
	// deployment environment, dev venv and packaged resource dir alike.
	ManifestFileName = "runtime.toml"

	// SupportedManifestVersion is the manifest schema version this binary
	// understands. Bump it together with the manifest format.
	SupportedManifestVersion = 1

	// DefaultModulesDir is where script modules live relative to the
	// environment root when the manifest does not say otherwise.
	DefaultModulesDir = "modules"

	// maxManifestSize guards against reading an arbitrarily large file that
	// was dropped in place of the manifest.
	maxManifestSize = 1 << 20 // 1 MiB
)

var (
	// ErrManifestMissing indicates the environment root has no runtime.toml.
	ErrManifestMissing = errors.New("runtime manifest not found")

	// ErrManifestVersion indicates the manifest declares a version this
	// binary does not support.
	ErrManifestVersion = errors.New("unsupported runtime manifest version")
)

type (
	// Manifest is the parsed runtime.toml shipped with a deployment
	// environment. It pins the manifest schema version and the layout of
	// the script tree.
	Manifest struct {
		Runtime RuntimeSection `toml:"runtime"`
	}

	// RuntimeSection is the [runtime] table of the manifest.
	RuntimeSection struct {
		// Version is the manifest schema version. Required.
		Version int `toml:"version"`

		// ModulesDir is the script module directory relative to the
		// environment root. Defaults to DefaultModulesDir.
		ModulesDir string `toml:"modules_dir"`
	}
)

// LoadManifest reads and validates the runtime manifest at the root of the
// given environment directory.
func LoadManifest(root types.FilesystemPath) (*Manifest, error) {
	path := fspath.JoinStr(root, ManifestFileName)

	info, err := os.Stat(string(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestMissing, path)
		}
		return nil, fmt.Errorf("reading runtime manifest %s: %w", path, err)
	}
	if info.Size() > maxManifestSize {
		return nil, fmt.Errorf("runtime manifest %s exceeds %d bytes", path, maxManifestSize)
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("reading runtime manifest %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing runtime manifest %s: %w", path, err)
	}

	if m.Runtime.ModulesDir == "" {
		m.Runtime.ModulesDir = DefaultModulesDir
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks the manifest for internal consistency.
func (m *Manifest) Validate() error {
	if m.Runtime.Version != SupportedManifestVersion {
		return fmt.Errorf("%w: got %d, supported %d",
			ErrManifestVersion, m.Runtime.Version, SupportedManifestVersion)
	}
	if fspath.IsAbs(types.FilesystemPath(m.Runtime.ModulesDir)) {
		return fmt.Errorf("modules_dir must be relative to the environment root, got %q",
			m.Runtime.ModulesDir)
	}
	return nil
}

// ModulesRoot resolves the manifest's module directory against the
// environment root.
func (m *Manifest) ModulesRoot(root types.FilesystemPath) types.FilesystemPath {
	return fspath.JoinStr(root, m.Runtime.ModulesDir)
}
