// SPDX-License-Identifier: MPL-2.0

package hostenv

import (
	"fmt"
	"os"
	"runtime"

	"github.com/skiffworks/skiff/internal/issue"
	"github.com/skiffworks/skiff/pkg/fspath"
	"github.com/skiffworks/skiff/pkg/types"
)

// VenvEnvVar names the environment variable that points at an activated
// script environment directory. It is consulted only in dev builds.
const VenvEnvVar = "SKIFF_VENV"

// ResourceDirName is the packaged resource directory shipped next to the
// host executable in standalone deployments.
const ResourceDirName = "resources"

// devBuild is flipped to "true" via -ldflags for development builds:
//
//	go build -ldflags "-X github.com/skiffworks/skiff/internal/hostenv.devBuild=true"
var devBuild = "false"

// DevBuild reports whether this binary was built for development iteration.
func DevBuild() bool { return devBuild == "true" }

// Resolver determines the active deployment environment. The zero value is
// not usable; construct with NewResolver. Fields are exposed so tests can
// substitute process inputs.
type Resolver struct {
	// DevMode selects dev-venv resolution instead of standalone resolution.
	DevMode bool
	// Getenv reads an environment variable (os.Getenv in production).
	Getenv func(string) string
	// Executable reports the host executable path (os.Executable in production).
	Executable func() (string, error)
}

// NewResolver creates a Resolver wired to the real process environment.
func NewResolver() *Resolver {
	return &Resolver{
		DevMode:    DevBuild(),
		Getenv:     os.Getenv,
		Executable: os.Executable,
	}
}

// Resolve determines the deployment environment exactly once at startup.
// It reads one environment variable (dev mode) or one executable-metadata
// query (standalone mode) and mutates nothing on the filesystem. Failures
// are ConfigurationErrors and fatal to bootstrap.
func (r *Resolver) Resolve() (Environment, error) {
	if r.DevMode {
		return r.resolveDevVenv()
	}
	return r.resolveStandalone()
}

// resolveDevVenv requires an externally activated environment named by
// VenvEnvVar. The path is taken as-is: activation already validated it, and
// a stale value surfaces at bootstrap, not here.
func (r *Resolver) resolveDevVenv() (Environment, error) {
	venv := r.Getenv(VenvEnvVar)
	if venv == "" {
		return Environment{}, &ConfigurationError{
			Cause: issue.NewErrorContext().
				WithOperation("resolve script environment").
				WithResource(VenvEnvVar).
				WithSuggestion("The app is running in dev mode; activate the script environment first").
				WithSuggestion(fmt.Sprintf("Or set the `%s` environment variable explicitly", VenvEnvVar)).
				Wrap(fmt.Errorf("%w: environment variable %s is not set", ErrVenvNotActivated, VenvEnvVar)).
				Build(),
		}
	}

	return Environment{Kind: KindDevVenv, Root: types.FilesystemPath(venv)}, nil
}

// resolveStandalone derives the packaged resource directory from the host
// executable's location and canonicalizes it. Canonicalization is mandatory:
// the embedded runtime's module path handling is sensitive to symlinked or
// \\?\-prefixed forms.
func (r *Resolver) resolveStandalone() (Environment, error) {
	exe, err := r.Executable()
	if err != nil {
		return Environment{}, r.resourceDirError(err)
	}

	exePath, err := fspath.Canonical(types.FilesystemPath(exe))
	if err != nil {
		return Environment{}, r.resourceDirError(err)
	}

	resourceDir, err := fspath.Canonical(packagedResourceDir(exePath))
	if err != nil {
		return Environment{}, r.resourceDirError(err)
	}

	return Environment{Kind: KindStandalone, Root: resourceDir}, nil
}

// packagedResourceDir maps the executable path to the bundle's resource
// directory. macOS app bundles keep resources beside the MacOS directory;
// everywhere else they ship in a resources directory next to the binary.
func packagedResourceDir(exePath types.FilesystemPath) types.FilesystemPath {
	exeDir := fspath.Dir(exePath)

	if runtime.GOOS == "darwin" &&
		fspath.Base(exeDir) == "MacOS" &&
		fspath.Base(fspath.Dir(exeDir)) == "Contents" {
		return fspath.JoinStr(fspath.Dir(exeDir), "Resources")
	}

	return fspath.JoinStr(exeDir, ResourceDirName)
}

func (r *Resolver) resourceDirError(err error) *ConfigurationError {
	return &ConfigurationError{
		Cause: issue.NewErrorContext().
			WithOperation("resolve packaged resource directory").
			WithSuggestion("Reinstall the application from its packaged distribution").
			WithSuggestion("For development iteration, use a dev build with an activated environment").
			Wrap(fmt.Errorf("%w: %w", ErrResourceDirUnresolved, err)).
			Build(),
	}
}
