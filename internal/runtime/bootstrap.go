// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"go.starlark.net/starlark"

	"github.com/skiffworks/skiff/internal/hostenv"
	"github.com/skiffworks/skiff/pkg/fspath"
	"github.com/skiffworks/skiff/pkg/types"
)

var (
	// ErrBootstrap is the sentinel error wrapped by BootstrapError.
	ErrBootstrap = errors.New("runtime bootstrap failed")

	// ErrAlreadyBootstrapped indicates a second interpreter was requested in
	// the same process.
	ErrAlreadyBootstrapped = errors.New("runtime already bootstrapped in this process")

	// ErrModulesDirMissing indicates the manifest's module directory is
	// absent or not a directory.
	ErrModulesDirMissing = errors.New("module directory missing")

	// ErrEntryModuleNotFound indicates the entry module has no .star file
	// under the module directory.
	ErrEntryModuleNotFound = errors.New("entry module not found")

	// bootstrapped enforces the one-interpreter-per-process invariant.
	bootstrapped atomic.Bool
)

// Reset clears the bootstrap once guard. Test use only.
func Reset() {
	bootstrapped.Store(false)
}

type (
	// NativeModule is a host capability module installable into the
	// interpreter's load table before any script executes.
	NativeModule interface {
		// Name is the fixed name scripts use in load statements.
		Name() string

		// Exports produces the module's exported symbols. It is called once
		// during bootstrap; an error aborts bootstrap before any script runs.
		Exports() (starlark.StringDict, error)
	}

	// BuildOptions carries everything Build needs to construct an
	// interpreter. All fields are required.
	BuildOptions struct {
		// Env is the resolved deployment environment.
		Env hostenv.Environment

		// Entry is the dotted path of the script module that receives
		// control after bootstrap.
		Entry types.EntryPoint

		// Module is the native capability module to install. Its exports
		// are registered strictly before the entry module executes.
		Module NativeModule
	}

	// BootstrapError is returned when the interpreter cannot be constructed.
	// It always means no script code has run.
	BootstrapError struct {
		Stage string
		Cause error
	}
)

// Error implements the error interface.
func (e *BootstrapError) Error() string {
	return fmt.Sprintf("bootstrap %s: %v", e.Stage, e.Cause)
}

// Unwrap returns the chain [ErrBootstrap, Cause] so callers can match the
// taxonomy sentinel or the underlying failure.
func (e *BootstrapError) Unwrap() []error {
	return []error{ErrBootstrap, e.Cause}
}

// Validate checks that the options are complete and internally valid.
func (o BuildOptions) Validate() error {
	if err := o.Env.Validate(); err != nil {
		return err
	}
	if err := o.Entry.Validate(); err != nil {
		return err
	}
	if o.Module == nil {
		return errors.New("native module must not be nil")
	}
	return nil
}

// Build constructs the process's single embedded interpreter. It validates
// the deployment environment against its runtime manifest, locates the entry
// module, and installs the native module's exports into the load table. Any
// failure is a BootstrapError and guarantees no script has executed.
//
// Build succeeds at most once per process; later calls fail with
// ErrAlreadyBootstrapped. A failed Build does not consume the slot, so a
// corrected environment can be retried (this matters for tests more than
// production, where bootstrap failure is fatal).
func Build(opts BuildOptions) (*Interpreter, error) {
	if err := opts.Validate(); err != nil {
		return nil, &BootstrapError{Stage: "options", Cause: err}
	}

	manifest, err := LoadManifest(opts.Env.Root)
	if err != nil {
		return nil, &BootstrapError{Stage: "manifest", Cause: err}
	}

	modulesRoot := manifest.ModulesRoot(opts.Env.Root)
	if info, err := os.Stat(string(modulesRoot)); err != nil || !info.IsDir() {
		return nil, &BootstrapError{
			Stage: "modules dir",
			Cause: fmt.Errorf("%w: %s", ErrModulesDirMissing, modulesRoot),
		}
	}

	entryFile := moduleFile(modulesRoot, opts.Entry.Segments())
	if _, err := os.Stat(string(entryFile)); err != nil {
		return nil, &BootstrapError{
			Stage: "entry module",
			Cause: fmt.Errorf("%w: %s (looked for %s)", ErrEntryModuleNotFound, opts.Entry, entryFile),
		}
	}

	// Materialize the native exports now. The load table must be complete
	// before control transfers to the script.
	exports, err := opts.Module.Exports()
	if err != nil {
		return nil, &BootstrapError{Stage: "native module", Cause: err}
	}

	if !bootstrapped.CompareAndSwap(false, true) {
		return nil, &BootstrapError{Stage: "once guard", Cause: ErrAlreadyBootstrapped}
	}

	return &Interpreter{
		env:         opts.Env,
		entry:       opts.Entry,
		modulesRoot: modulesRoot,
		nativeName:  opts.Module.Name(),
		nativeMod:   exports,
	}, nil
}

// moduleFile maps a dotted module path to its .star file under the modules
// root ("utils.text" becomes <root>/utils/text.star).
func moduleFile(root types.FilesystemPath, segments []string) types.FilesystemPath {
	path := fspath.JoinStr(root, segments...)
	return types.FilesystemPath(string(path) + starExt)
}
