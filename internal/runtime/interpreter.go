// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/skiffworks/skiff/internal/hostenv"
	"github.com/skiffworks/skiff/pkg/types"
)

// starExt is the file extension of script modules.
const starExt = ".star"

// mainFunction is the optional entry function the entry module may define.
// When present it is called after top-level execution and its return value
// becomes the process exit code.
const mainFunction = "main"

var (
	// ErrScript is the sentinel error wrapped by ScriptError.
	ErrScript = errors.New("script execution failed")

	// ErrInterpreterConsumed indicates Run was called more than once.
	ErrInterpreterConsumed = errors.New("interpreter already ran")

	// ErrLoadCycle indicates a load statement cycle between script modules.
	ErrLoadCycle = errors.New("cycle in load graph")
)

type (
	// Interpreter is the process's embedded Starlark runtime, produced by
	// Build. It is consumed by a single call to Run.
	Interpreter struct {
		env         hostenv.Environment
		entry       types.EntryPoint
		modulesRoot types.FilesystemPath
		nativeName  string
		nativeMod   starlark.StringDict
		consumed    atomic.Bool
	}

	// ScriptError is returned when script code fails after control transfer.
	// Backtrace carries the interpreter's multi-line stack trace for verbose
	// output.
	ScriptError struct {
		Backtrace string
		Cause     error
	}

	// loadEntry memoizes one module load. A nil entry in the table marks a
	// load in progress and is how cycles are detected.
	loadEntry struct {
		globals starlark.StringDict
		err     error
	}
)

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("script failed: %v", e.Cause)
}

// Unwrap returns the chain [ErrScript, Cause].
func (e *ScriptError) Unwrap() []error {
	return []error{ErrScript, e.Cause}
}

// fileOptions enables the dialect features scripts rely on. Recursion and
// top-level control flow are deliberate: application scripts are trusted
// code shipped with the host, not sandboxed user input.
func fileOptions() *syntax.FileOptions {
	return &syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
		Recursion:       true,
	}
}

// Run transfers control to the entry module and reports the exit code its
// outcome dictates. The entry module executes top to bottom; if it defines a
// main function, main is then called and its integer return value becomes
// the exit code (None counts as 0). Script failures return a ScriptError
// together with exit code 1.
//
// Run consumes the interpreter. A second call fails with
// ErrInterpreterConsumed.
func (it *Interpreter) Run(ctx context.Context) (types.ExitCode, error) {
	if !it.consumed.CompareAndSwap(false, true) {
		return 1, ErrInterpreterConsumed
	}

	opts := fileOptions()
	loads := make(map[string]*loadEntry)

	scriptLog := log.NewWithOptions(os.Stderr, log.Options{Prefix: "script"})

	thread := &starlark.Thread{
		Name: "skiff:" + it.entry.String(),
		Load: func(th *starlark.Thread, module string) (starlark.StringDict, error) {
			return it.load(th, opts, loads, module)
		},
		Print: func(_ *starlark.Thread, msg string) {
			scriptLog.Info(msg)
		},
	}

	// Propagate cancellation into the interpreter. Cancel makes the running
	// program fail with an EvalError at its next safepoint.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	entryFile := moduleFile(it.modulesRoot, it.entry.Segments())

	globals, err := starlark.ExecFileOptions(opts, thread, string(entryFile), nil, nil)
	if err != nil {
		return 1, scriptError(err)
	}

	main, ok := globals[mainFunction]
	if !ok {
		return 0, nil
	}
	if _, ok := main.(starlark.Callable); !ok {
		return 1, &ScriptError{
			Cause: fmt.Errorf("global %q in %s is %s, not a function",
				mainFunction, it.entry, main.Type()),
		}
	}

	result, err := starlark.Call(thread, main, nil, nil)
	if err != nil {
		return 1, scriptError(err)
	}

	return exitCodeFromValue(it.entry, result)
}

// load resolves a module name from a script's load statement. The native
// capability module is matched by exact name; everything else is a dotted
// path under the modules root. Results are memoized per Run so each module
// executes once, and in-flight loads are tracked to reject cycles.
func (it *Interpreter) load(
	th *starlark.Thread,
	opts *syntax.FileOptions,
	loads map[string]*loadEntry,
	module string,
) (starlark.StringDict, error) {
	if module == it.nativeName {
		return it.nativeMod, nil
	}

	if entry, seen := loads[module]; seen {
		if entry == nil {
			return nil, fmt.Errorf("%w: %s", ErrLoadCycle, module)
		}
		return entry.globals, entry.err
	}

	ep := types.EntryPoint(module)
	if err := ep.Validate(); err != nil {
		return nil, fmt.Errorf("load %q: %w", module, err)
	}

	loads[module] = nil // in progress

	file := moduleFile(it.modulesRoot, ep.Segments())
	globals, err := starlark.ExecFileOptions(opts, th, string(file), nil, nil)
	loads[module] = &loadEntry{globals: globals, err: err}

	return globals, err
}

// scriptError normalizes interpreter failures, preserving the Starlark
// backtrace when one exists.
func scriptError(err error) *ScriptError {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return &ScriptError{Backtrace: evalErr.Backtrace(), Cause: err}
	}
	return &ScriptError{Cause: err}
}

// exitCodeFromValue converts main's return value to a process exit code.
// None means success; integers are clamped to the valid exit code range;
// anything else is a script defect.
func exitCodeFromValue(entry types.EntryPoint, v starlark.Value) (types.ExitCode, error) {
	switch {
	case v == starlark.None:
		return 0, nil
	default:
		n, err := starlark.AsInt32(v)
		if err != nil {
			return 1, &ScriptError{
				Cause: fmt.Errorf("%s from %s returned %s, want int or None",
					mainFunction, entry, v.Type()),
			}
		}
		return types.ExitCode(n).Clamp(), nil
	}
}

// Env reports the deployment environment this interpreter was built for.
func (it *Interpreter) Env() hostenv.Environment { return it.env }

// Entry reports the entry module that receives control.
func (it *Interpreter) Entry() types.EntryPoint { return it.entry }

// ModulesRoot reports the resolved script module directory.
func (it *Interpreter) ModulesRoot() types.FilesystemPath { return it.modulesRoot }

// EntryFile reports the on-disk path of the entry module, for diagnostics.
func (it *Interpreter) EntryFile() types.FilesystemPath {
	return moduleFile(it.modulesRoot, it.entry.Segments())
}
