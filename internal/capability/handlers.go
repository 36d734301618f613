// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"errors"
	"fmt"
)

// ErrUnknownCommand is the sentinel error wrapped by UnknownCommandError.
var ErrUnknownCommand = errors.New("unknown command")

type (
	// Handler is a host-native command function invocable from scripts.
	// Handlers must be pure functions of their arguments: they may be
	// called from any execution context of the embedded runtime, must not
	// rely on host-held locks, and must never call back into bootstrap or
	// lifecycle APIs.
	Handler func(args []string) (string, error)

	// UnknownCommandError is returned when a script invokes a command name
	// with no registered handler.
	UnknownCommandError struct {
		Name string
	}
)

// Error implements the error interface.
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// Unwrap returns ErrUnknownCommand so callers can use errors.Is for programmatic detection.
func (e *UnknownCommandError) Unwrap() error { return ErrUnknownCommand }

// Greet is the canonical smoke-test command. It embeds its input in the
// greeting exactly once; the input is never interpreted as a formatting
// directive, so "%s" or "{}" pass through verbatim.
func Greet(args []string) (string, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	return "Hello, " + name + "! You've been greeted from Go!", nil
}

// defaultHandlers returns the command handler table every new builder starts
// with. The map is built fresh per call so builders never share state.
func defaultHandlers(meta Metadata) map[string]Handler {
	return map[string]Handler{
		"greet": Greet,
		"app_version": func([]string) (string, error) {
			return meta.Version, nil
		},
	}
}
