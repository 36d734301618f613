// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEntryPoint is the sentinel error wrapped by InvalidEntryPointError.
var ErrInvalidEntryPoint = errors.New("invalid entry point")

type (
	// EntryPoint identifies the script module executed inside the embedded
	// runtime, as a dotted module path (e.g. "skiff_app" or "skiff_app.main").
	// The value is fixed at compile time and never derived from user input.
	EntryPoint string

	// InvalidEntryPointError is returned when an EntryPoint is empty or
	// contains segments that are not valid identifiers.
	InvalidEntryPointError struct {
		Value  EntryPoint
		Reason string
	}
)

// String returns the dotted module path.
func (e EntryPoint) String() string { return string(e) }

// Segments returns the dot-separated path segments.
func (e EntryPoint) Segments() []string {
	return strings.Split(string(e), ".")
}

// Validate returns an error unless the EntryPoint is a non-empty sequence of
// dot-separated identifier segments (letters, digits, underscores; no leading
// digit).
func (e EntryPoint) Validate() error {
	if strings.TrimSpace(string(e)) == "" {
		return &InvalidEntryPointError{Value: e, Reason: "must be non-empty"}
	}
	for _, seg := range e.Segments() {
		if !isIdentifier(seg) {
			return &InvalidEntryPointError{
				Value:  e,
				Reason: fmt.Sprintf("segment %q is not a valid identifier", seg),
			}
		}
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Error implements the error interface.
func (e *InvalidEntryPointError) Error() string {
	return fmt.Sprintf("invalid entry point %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidEntryPoint so callers can use errors.Is for programmatic detection.
func (e *InvalidEntryPointError) Unwrap() error { return ErrInvalidEntryPoint }
