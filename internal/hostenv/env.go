// SPDX-License-Identifier: MPL-2.0

package hostenv

import (
	"errors"
	"fmt"

	"github.com/skiffworks/skiff/pkg/types"
)

const (
	// KindDevVenv marks an externally prepared, activated script environment
	// used during development iteration.
	KindDevVenv Kind = "dev_venv"
	// KindStandalone marks a packaged, self-contained deployment directory
	// requiring no external environment setup.
	KindStandalone Kind = "standalone"
)

var (
	// ErrInvalidEnvironmentKind is the sentinel error wrapped by InvalidEnvironmentKindError.
	ErrInvalidEnvironmentKind = errors.New("invalid environment kind")
	// ErrConfiguration is the sentinel error wrapped by ConfigurationError.
	ErrConfiguration = errors.New("configuration error")
	// ErrVenvNotActivated indicates dev mode found no activated script
	// environment.
	ErrVenvNotActivated = errors.New("script environment not activated")
	// ErrResourceDirUnresolved indicates standalone mode could not locate the
	// packaged resource directory.
	ErrResourceDirUnresolved = errors.New("packaged resource directory unresolved")
)

type (
	// Kind discriminates the two deployment modes.
	Kind string

	// InvalidEnvironmentKindError is returned when a Kind value is not one of
	// the defined deployment modes.
	InvalidEnvironmentKindError struct {
		Value Kind
	}

	// Environment describes the resolved deployment environment: exactly one
	// Kind plus the directory the embedded runtime boots against. The value
	// is fixed once resolved for the process lifetime; Root is not
	// re-validated here; a stale or bogus path surfaces at bootstrap.
	Environment struct {
		Kind Kind
		Root types.FilesystemPath
	}

	// ConfigurationError is returned when the active deployment mode cannot
	// be resolved. It is fatal and unrecoverable at this layer.
	ConfigurationError struct {
		Cause error
	}
)

// Error implements the error interface.
func (e *InvalidEnvironmentKindError) Error() string {
	return fmt.Sprintf("invalid environment kind %q (valid: %s, %s)",
		e.Value, KindDevVenv, KindStandalone)
}

// Unwrap returns ErrInvalidEnvironmentKind so callers can use errors.Is for programmatic detection.
func (e *InvalidEnvironmentKindError) Unwrap() error { return ErrInvalidEnvironmentKind }

// String returns the string representation of the Kind.
func (k Kind) String() string { return string(k) }

// Validate returns nil if the Kind is one of the defined deployment modes.
func (k Kind) Validate() error {
	switch k {
	case KindDevVenv, KindStandalone:
		return nil
	default:
		return &InvalidEnvironmentKindError{Value: k}
	}
}

// Validate returns nil if the Environment holds a defined kind and a
// non-empty root path.
func (e Environment) Validate() error {
	if err := e.Kind.Validate(); err != nil {
		return err
	}
	return e.Root.Validate()
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Cause)
}

// Unwrap returns the chain [ErrConfiguration, Cause] so callers can match
// either the taxonomy sentinel or the underlying failure.
func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Cause}
}
