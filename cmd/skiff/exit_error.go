// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/skiffworks/skiff/pkg/types"
)

// ExitError signals a specific exit code without forcing os.Exit in RunE
// handlers. The script's outcome travels through it unchanged so the process
// exit code is exactly what the script dictated.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
