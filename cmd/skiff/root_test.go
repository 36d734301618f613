// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/skiffworks/skiff/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origDate
	})

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q, want dev marker", got)
	}

	Version, Commit, BuildDate = "1.2.3", "abc1234", "2026-08-26"
	got := getVersionString()
	for _, want := range []string{"1.2.3", "abc1234", "2026-08-26"} {
		if !strings.Contains(got, want) {
			t.Errorf("getVersionString() = %q, missing %q", got, want)
		}
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	withErr := &ExitError{Code: 3, Err: errors.New("script failed")}
	if withErr.Error() != "script failed" {
		t.Errorf("Error() = %q, want underlying message", withErr.Error())
	}
	if withErr.Unwrap() == nil {
		t.Error("Unwrap() = nil, want underlying error")
	}

	bare := &ExitError{Code: 7}
	if bare.Error() != "exit status 7" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "exit status 7")
	}
	if bare.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil", bare.Unwrap())
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay() = %q, want plain message", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("load configuration").
		WithSuggestion("Check the config file syntax").
		Wrap(errors.New("bad syntax")).
		Build()

	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "load configuration") {
		t.Errorf("formatErrorForDisplay() = %q, missing operation", got)
	}
	if !strings.Contains(got, "Check the config file syntax") {
		t.Errorf("formatErrorForDisplay() = %q, missing suggestion", got)
	}

	verbose := formatErrorForDisplay(actionable, true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("verbose output %q missing error chain", verbose)
	}
}
