// SPDX-License-Identifier: MPL-2.0

package types_test

import (
	"errors"
	"testing"

	"github.com/skiffworks/skiff/pkg/types"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    types.ExitCode
		wantErr bool
	}{
		{name: "zero is valid", code: 0, wantErr: false},
		{name: "one is valid", code: 1, wantErr: false},
		{name: "upper bound is valid", code: 255, wantErr: false},
		{name: "negative is invalid", code: -1, wantErr: true},
		{name: "above upper bound is invalid", code: 256, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.code.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, types.ErrInvalidExitCode) {
				t.Errorf("Validate() error does not wrap ErrInvalidExitCode: %v", err)
			}
		})
	}
}

func TestExitCodeIsSuccess(t *testing.T) {
	t.Parallel()

	if !types.ExitCode(0).IsSuccess() {
		t.Error("ExitCode(0).IsSuccess() = false, want true")
	}
	if types.ExitCode(1).IsSuccess() {
		t.Error("ExitCode(1).IsSuccess() = true, want false")
	}
}

func TestExitCodeClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code types.ExitCode
		want types.ExitCode
	}{
		{name: "valid code unchanged", code: 42, want: 42},
		{name: "zero unchanged", code: 0, want: 0},
		{name: "negative clamps to one", code: -7, want: 1},
		{name: "overflow clamps to one", code: 300, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.code.Clamp(); got != tt.want {
				t.Errorf("Clamp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExitCodeString(t *testing.T) {
	t.Parallel()

	if got := types.ExitCode(42).String(); got != "42" {
		t.Errorf("String() = %q, want %q", got, "42")
	}
}
