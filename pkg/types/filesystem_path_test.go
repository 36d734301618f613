// SPDX-License-Identifier: MPL-2.0

package types_test

import (
	"errors"
	"testing"

	"github.com/skiffworks/skiff/pkg/types"
)

func TestFilesystemPathValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    types.FilesystemPath
		wantErr bool
	}{
		{name: "absolute path", path: "/opt/skiff/resources", wantErr: false},
		{name: "relative path", path: "resources", wantErr: false},
		{name: "empty", path: "", wantErr: true},
		{name: "whitespace only", path: "  \t ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.path.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, types.ErrInvalidFilesystemPath) {
				t.Errorf("Validate() error does not wrap ErrInvalidFilesystemPath: %v", err)
			}
		})
	}
}
