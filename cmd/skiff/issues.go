// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/skiffworks/skiff/internal/hostenv"
	"github.com/skiffworks/skiff/internal/issue"
	"github.com/skiffworks/skiff/internal/runtime"
)

// issueIDFor classifies a bootstrap-phase failure into its catalog entry, or
// 0 when no guidance exists for it.
func issueIDFor(err error) issue.Id {
	switch {
	case errors.Is(err, hostenv.ErrVenvNotActivated):
		return issue.VenvNotActivatedId
	case errors.Is(err, hostenv.ErrResourceDirUnresolved):
		return issue.ResourceDirUnresolvedId
	case errors.Is(err, runtime.ErrManifestVersion):
		return issue.RuntimeVersionMismatchId
	case errors.Is(err, runtime.ErrManifestMissing),
		errors.Is(err, runtime.ErrModulesDirMissing):
		return issue.RuntimeMissingId
	case errors.Is(err, runtime.ErrEntryModuleNotFound):
		return issue.EntryModuleNotFoundId
	case errors.Is(err, runtime.ErrScript):
		return issue.ScriptFailedId
	default:
		return 0
	}
}

// renderIssueGuidance prints the catalog guidance for err to stderr, if the
// failure class has an entry. Rendering problems are swallowed; guidance is
// best-effort decoration around the real error message.
func renderIssueGuidance(err error) {
	id := issueIDFor(err)
	if id == 0 {
		return
	}
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render("dark")
	if renderErr != nil {
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}
