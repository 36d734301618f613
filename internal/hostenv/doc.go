// SPDX-License-Identifier: MPL-2.0

// Package hostenv resolves the deployment environment the embedded runtime
// boots against.
//
// Exactly one of two modes is active for the process lifetime: a development
// venv named by the SKIFF_VENV environment variable, or a standalone bundle
// whose resource directory ships next to the host executable. The mode is
// resolved once at startup into a two-variant Environment value; no other
// component re-checks deployment mode.
package hostenv
