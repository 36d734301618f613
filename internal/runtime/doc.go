// SPDX-License-Identifier: MPL-2.0

// Package runtime embeds the Starlark interpreter that hosts the
// application's scripts. It owns the bootstrap sequence: a deployment
// environment is validated against the runtime manifest, the native
// capability module is installed into the interpreter's load table, and
// control is handed to the entry module whose outcome dictates the process
// exit code.
//
// Bootstrap is a one-shot operation per process. Build refuses to construct
// a second interpreter, and an Interpreter refuses to Run twice.
package runtime
