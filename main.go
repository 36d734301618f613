// SPDX-License-Identifier: MPL-2.0

// skiff is a script-driven application host: a native binary that embeds a
// Starlark runtime, installs its capability module, and hands control to the
// application's entry script.
package main

import cmd "github.com/skiffworks/skiff/cmd/skiff"

func main() {
	cmd.Execute()
}
