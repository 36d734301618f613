// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI surface of the skiff host binary. The root
// command performs the bootstrap sequence and hands control to the embedded
// script runtime; auxiliary subcommands expose host configuration.
package cmd
