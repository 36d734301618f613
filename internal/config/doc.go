// SPDX-License-Identifier: MPL-2.0

// Package config loads the skiff host configuration.
//
// Configuration lives in a CUE file in the platform config directory
// (%APPDATA% on Windows, ~/Library/Application Support on macOS,
// $XDG_CONFIG_HOME on Linux), is validated against an embedded #Config
// schema, and is merged through Viper so defaults apply per-field.
//
// Host configuration is advisory: it tunes diagnostics (verbosity, color
// scheme) and never participates in the environment-resolution contract,
// so load failures degrade to defaults instead of aborting bootstrap.
package config
