// SPDX-License-Identifier: MPL-2.0

// Package capability defines the native module exported to the embedded
// Starlark runtime.
//
// The module is the sole host↔script contract boundary. It is installed
// under the fixed name "skiff_ext" before the entry module's top-level code
// runs and exports exactly two callables:
//
//   - context_factory(): the compiled-in, immutable application context
//   - builder_factory(): a fresh application builder per call, preconfigured
//     with the opener plugin and the host command handler table
//
// Both callables accept and discard any positional or keyword arguments so
// future runtime revisions can pass extra data without breaking older hosts.
// Adapters in this package are limited to argument marshalling; command
// behavior lives in the handler functions.
package capability
