// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"go.starlark.net/starlark"
)

// ModuleName is the fixed name under which the capability module is
// registered in the embedded runtime. Entry scripts obtain host capabilities
// exclusively through:
//
//	load("skiff_ext", "context_factory", "builder_factory")
const ModuleName = "skiff_ext"

// Module is the native capability module. It is created once at process
// start and installed into the runtime's load-resolution table before any
// script code executes; its lifetime equals the process lifetime.
type Module struct {
	meta Metadata
	ctx  *Context
}

// NewModule creates the capability module from build-time metadata. The
// application context is computed here, once, and never recomputed.
func NewModule(meta Metadata) *Module {
	return &Module{
		meta: meta,
		ctx:  NewContext(meta),
	}
}

// Name returns the fixed module name.
func (m *Module) Name() string { return ModuleName }

// Exports returns the module's export table. Exactly two slots are
// exported, both forward-compatible: extra arguments from newer runtimes
// are accepted and discarded.
func (m *Module) Exports() (starlark.StringDict, error) {
	return starlark.StringDict{
		"context_factory": starlark.NewBuiltin("context_factory", m.contextFactory),
		"builder_factory": starlark.NewBuiltin("builder_factory", m.builderFactory),
	}, nil
}

// contextFactory returns the process-wide application context. Arguments are
// intentionally ignored (forward-compatibility contract).
func (m *Module) contextFactory(_ *starlark.Thread, _ *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	return m.ctx, nil
}

// builderFactory returns a new application builder. Arguments are
// intentionally ignored (forward-compatibility contract).
func (m *Module) builderFactory(_ *starlark.Thread, _ *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	return NewBuilder(m.meta), nil
}
