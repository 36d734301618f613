// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
)

// Builder is the application builder handed to scripts by builder_factory().
// Each factory call produces a fresh builder with its own plugin instances
// and handler table; builders never share mutable state.
type Builder struct {
	plugins  []Plugin
	handlers map[string]Handler
	started  bool
}

var (
	_ starlark.Value    = (*Builder)(nil)
	_ starlark.HasAttrs = (*Builder)(nil)
)

// NewBuilder constructs a builder preconfigured with the opener plugin and
// the default handler table derived from meta.
func NewBuilder(meta Metadata) *Builder {
	b := &Builder{
		plugins:  []Plugin{NewOpenerPlugin()},
		handlers: defaultHandlers(meta),
	}
	for _, p := range b.plugins {
		for name, h := range p.Handlers() {
			b.handlers[name] = h
		}
	}
	return b
}

// CommandNames returns the sorted names of all registered commands.
func (b *Builder) CommandNames() []string {
	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke dispatches a registered command handler by name.
func (b *Builder) Invoke(name string, args []string) (string, error) {
	h, ok := b.handlers[name]
	if !ok {
		return "", &UnknownCommandError{Name: name}
	}
	return h(args)
}

// String implements starlark.Value.
func (b *Builder) String() string {
	return fmt.Sprintf("<app_builder commands=%d>", len(b.handlers))
}

// Type implements starlark.Value.
func (b *Builder) Type() string { return "app_builder" }

// Freeze implements starlark.Value. The builder's only post-construction
// mutation is the one-shot run guard, which is not script-observable state.
func (b *Builder) Freeze() {}

// Truth implements starlark.Value.
func (b *Builder) Truth() starlark.Bool { return starlark.True }

// Hash implements starlark.Value. Builders are mutable handles and therefore
// unhashable.
func (b *Builder) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", b.Type())
}

// Attr implements starlark.HasAttrs.
func (b *Builder) Attr(name string) (starlark.Value, error) {
	switch name {
	case "invoke":
		return starlark.NewBuiltin("invoke", b.invokeBuiltin), nil
	case "run":
		return starlark.NewBuiltin("run", b.runBuiltin), nil
	case "commands":
		return b.commandsValue(), nil
	default:
		return nil, nil
	}
}

// AttrNames implements starlark.HasAttrs.
func (b *Builder) AttrNames() []string {
	return []string{"commands", "invoke", "run"}
}

// invokeBuiltin adapts invoke(name, *args) calls: it marshals the script
// arguments to strings and dispatches the named handler. No command logic
// lives here.
func (b *Builder) invokeBuiltin(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("invoke: unexpected keyword arguments")
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("invoke: missing command name")
	}

	name, ok := starlark.AsString(args[0])
	if !ok {
		return nil, fmt.Errorf("invoke: command name must be a string, got %s", args[0].Type())
	}

	rest := make([]string, 0, len(args)-1)
	for _, arg := range args[1:] {
		if s, isStr := starlark.AsString(arg); isStr {
			rest = append(rest, s)
			continue
		}
		rest = append(rest, arg.String())
	}

	out, err := b.Invoke(name, rest)
	if err != nil {
		return nil, err
	}
	return starlark.String(out), nil
}

// runBuiltin adapts run(context) calls: it initializes the attached plugins
// against the application context and yields the application exit code.
func (b *Builder) runBuiltin(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var ctxVal starlark.Value
	if err := starlark.UnpackPositionalArgs("run", args, kwargs, 1, &ctxVal); err != nil {
		return nil, err
	}

	appCtx, ok := ctxVal.(*Context)
	if !ok {
		return nil, fmt.Errorf("run: expected app_context, got %s", ctxVal.Type())
	}

	if b.started {
		return nil, fmt.Errorf("run: builder already ran")
	}
	b.started = true

	for _, p := range b.plugins {
		if err := p.Init(appCtx); err != nil {
			return nil, fmt.Errorf("run: plugin %s: %w", p.Name(), err)
		}
	}

	return starlark.MakeInt(0), nil
}

func (b *Builder) commandsValue() starlark.Value {
	names := b.CommandNames()
	elems := make([]starlark.Value, len(names))
	for i, name := range names {
		elems[i] = starlark.String(name)
	}
	return starlark.NewList(elems)
}
