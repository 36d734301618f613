// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"fmt"

	"go.starlark.net/starlark"
)

// Metadata holds the build-time application identity compiled into the host
// binary. It never changes after process start.
type Metadata struct {
	// Name is the application product name.
	Name string
	// Identifier is the reverse-DNS bundle identifier.
	Identifier string
	// Version is the application version (ldflags-settable).
	Version string
}

// Context is the immutable application context exposed to scripts by
// context_factory(). It is constructed once per process and shared by every
// factory call, so it must never grow mutable state.
type Context struct {
	meta Metadata
}

var (
	_ starlark.Value    = (*Context)(nil)
	_ starlark.HasAttrs = (*Context)(nil)
)

// NewContext creates the application context from build-time metadata.
func NewContext(meta Metadata) *Context {
	return &Context{meta: meta}
}

// Metadata returns the build-time metadata the context was derived from.
func (c *Context) Metadata() Metadata { return c.meta }

// String implements starlark.Value.
func (c *Context) String() string {
	return fmt.Sprintf("<app_context %s %s>", c.meta.Identifier, c.meta.Version)
}

// Type implements starlark.Value.
func (c *Context) Type() string { return "app_context" }

// Freeze implements starlark.Value. Context is immutable by construction.
func (c *Context) Freeze() {}

// Truth implements starlark.Value.
func (c *Context) Truth() starlark.Bool { return starlark.True }

// Hash implements starlark.Value. The context hashes by identity metadata,
// so behaviorally identical contexts hash identically.
func (c *Context) Hash() (uint32, error) {
	return starlark.String(c.meta.Identifier + "\x00" + c.meta.Version).Hash()
}

// Attr implements starlark.HasAttrs.
func (c *Context) Attr(name string) (starlark.Value, error) {
	switch name {
	case "name":
		return starlark.String(c.meta.Name), nil
	case "identifier":
		return starlark.String(c.meta.Identifier), nil
	case "version":
		return starlark.String(c.meta.Version), nil
	default:
		return nil, nil // no such attr; starlark reports the standard error
	}
}

// AttrNames implements starlark.HasAttrs.
func (c *Context) AttrNames() []string {
	return []string{"identifier", "name", "version"}
}
