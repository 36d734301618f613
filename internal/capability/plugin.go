// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"fmt"
	"os/exec"
	"runtime"
)

type (
	// Plugin is an opaque host-side extension attached to a builder. Plugins
	// may contribute command handlers; anything beyond that is outside this
	// layer's contract.
	Plugin interface {
		// Name returns the plugin's registration name.
		Name() string
		// Init is called once when the builder's run path starts, with the
		// application context.
		Init(ctx *Context) error
		// Handlers returns the command handlers the plugin contributes.
		Handlers() map[string]Handler
	}

	// OpenerPlugin is the general-purpose system-integration plugin: it lets
	// scripts open URLs and filesystem paths with the platform's default
	// application.
	OpenerPlugin struct {
		// launch starts the platform opener; swapped in tests.
		launch func(name string, args ...string) error
	}
)

var _ Plugin = (*OpenerPlugin)(nil)

// NewOpenerPlugin creates the opener plugin.
func NewOpenerPlugin() *OpenerPlugin {
	return &OpenerPlugin{
		launch: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Name implements Plugin.
func (p *OpenerPlugin) Name() string { return "opener" }

// Init implements Plugin. The opener needs nothing from the context.
func (p *OpenerPlugin) Init(*Context) error { return nil }

// Handlers implements Plugin.
func (p *OpenerPlugin) Handlers() map[string]Handler {
	return map[string]Handler{
		"open_url":  p.open,
		"open_path": p.open,
	}
}

// open launches the platform opener for the first argument.
func (p *OpenerPlugin) open(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", fmt.Errorf("open: missing target")
	}
	target := args[0]

	var err error
	switch runtime.GOOS {
	case "darwin":
		err = p.launch("open", target)
	case "windows":
		err = p.launch("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		err = p.launch("xdg-open", target)
	}
	if err != nil {
		return "", fmt.Errorf("open %q: %w", target, err)
	}
	return "", nil
}
