// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	VenvNotActivatedId Id = iota + 1
	ResourceDirUnresolvedId
	RuntimeMissingId
	RuntimeVersionMismatchId
	EntryModuleNotFoundId
	ScriptFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	venvNotActivatedIssue = &Issue{
		id: VenvNotActivatedId,
		mdMsg: `
# No activated script environment!

skiff is running in dev mode, which requires an externally prepared script
environment named by the ` + "`SKIFF_VENV`" + ` environment variable.

## Things you can try:
- Activate the environment before launching:
~~~
$ source .venv/bin/activate
$ skiff
~~~

- Or set the variable explicitly:
~~~
$ SKIFF_VENV=/path/to/.venv skiff
~~~`,
	}

	resourceDirUnresolvedIssue = &Issue{
		id: ResourceDirUnresolvedId,
		mdMsg: `
# Packaged resource directory not found!

In standalone mode skiff expects a ` + "`resources`" + ` directory shipped
next to the executable (inside ` + "`Contents/Resources`" + ` for macOS app
bundles).

## Things you can try:
- Reinstall the application from its packaged distribution
- Verify the installation directory was not partially deleted
- For development iteration, run a dev build with an activated environment`,
	}

	runtimeMissingIssue = &Issue{
		id: RuntimeMissingId,
		mdMsg: `
# No runtime installation found!

The resolved environment directory does not contain a runtime installation:
a ` + "`runtime.toml`" + ` manifest plus a ` + "`modules`" + ` directory.

## Expected layout:
~~~
<environment root>/
  runtime.toml
  modules/
    skiff_app.star
~~~

## Things you can try:
- Point SKIFF_VENV at an environment prepared for this application
- Re-run your bundler so the packaged resources include the runtime files`,
	}

	runtimeVersionMismatchIssue = &Issue{
		id: RuntimeVersionMismatchId,
		mdMsg: `
# Incompatible runtime version!

The environment's ` + "`runtime.toml`" + ` declares a runtime version this
host build does not support.

## Things you can try:
- Upgrade the host binary to one matching the environment
- Re-prepare the environment with the runtime version this host supports`,
	}

	entryModuleNotFoundIssue = &Issue{
		id: EntryModuleNotFoundId,
		mdMsg: `
# Entry module not found!

The application's entry module was not found under the environment's
modules directory.

## Things you can try:
- Verify the environment contains ` + "`modules/skiff_app.star`" + `
- Check the environment was prepared for this application, not another one`,
	}

	scriptFailedIssue = &Issue{
		id: ScriptFailedId,
		mdMsg: `
# Script execution failed!

The application's entry script raised an unhandled failure inside the
embedded runtime.

## Things you can try:
- Read the backtrace emitted above for the failing statement
- Run a dev build against a local environment to iterate on the script`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the skiff host configuration file.

## Configuration file locations:
- Linux: ~/.config/skiff/config.cue
- macOS: ~/Library/Application Support/skiff/config.cue
- Windows: %APPDATA%\skiff\config.cue

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults`,
	}

	issues = map[Id]*Issue{
		venvNotActivatedIssue.Id():       venvNotActivatedIssue,
		resourceDirUnresolvedIssue.Id():  resourceDirUnresolvedIssue,
		runtimeMissingIssue.Id():         runtimeMissingIssue,
		runtimeVersionMismatchIssue.Id(): runtimeVersionMismatchIssue,
		entryModuleNotFoundIssue.Id():    entryModuleNotFoundIssue,
		scriptFailedIssue.Id():           scriptFailedIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
