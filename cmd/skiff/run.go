// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skiffworks/skiff/internal/capability"
	"github.com/skiffworks/skiff/internal/hostenv"
	"github.com/skiffworks/skiff/internal/runtime"
	"github.com/skiffworks/skiff/pkg/types"
)

// entryPoint is the script module that receives control after bootstrap.
// It is fixed at compile time and never derived from user input.
const entryPoint = types.EntryPoint("skiff_app")

// appIdentifier is the reverse-DNS application identifier exposed to scripts
// through the capability context.
const appIdentifier = "works.skiff.app"

// runApp is the root command handler: resolve the deployment environment,
// build the embedded interpreter with the capability module installed, and
// transfer control. The script's outcome becomes the process exit code via
// ExitError.
func runApp(cobraCmd *cobra.Command, _ []string) error {
	return runPipeline(cobraCmd.Context(), hostenv.NewResolver())
}

// runPipeline is the bootstrap sequence behind runApp, split out so tests
// can substitute the environment resolver.
func runPipeline(ctx context.Context, resolver *hostenv.Resolver) error {
	env, err := resolver.Resolve()
	if err != nil {
		return bootstrapFailure(err)
	}

	module := capability.NewModule(capability.Metadata{
		Name:       "skiff",
		Identifier: appIdentifier,
		Version:    Version,
	})

	interp, err := runtime.Build(runtime.BuildOptions{
		Env:    env,
		Entry:  entryPoint,
		Module: module,
	})
	if err != nil {
		return bootstrapFailure(err)
	}

	if verbose {
		fmt.Fprintln(os.Stderr, VerboseStyle.Render(
			fmt.Sprintf("environment: %s (%s)", env.Kind, env.Root)))
		fmt.Fprintln(os.Stderr, VerboseStyle.Render(
			fmt.Sprintf("entry module: %s", interp.EntryFile())))
	}

	code, err := interp.Run(ctx)
	if err != nil {
		return scriptFailure(code, err)
	}
	if !code.IsSuccess() {
		return &ExitError{Code: code}
	}
	return nil
}

// bootstrapFailure reports a pre-transfer failure. No script code has run;
// the process exits 1 regardless of what went wrong.
func bootstrapFailure(err error) error {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	renderIssueGuidance(err)
	return &ExitError{Code: 1, Err: err}
}

// scriptFailure reports a failure after control transfer, surfacing the
// interpreter backtrace in verbose mode.
func scriptFailure(code types.ExitCode, err error) error {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())

	var scriptErr *runtime.ScriptError
	if errors.As(err, &scriptErr) && scriptErr.Backtrace != "" {
		fmt.Fprintln(os.Stderr, VerboseStyle.Render(scriptErr.Backtrace))
	}
	if verbose {
		renderIssueGuidance(err)
	}

	return &ExitError{Code: code, Err: err}
}
