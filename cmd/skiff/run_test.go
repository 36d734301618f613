// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/skiffworks/skiff/internal/hostenv"
	"github.com/skiffworks/skiff/internal/runtime"
)

// Pipeline tests share the runtime's bootstrap once guard and therefore do
// not run in parallel.

// devResolver scaffolds a script environment in a temp dir and returns a
// resolver that reports it as an activated dev venv.
func devResolver(t *testing.T, script string) *hostenv.Resolver {
	t.Helper()

	root := t.TempDir()
	manifest := "[runtime]\nversion = 1\n"
	if err := os.WriteFile(filepath.Join(root, runtime.ManifestFileName), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	modules := filepath.Join(root, runtime.DefaultModulesDir)
	if err := os.Mkdir(modules, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(modules, "skiff_app.star"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	return &hostenv.Resolver{
		DevMode: true,
		Getenv:  func(string) string { return root },
	}
}

func TestRunPipelineSuccess(t *testing.T) {
	t.Cleanup(runtime.Reset)

	resolver := devResolver(t, `load("skiff_ext", "context_factory", "builder_factory")

def main():
    return builder_factory().run(context_factory())
`)

	if err := runPipeline(context.Background(), resolver); err != nil {
		t.Errorf("runPipeline() error = %v", err)
	}
}

func TestRunPipelineScriptExitCode(t *testing.T) {
	t.Cleanup(runtime.Reset)

	resolver := devResolver(t, "def main():\n    return 3\n")

	err := runPipeline(context.Background(), resolver)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runPipeline() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("Code = %d, want 3", exitErr.Code)
	}
}

func TestRunPipelineScriptFailure(t *testing.T) {
	t.Cleanup(runtime.Reset)

	resolver := devResolver(t, "def main():\n    fail(\"boom\")\n")

	err := runPipeline(context.Background(), resolver)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runPipeline() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("Code = %d, want 1", exitErr.Code)
	}
	if !errors.Is(err, runtime.ErrScript) {
		t.Errorf("errors.Is(err, runtime.ErrScript) = false for %v", err)
	}
}

func TestRunPipelineResolveFailure(t *testing.T) {
	t.Cleanup(runtime.Reset)

	resolver := &hostenv.Resolver{
		DevMode: true,
		Getenv:  func(string) string { return "" },
	}

	err := runPipeline(context.Background(), resolver)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runPipeline() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("Code = %d, want 1", exitErr.Code)
	}
	if !errors.Is(err, hostenv.ErrConfiguration) {
		t.Errorf("errors.Is(err, hostenv.ErrConfiguration) = false for %v", err)
	}
}

func TestRunPipelineBootstrapFailure(t *testing.T) {
	t.Cleanup(runtime.Reset)

	// An activated venv without a runtime manifest cannot bootstrap.
	root := t.TempDir()
	resolver := &hostenv.Resolver{
		DevMode: true,
		Getenv:  func(string) string { return root },
	}

	err := runPipeline(context.Background(), resolver)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runPipeline() error = %v, want *ExitError", err)
	}
	if !errors.Is(err, runtime.ErrBootstrap) {
		t.Errorf("errors.Is(err, runtime.ErrBootstrap) = false for %v", err)
	}
}
