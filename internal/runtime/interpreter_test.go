// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skiffworks/skiff/internal/capability"
)

var testMeta = capability.Metadata{
	Name:       "Skiff Test App",
	Identifier: "works.skiff.test",
	Version:    "0.0.0-test",
}

func buildWithCapability(t *testing.T, modules map[string]string) *Interpreter {
	t.Helper()

	env := scaffoldEnv(t, modules)
	return mustBuild(t, BuildOptions{
		Env:    env,
		Entry:  "skiff_app",
		Module: capability.NewModule(testMeta),
	})
}

func TestRunGreetEndToEnd(t *testing.T) {
	it := buildWithCapability(t, map[string]string{
		"skiff_app": `load("skiff_ext", "context_factory", "builder_factory")

def main():
    ctx = context_factory()
    app = builder_factory()
    msg = app.invoke("greet", "World")
    if msg != "Hello, World! You've been greeted from Go!":
        return 12
    if ctx.identifier != "works.skiff.test":
        return 13
    return app.run(ctx)
`,
	})

	code, err := it.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 0 {
		t.Errorf("Run() code = %d, want 0", code)
	}
}

func TestRunMainExitCode(t *testing.T) {
	it := buildWithCapability(t, map[string]string{
		"skiff_app": "def main():\n    return 7\n",
	})

	code, err := it.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 7 {
		t.Errorf("Run() code = %d, want 7", code)
	}
}

func TestRunMainReturnsNone(t *testing.T) {
	it := buildWithCapability(t, map[string]string{
		"skiff_app": "def main():\n    pass\n",
	})

	code, err := it.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 0 {
		t.Errorf("Run() code = %d, want 0", code)
	}
}

func TestRunWithoutMain(t *testing.T) {
	it := buildWithCapability(t, map[string]string{
		"skiff_app": "greeting = \"hello\"\n",
	})

	code, err := it.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 0 {
		t.Errorf("Run() code = %d, want 0", code)
	}
}

func TestRunMainNotCallable(t *testing.T) {
	it := buildWithCapability(t, map[string]string{
		"skiff_app": "main = 3\n",
	})

	code, err := it.Run(context.Background())
	if !errors.Is(err, ErrScript) {
		t.Fatalf("Run() error = %v, want ScriptError", err)
	}
	if code != 1 {
		t.Errorf("Run() code = %d, want 1", code)
	}
}

func TestRunMainBadReturnType(t *testing.T) {
	it := buildWithCapability(t, map[string]string{
		"skiff_app": "def main():\n    return \"done\"\n",
	})

	code, err := it.Run(context.Background())
	if !errors.Is(err, ErrScript) {
		t.Fatalf("Run() error = %v, want ScriptError", err)
	}
	if code != 1 {
		t.Errorf("Run() code = %d, want 1", code)
	}
}

func TestRunMainOutOfRangeCode(t *testing.T) {
	it := buildWithCapability(t, map[string]string{
		"skiff_app": "def main():\n    return 4242\n",
	})

	code, err := it.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 1 {
		t.Errorf("Run() code = %d, want clamped 1", code)
	}
}

func TestRunScriptFailure(t *testing.T) {
	it := buildWithCapability(t, map[string]string{
		"skiff_app": "def main():\n    fail(\"boom\")\n",
	})

	code, err := it.Run(context.Background())
	if code != 1 {
		t.Errorf("Run() code = %d, want 1", code)
	}

	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("Run() error = %v, want *ScriptError", err)
	}
	if scriptErr.Backtrace == "" {
		t.Error("ScriptError.Backtrace is empty, want interpreter stack trace")
	}
	if !strings.Contains(scriptErr.Backtrace, "boom") {
		t.Errorf("Backtrace %q does not mention the failure", scriptErr.Backtrace)
	}
}

func TestRunLoadsHelperModules(t *testing.T) {
	it := buildWithCapability(t, map[string]string{
		"skiff_app": `load("util.codes", "SUCCESS")

def main():
    return SUCCESS
`,
		"util.codes": "SUCCESS = 0\n",
	})

	code, err := it.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 0 {
		t.Errorf("Run() code = %d, want 0", code)
	}
}

func TestRunRejectsLoadCycle(t *testing.T) {
	it := buildWithCapability(t, map[string]string{
		"skiff_app": "load(\"alpha\", \"a\")\n",
		"alpha":     "load(\"beta\", \"b\")\n\na = 1\n",
		"beta":      "load(\"alpha\", \"a\")\n\nb = 2\n",
	})

	_, err := it.Run(context.Background())
	if err == nil {
		t.Fatal("Run() error = nil, want load cycle failure")
	}
	if !strings.Contains(err.Error(), "cycle in load graph") {
		t.Errorf("Run() error = %v, want load cycle diagnosis", err)
	}
}

func TestRunTwiceFails(t *testing.T) {
	it := buildWithCapability(t, map[string]string{
		"skiff_app": "def main():\n    return 0\n",
	})

	if _, err := it.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	code, err := it.Run(context.Background())
	if !errors.Is(err, ErrInterpreterConsumed) {
		t.Errorf("second Run() error = %v, want ErrInterpreterConsumed", err)
	}
	if code != 1 {
		t.Errorf("second Run() code = %d, want 1", code)
	}
}

func TestRunCanceledContext(t *testing.T) {
	it := buildWithCapability(t, map[string]string{
		"skiff_app": "def main():\n    while True:\n        pass\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, err := it.Run(ctx)
	if !errors.Is(err, ErrScript) {
		t.Fatalf("Run() error = %v, want ScriptError from cancellation", err)
	}
	if code != 1 {
		t.Errorf("Run() code = %d, want 1", code)
	}
}
