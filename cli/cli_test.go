package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nuclenergy/t-cli/cli/cmd"
	"github.com/nuclenergy/t-cli/pkg"
)

func TestRun(t *testing.T) {
	restoreLog(t)

	dir := t.TempDir()

	var out bytes.Buffer

	ctx := cmd.WithStdout(t.Context(), &out)
	exit := func(code int) { t.Fatalf("exit(%d)", code) }

	if err := Run(ctx, exit, "-C", dir, "init", "-o", "t.config.json"); err != nil {
		t.Fatal(err)
	}

	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}

	err := os.WriteFile(filepath.Join(dir, "src", "app.ts"), []byte(`t("hello")`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	out.Reset()

	if err := Run(ctx, exit, "--dir", dir, "cg", "-c", "t.config.json"); err != nil {
		t.Fatal(err)
	}

	if got := out.String(); !strings.HasPrefix(got, "Collected and generated successfully") {
		t.Errorf("status = %q", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "src", "_t", "zh.json"))
	if err != nil {
		t.Fatal(err)
	}

	if want := "{\n  \"hello\": null\n}\n"; string(data) != want {
		t.Errorf("zh.json = %q, want %q", data, want)
	}
}

func TestRun_Version(t *testing.T) {
	restoreLog(t)

	var (
		out  bytes.Buffer
		code = -1
	)

	// kong keeps parsing after the version flag calls exit, so the missing
	// command error is expected.
	_ = Run(cmd.WithStdout(t.Context(), &out), func(c int) { code = c }, "--version")

	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}

	if want := pkg.Name + " " + pkg.Version(); !strings.Contains(out.String(), want) {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_CommandError(t *testing.T) {
	restoreLog(t)

	var out bytes.Buffer

	err := Run(cmd.WithStdout(t.Context(), &out), func(int) {},
		"-C", t.TempDir(), "collect")
	if err == nil {
		t.Fatal("Run() succeeded without a configuration file")
	}

	if out.Len() != 0 {
		t.Errorf("status printed on failure: %q", out.String())
	}
}
