package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/nuclenergy/t-cli/config"
	"github.com/nuclenergy/t-cli/task"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// testContext returns a context running commands in dir and capturing their
// output.
func testContext(t *testing.T, dir string) (context.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	ctx := WithStdout(WithDir(t.Context(), dir), &out)

	return ctx, &out
}

const projectConfig = `
import type { TConfig } from "t-cli";

const config = {
  languages: { name: "en", children: [{ name: "fr" }] },
  targets: [{ includes: ["/src"], excludes: ["node_modules"] }],
} as const satisfies TConfig;

export default config;
`

func TestDirFrom(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := dirFrom(ctx); got != "." {
		t.Errorf("dirFrom() = %q, want %q", got, ".")
	}

	ctx = WithDir(ctx, "/work")
	if got := inDir(ctx, "t.config.ts"); got != filepath.Join("/work", "t.config.ts") {
		t.Errorf("inDir() = %q", got)
	}

	if got := inDir(ctx, "/abs/t.config.ts"); got != "/abs/t.config.ts" {
		t.Errorf("inDir() = %q", got)
	}
}

func TestStdoutFrom(t *testing.T) {
	t.Parallel()

	if got := stdoutFrom(context.Background()); got != os.Stdout {
		t.Errorf("stdoutFrom() = %v, want os.Stdout", got)
	}

	var out, kout bytes.Buffer

	ctx := WithStdout(context.Background(), &out)
	if got := stdoutFrom(ctx); got != &out {
		t.Errorf("stdoutFrom() = %v, want WithStdout writer", got)
	}

	var cli struct{}

	parser, err := kong.New(&cli, kong.Writers(&kout, &kout))
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := stdoutFrom(WithContext(ctx, ktx)); got != &kout {
		t.Errorf("stdoutFrom() = %v, want kong writer", got)
	}
}

func TestInit_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		output  string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_script", output: "t.config.ts"},
		{name: "create_yaml", output: "t.config.yaml"},
		{name: "create_json", output: "t.config.json"},
		{name: "overwrite_with_force", output: "t.config.ts", force: true, exists: true},
		{name: "fail_without_force", output: "t.config.ts", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, tt.output)

			if tt.exists {
				writeFiles(t, dir, map[string]string{tt.output: "existing content"})
			}

			ctx, out := testContext(t, dir)

			err := (&Init{Output: tt.output, Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}

				data, _ := os.ReadFile(path)
				if string(data) != "existing content" {
					t.Errorf("existing file modified: %q", data)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if !strings.HasPrefix(out.String(), "Config file generated successfully") {
				t.Errorf("status = %q", out.String())
			}

			// The template must load back as the example configuration.
			cfg, err := config.Load(ctx, path)
			if err != nil {
				t.Fatalf("Load(%s) error = %v", tt.output, err)
			}

			if got := cfg.Languages.Languages(); len(got) != 2 || got[0] != "en" || got[1] != "zh" {
				t.Errorf("Languages() = %q, want [en zh]", got)
			}
		})
	}
}

func TestProject_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"t.config.ts": projectConfig,
		"src/app.tsx": `export const App = () => <h1>{t("title")}</h1>;`,
	})

	ctx, out := testContext(t, dir)

	if err := (&Cg{Project{Config: config.DefaultFile}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	want := "Collected and generated successfully (3 written, 0 unchanged)\n"
	if got := out.String(); got != want {
		t.Errorf("status = %q, want %q", got, want)
	}

	for _, name := range []string{"en.json", "fr.json", "index.ts"} {
		if _, err := os.Stat(filepath.Join(dir, "src", "_t", name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}

	writeFiles(t, dir, map[string]string{
		"src/app.tsx": `export const App = () => <h1>{t("heading")}</h1>;`,
	})

	out.Reset()

	if err := (&Gc{Project{Config: config.DefaultFile}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if got := out.String(); !strings.HasPrefix(got, "Collected, generated and cleaned successfully") {
		t.Errorf("status = %q", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "src", "_t", "fr.json"))
	if err != nil {
		t.Fatal(err)
	}

	if want := "{\n  \"heading\": null\n}\n"; string(data) != want {
		t.Errorf("fr.json = %q, want %q", data, want)
	}
}

func TestProject_MissingConfig(t *testing.T) {
	t.Parallel()

	ctx, out := testContext(t, t.TempDir())

	err := (&Collect{Project{Config: "missing.ts"}}).Run(ctx)
	if !errors.Is(err, config.ErrRead) {
		t.Errorf("Run() error = %v, want %v", err, config.ErrRead)
	}

	if out.Len() != 0 {
		t.Errorf("status printed on failure: %q", out.String())
	}
}

func TestLanguages_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"t.config.json": `{"languages": {"name": "en", "children": [
			{"name": "fr", "children": [{"name": "fr-CA"}]},
			{"name": "zh"}
		]}}`,
	})

	ctx, out := testContext(t, dir)

	if err := (&Languages{Project{Config: "t.config.json"}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 || lines[0] != "en" {
		t.Fatalf("output =\n%s", out.String())
	}

	for i, name := range []string{"fr", "fr-CA", "zh"} {
		if !strings.HasSuffix(lines[i+1], " "+name) {
			t.Errorf("line %d = %q, want suffix %q", i+1, lines[i+1], name)
		}
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rep  task.Report
		want string
	}{
		{"empty", task.Report{}, "0 written, 0 unchanged"},
		{"written", task.Report{Written: []string{"a", "b"}, Unchanged: 1}, "2 written, 1 unchanged"},
		{"skipped", task.Report{Unchanged: 3, Skipped: []string{"c"}}, "0 written, 3 unchanged, 1 skipped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := summary(tt.rep); got != tt.want {
				t.Errorf("summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
