package task

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/lithammer/dedent"

	"github.com/nuclenergy/t-cli/config"
	"github.com/nuclenergy/t-cli/store"
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

func readFile(t *testing.T, root, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		t.Fatal(err)
	}

	return string(data)
}

// testConfig returns a configuration with languages en > fr > fr-CA
// scanning src into src/_t.
func testConfig() *config.Config {
	return &config.Config{
		Languages: config.LanguageNode{
			Name: "en",
			Children: []config.LanguageNode{{
				Name:     "fr",
				Children: []config.LanguageNode{{Name: "fr-CA"}},
			}},
		},
		Targets: []config.Target{{
			Includes: []string{"src"},
			Excludes: []string{"node_modules", ".*"},
			Output:   "_t",
			FnNames:  []string{"t"},
		}},
	}
}

// fixture trims the leading newline of a dedented fixture.
func fixture(s string) string { return dedent.Dedent(s)[1:] }

func TestCollect(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/app.ts":              `t("greeting"); t("farewell");`,
		"src/node_modules/lib.ts": `t("vendored")`,
	})

	rep, err := New(testConfig(), WithRoot(root)).Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(rep.Written) != 3 {
		t.Errorf("Written = %q, want 3 files", rep.Written)
	}

	for name, want := range map[string]string{
		"src/_t/en.json": fixture(`
			{
			  "greeting": "greeting",
			  "farewell": "farewell"
			}
		`),
		"src/_t/fr.json": fixture(`
			{
			  "greeting": null,
			  "farewell": null
			}
		`),
		"src/_t/fr-CA.json": fixture(`
			{
			  "greeting": null,
			  "farewell": null
			}
		`),
	} {
		if got := readFile(t, root, name); got != want {
			t.Errorf("%s =\n%s\nwant\n%s", name, got, want)
		}
	}
}

func TestCollect_Merge(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/app.ts": `t("b"); t("a"); t("new");`,
		"src/_t/en.json": `{"a": "A!", "b": null, "old": "Old"}`,
		"src/_t/fr.json": `{"old": null, "a": "Ah", "b": "Bé"}`,
	})

	cfg := testConfig()
	cfg.Languages.Children = []config.LanguageNode{{Name: "fr"}}

	if _, err := New(cfg, WithRoot(root)).Collect(context.Background()); err != nil {
		t.Fatal(err)
	}

	en := fixture(`
		{
		  "b": "b",
		  "a": "A!",
		  "new": "new",
		  "old": "Old"
		}
	`)
	if got := readFile(t, root, "src/_t/en.json"); got != en {
		t.Errorf("en.json =\n%s\nwant\n%s", got, en)
	}

	fr := fixture(`
		{
		  "b": "Bé",
		  "a": "Ah",
		  "new": null,
		  "old": null
		}
	`)
	if got := readFile(t, root, "src/_t/fr.json"); got != fr {
		t.Errorf("fr.json =\n%s\nwant\n%s", got, fr)
	}
}

func TestCollect_Idempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/app.ts":        `t("one"); t("two");`,
		"src/pages/home.ts": `t("home.title")`,
	})

	r := New(testConfig(), WithRoot(root))

	if _, err := r.Collect(context.Background()); err != nil {
		t.Fatal(err)
	}

	first := readFile(t, root, "src/pages/_t/en.json")

	rep, err := r.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(rep.Written) != 0 {
		t.Errorf("second run wrote %q", rep.Written)
	}

	if rep.Unchanged != 6 {
		t.Errorf("Unchanged = %d, want 6", rep.Unchanged)
	}

	if got := readFile(t, root, "src/pages/_t/en.json"); got != first {
		t.Errorf("second run changed en.json:\n%s", got)
	}
}

func TestCollect_NoKeys(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/app.ts": `console.log("nothing to translate")`,
	})

	rep, err := New(testConfig(), WithRoot(root)).Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if rep.Workspaces != 1 || len(rep.Written) != 0 {
		t.Errorf("Collect() = %+v, want 1 workspace and no files", rep)
	}

	if _, err := os.Stat(filepath.Join(root, "src", "_t")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output directory created: %v", err)
	}
}

func TestCollect_CorruptFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/app.ts":     `t("a")`,
		"src/_t/en.json": `{"a": "A"}`,
		"src/_t/fr.json": `{"a": 1}`,
	})

	_, err := New(testConfig(), WithRoot(root)).Collect(context.Background())
	if !errors.Is(err, store.ErrDecode) {
		t.Fatalf("Collect() error = %v, want %v", err, store.ErrDecode)
	}

	if got := readFile(t, root, "src/_t/en.json"); got != `{"a": "A"}` {
		t.Errorf("en.json changed to %s", got)
	}

	if _, err := os.Stat(filepath.Join(root, "src", "_t", "fr-CA.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("fr-CA.json written before failure: %v", err)
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/app.ts": `t("greeting"); t("farewell");`,
	})

	cfg := testConfig()
	cfg.Languages.Children = []config.LanguageNode{{Name: "fr"}}

	r := New(cfg, WithRoot(root))

	if _, err := r.Collect(context.Background()); err != nil {
		t.Fatal(err)
	}

	writeFiles(t, root, map[string]string{
		"src/app.ts":     `t("greeting");`,
		"src/_t/fr.json": `{"greeting":"Bonjour","farewell":null}`,
	})

	if _, err := r.Clean(context.Background()); err != nil {
		t.Fatal(err)
	}

	for name, want := range map[string]string{
		"src/_t/en.json": fixture(`
			{
			  "greeting": "greeting"
			}
		`),
		"src/_t/fr.json": fixture(`
			{
			  "greeting": "Bonjour"
			}
		`),
	} {
		if got := readFile(t, root, name); got != want {
			t.Errorf("%s =\n%s\nwant\n%s", name, got, want)
		}
	}
}

func TestClean_OrderAndFill(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/app.ts":     `t("a"); t("b"); t("c");`,
		"src/_t/en.json": `{"c": null, "gone": "x", "a": "A", "b": null}`,
	})

	cfg := testConfig()
	cfg.Languages.Children = nil

	rep, err := New(cfg, WithRoot(root)).Clean(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(rep.Written, []string{filepath.Join(root, "src", "_t", "en.json")}) {
		t.Errorf("Written = %q", rep.Written)
	}

	want := fixture(`
		{
		  "c": "c",
		  "a": "A",
		  "b": "b"
		}
	`)
	if got := readFile(t, root, "src/_t/en.json"); got != want {
		t.Errorf("en.json =\n%s\nwant\n%s", got, want)
	}
}

func TestClean_Unchanged(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	// Compact formatting is kept when nothing is removed.
	const compact = `{"a":"A"}`

	writeFiles(t, root, map[string]string{
		"src/app.ts":     `t("a")`,
		"src/_t/en.json": compact,
	})

	cfg := testConfig()
	cfg.Languages.Children = nil

	rep, err := New(cfg, WithRoot(root)).Clean(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(rep.Written) != 0 || rep.Unchanged != 1 {
		t.Errorf("Clean() = %+v, want one unchanged file", rep)
	}

	if got := readFile(t, root, "src/_t/en.json"); got != compact {
		t.Errorf("en.json = %s, want %s", got, compact)
	}
}

func TestClean_SkipsCorruptFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/app.ts":     `t("a")`,
		"src/_t/en.json": `{"a": "A", "b": "B"}`,
		"src/_t/fr.json": `not json`,
	})

	rep, err := New(testConfig(), WithRoot(root)).Clean(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{filepath.Join(root, "src", "_t", "fr.json")}; !slices.Equal(rep.Skipped, want) {
		t.Errorf("Skipped = %q, want %q", rep.Skipped, want)
	}

	if got := readFile(t, root, "src/_t/fr.json"); got != `not json` {
		t.Errorf("fr.json changed to %s", got)
	}

	want := fixture(`
		{
		  "a": "A"
		}
	`)
	if got := readFile(t, root, "src/_t/en.json"); got != want {
		t.Errorf("en.json =\n%s\nwant\n%s", got, want)
	}
}

func TestClean_SharedOutput(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"web/app.ts":     `t("web")`,
		"api/app.ts":     `t("api")`,
		"shared/.keep":   ``,
		"shared/en.json": `{"web": "W", "api": "A", "old": "O"}`,
	})

	cfg := &config.Config{
		Languages: config.LanguageNode{Name: "en"},
		Targets: []config.Target{
			{Includes: []string{"web"}, Excludes: []string{".*"}, Output: "../shared", FnNames: []string{"t"}},
			{Includes: []string{"api"}, Excludes: []string{".*"}, Output: "../shared", FnNames: []string{"t"}},
		},
	}

	if _, err := New(cfg, WithRoot(root)).Clean(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := fixture(`
		{
		  "web": "W",
		  "api": "A"
		}
	`)
	if got := readFile(t, root, "shared/en.json"); got != want {
		t.Errorf("en.json =\n%s\nwant\n%s", got, want)
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/_t/en.json":    `{"a": "A", "c": "C", "<b>": "B & co"}`,
		"src/_t/fr.json":    `{"a": null, "b": "Bé", "c": "Cé"}`,
		"src/_t/fr-CA.json": `{"c": null, "d": "D"}`,
		"lib/app.ts":        `t("a")`,
	})

	cfg := testConfig()
	cfg.Targets[0].Includes = []string{"src", "lib"}

	rep, err := New(cfg, WithRoot(root)).Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if rep.Workspaces != 3 || len(rep.Written) != 1 {
		t.Errorf("Generate() = %+v, want 3 workspaces and one file", rep)
	}

	want := fixture(`
		// Code generated by t-cli. DO NOT EDIT.

		export const _t = {
		  "en": {
		    "<b>": "B & co",
		    "a": "A",
		    "c": "C"
		  },
		  "fr": {
		    "<b>": "B & co",
		    "a": "A",
		    "b": "Bé",
		    "c": "Cé"
		  },
		  "fr-CA": {
		    "<b>": "B & co",
		    "a": "A",
		    "b": "Bé",
		    "c": "Cé",
		    "d": "D"
		  }
		} as const;

		export type Dict = typeof _t[keyof typeof _t];
	`)
	if got := readFile(t, root, "src/_t/index.ts"); got != want {
		t.Errorf("index.ts =\n%s\nwant\n%s", got, want)
	}

	if _, err := os.Stat(filepath.Join(root, "lib", "_t")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output directory created for lib: %v", err)
	}

	rep, err = New(cfg, WithRoot(root)).Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(rep.Written) != 0 {
		t.Errorf("second run wrote %q", rep.Written)
	}
}

func TestGenerate_MissingLanguage(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/_t/en.json": `{"a": "A"}`,
	})

	cfg := testConfig()
	cfg.Languages.Children = []config.LanguageNode{{Name: "de"}}

	if _, err := New(cfg, WithRoot(root)).Generate(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := fixture(`
		// Code generated by t-cli. DO NOT EDIT.

		export const _t = {
		  "de": {
		    "a": "A"
		  },
		  "en": {
		    "a": "A"
		  }
		} as const;

		export type Dict = typeof _t[keyof typeof _t];
	`)
	if got := readFile(t, root, "src/_t/index.ts"); got != want {
		t.Errorf("index.ts =\n%s\nwant\n%s", got, want)
	}
}

func TestIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		output, want string
	}{
		{"_t", "_t"},
		{"i18n", "i18n"},
		{"locales/gen", "gen"},
		{"my-keys", "my_keys"},
		{"2fa", "_2fa"},
		{"default", "_default"},
		{".", "_"},
		{"$t", "$t"},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			t.Parallel()

			if got := identifier(tt.output); got != tt.want {
				t.Errorf("identifier(%q) = %q, want %q", tt.output, got, tt.want)
			}
		})
	}
}

func TestCanceled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/app.ts": `t("a")`,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(testConfig(), WithRoot(root))

	for name, run := range map[string]func(context.Context) (Report, error){
		"collect":  r.Collect,
		"clean":    r.Clean,
		"generate": r.Generate,
	} {
		if _, err := run(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("%s: error = %v, want %v", name, err, context.Canceled)
		}
	}

	if _, err := os.Stat(filepath.Join(root, "src", "_t")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output written after cancel: %v", err)
	}
}
