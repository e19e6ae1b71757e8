package task

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/lithammer/dedent"

	"github.com/nuclenergy/t-cli/log"
	"github.com/nuclenergy/t-cli/pkg"
	"github.com/nuclenergy/t-cli/store"
)

// ArtifactFile is the name of the generated module in an output directory.
const ArtifactFile = "index.ts"

// ErrGenerate is returned when an artifact cannot be rendered.
var ErrGenerate = pkg.NewError("failed to generate artifact")

var artifactTemplate = template.Must(template.New(ArtifactFile).Parse(
	strings.TrimLeft(dedent.Dedent(`
		// Code generated by t-cli. DO NOT EDIT.

		export const {{ .Name }} = {{ .Dict }} as const;

		export type Dict = typeof {{ .Name }}[keyof typeof {{ .Name }}];
	`), "\n"),
))

// Generate writes index.ts into every existing output directory. Each
// language's dictionary starts from its parent's resolved dictionary and is
// overlaid with its own non-null values. Output directories that do not
// exist are skipped.
func (r *Runner) Generate(ctx context.Context) (Report, error) {
	var rep Report

	workspaces, err := r.workspaces(ctx)
	if err != nil {
		return rep, err
	}

	for _, ws := range workspaces {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		rep.Workspaces++

		out := ws.output()
		if info, err := os.Stat(out); err != nil || !info.IsDir() {
			log.DebugContext(ctx, "no output directory", slog.String("path", out))

			continue
		}

		dicts := make(map[string]map[string]string)

		for in := range r.config.Languages.Walk() {
			dict := maps.Clone(dicts[in.Parent])
			if dict == nil {
				dict = make(map[string]string)
			}

			m, _, err := store.Read(store.Path(out, in.Language))
			if err != nil {
				return rep, err
			}

			if m != nil {
				maps.Copy(dict, m.Strings())
			}

			dicts[in.Language] = dict
		}

		path := filepath.Join(out, ArtifactFile)

		data, err := render(identifier(ws.target.Output), dicts)
		if err != nil {
			return rep, ErrGenerate.Wrap(err).With(slog.String("path", path))
		}

		written, err := store.WriteBytes(path, data)
		if err != nil {
			return rep, err
		}

		rep.record(path, written)

		log.DebugContext(ctx, "generated",
			slog.String("path", path),
			slog.Int("languages", len(dicts)),
			slog.Bool("written", written),
		)
	}

	return rep, nil
}

// render returns the artifact exporting dicts under name. Languages and keys
// are sorted.
func render(name string, dicts map[string]map[string]string) ([]byte, error) {
	var dict bytes.Buffer

	enc := json.NewEncoder(&dict)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(dicts); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	err := artifactTemplate.Execute(&buf, struct{ Name, Dict string }{
		Name: name,
		Dict: strings.TrimSuffix(dict.String(), "\n"),
	})
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// identifier derives the exported constant name from an output directory.
func identifier(output string) string {
	name := filepath.Base(filepath.Clean(output))

	var b strings.Builder

	for i, r := range name {
		switch {
		case r == '_' || r == '$',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
			b.WriteRune(r)

		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}

			b.WriteRune(r)

		default:
			b.WriteByte('_')
		}
	}

	id := b.String()
	if id == "" || reserved[id] {
		return "_" + id
	}

	return id
}

var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "let": true, "static": true, "yield": true,
	"await": true, "implements": true, "interface": true, "package": true,
	"private": true, "protected": true, "public": true,
}
