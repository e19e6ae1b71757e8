package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/nuclenergy/t-cli/log"
	"github.com/nuclenergy/t-cli/pkg"
	"github.com/nuclenergy/t-cli/script"
)

// Predefined errors (sentinel values).
var (
	ErrRead              = pkg.NewError("failed to read configuration")
	ErrDecode            = pkg.NewError("failed to decode configuration")
	ErrInvalid           = pkg.NewError("invalid configuration")
	ErrDuplicateLanguage = pkg.NewError("duplicate language")
	ErrEncode            = pkg.NewError("failed to encode configuration")
	ErrFormat            = pkg.NewError("unsupported configuration format")
)

// Format identifies a configuration file syntax.
type Format int

const (
	FormatScript Format = iota // script
	FormatJSON                 // json
	FormatYAML                 // yaml
	FormatTOML                 // toml
)

// FormatOf returns the format of the named file, judged by its extension.
// Unknown extensions are treated as scripts.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatScript
	}
}

// Load reads, decodes and validates the configuration file at path.
// Warnings about suspicious but acceptable content are logged.
func Load(ctx context.Context, path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrRead.Wrap(err).With(slog.String("path", path))
	}

	cfg, warnings, err := Decode(ctx, path, src)
	if err != nil {
		return nil, err
	}

	for _, w := range warnings {
		log.WarnContext(ctx, w.Message, w.Attrs()...)
	}

	log.DebugContext(ctx, "configuration loaded",
		slog.String("path", path),
		slog.Int("languages", len(cfg.Languages.Languages())),
		slog.Int("targets", len(cfg.Targets)),
	)

	return cfg, nil
}

// Decode decodes and validates a configuration named name.
func Decode(ctx context.Context, name string, src []byte) (*Config, []Warning, error) {
	raw, err := decodeRaw(ctx, name, src)
	if err != nil {
		return nil, nil, err
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, ErrDecode.Wrapf("expected an object, got %s", kindOf(raw)).
			With(slog.String("path", name))
	}

	warnings := unknownKeys(obj)

	cfg, err := fromValue(obj)
	if err != nil {
		return nil, nil, ErrDecode.Wrap(err).With(slog.String("path", name))
	}

	more, err := cfg.Validate()
	if err != nil {
		return nil, nil, err
	}

	return cfg, append(warnings, more...), nil
}

func decodeRaw(ctx context.Context, name string, src []byte) (any, error) {
	var (
		raw any
		err error
	)

	switch FormatOf(name) {
	case FormatScript:
		// Errors from the evaluator are already descriptive and typed.
		return script.EvalSource(ctx, name, src)

	case FormatJSON:
		err = json.Unmarshal(src, &raw)

	case FormatYAML:
		err = yaml.UnmarshalContext(ctx, src, &raw)

	case FormatTOML:
		var m map[string]any

		err = toml.Unmarshal(src, &m)
		raw = m
	}

	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("path", name))
	}

	return raw, nil
}

// fromValue converts a decoded object into a Config by way of its JSON form,
// so that every format shares the same field names and defaults.
func fromValue(obj map[string]any) (*Config, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if _, ok := obj["targets"]; !ok {
		cfg.Targets = DefaultTargets()
	}

	return &cfg, nil
}

// UnmarshalJSON fills in the defaults of fields the input leaves out.
func (t *Target) UnmarshalJSON(data []byte) error {
	type plain Target

	p := plain{Output: DefaultOutput, FnNames: DefaultFnNames()}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*t = Target(p)

	return nil
}

// Encode writes cfg to w in the given format. Scripts are written as a
// TypeScript module default-exporting the configuration.
func Encode(ctx context.Context, w io.Writer, format Format, cfg Config) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')

	case FormatYAML:
		data, err = yaml.MarshalContext(ctx, cfg, yaml.Indent(2), yaml.IndentSequence(true))

	case FormatTOML:
		var buf bytes.Buffer

		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		err = enc.Encode(cfg)
		data = buf.Bytes()

	case FormatScript:
		data, err = scriptTemplate(cfg)

	default:
		return ErrFormat.With(slog.Int("format", int(format)))
	}

	if err != nil {
		return ErrEncode.Wrap(err)
	}

	_, err = w.Write(data)

	return err
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case []any:
		return "an array"
	case string:
		return "a string"
	default:
		return fmt.Sprintf("%T", v)
	}
}
