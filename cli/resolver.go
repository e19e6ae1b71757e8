package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads flag defaults from a
// YAML mapping.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// Keys are flag names. Hyphens may be written as underscores:
//
//	log-level: debug
//	log_format: json
//	log-pretty: false
//	verbose: true
//
// Command-line flags and environment variables override file values.
// An empty file yields no defaults.
func resolve(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	err := yaml.NewDecoder(r).Decode(&values)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return flagValues(values), nil
}

// flagValues implements [kong.Resolver] for YAML flag defaults.
type flagValues map[string]any

// Validate implements [kong.Resolver].
func (flagValues) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r flagValues) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := r[name]; ok {
			return scalar(value), nil
		}
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// scalar converts numbers to strings, which kong parses per flag type.
func scalar(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = scalar(e)
		}

		return out
	default:
		return v
	}
}
