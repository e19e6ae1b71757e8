package config

import (
	"errors"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/language"

	"github.com/nuclenergy/t-cli/pkg"
)

// Warning describes configuration content that is accepted but probably
// not what the author meant.
type Warning struct {
	Message    string
	Path       string // Location in the configuration, e.g. "targets[0].output"
	Value      string
	Suggestion string
}

// Attrs returns the warning as log attributes.
func (w Warning) Attrs() []slog.Attr {
	attrs := []slog.Attr{slog.String("path", w.Path)}

	if w.Value != "" {
		attrs = append(attrs, slog.String("value", w.Value))
	}

	if w.Suggestion != "" {
		attrs = append(attrs, slog.String("suggestion", w.Suggestion))
	}

	return attrs
}

//nolint:gochecknoglobals
var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
})

// Validate checks c for missing fields and duplicate language names.
// Language names that are not well-formed BCP 47 tags are reported as
// warnings only.
func (c *Config) Validate() ([]Warning, error) {
	if err := validate().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, ErrInvalid.Wrap(err)
		}

		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			ns := strings.TrimPrefix(fe.Namespace(), "Config.")
			fields = append(fields, ns+" ("+fe.Tag()+")")
		}

		return nil, ErrInvalid.Wrapf("validation failed on %s",
			strings.Join(fields, ", "))
	}

	var (
		warnings []Warning
		errs     pkg.Chain
	)

	seen := make(map[string]int)

	for in := range c.Languages.Walk() {
		if seen[in.Language]++; seen[in.Language] == 2 {
			errs = append(errs, ErrDuplicateLanguage.
				Wrapf("%q is declared more than once", in.Language).
				With(slog.String("language", in.Language)))
		}

		if seen[in.Language] > 1 {
			continue
		}

		if _, err := language.Parse(in.Language); err != nil {
			warnings = append(warnings, Warning{
				Message: "language is not a BCP 47 tag",
				Path:    "languages",
				Value:   in.Language,
			})
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	return warnings, nil
}

var (
	topKeys      = []string{"languages", "targets"}
	languageKeys = []string{"name", "children"}
	targetKeys   = []string{"includes", "excludes", "output", "fnNames"}
)

// unknownKeys reports object keys that no configuration field uses.
func unknownKeys(obj map[string]any) []Warning {
	var warnings []Warning

	check := func(path string, v any, known []string) {
		m, ok := v.(map[string]any)
		if !ok {
			return
		}

		for _, key := range slices.Sorted(maps.Keys(m)) {
			if slices.Contains(known, key) {
				continue
			}

			w := Warning{Message: "unknown configuration key", Path: join(path, key)}
			if matches := fuzzy.Find(key, known); len(matches) > 0 {
				w.Suggestion = matches[0].Str
			}

			warnings = append(warnings, w)
		}
	}

	var walk func(path string, v any)

	walk = func(path string, v any) {
		check(path, v, languageKeys)

		if m, ok := v.(map[string]any); ok {
			children, _ := m["children"].([]any)
			for i, c := range children {
				walk(path+".children["+strconv.Itoa(i)+"]", c)
			}
		}
	}

	check("", obj, topKeys)
	walk("languages", obj["languages"])

	targets, _ := obj["targets"].([]any)
	for i, t := range targets {
		check("targets["+strconv.Itoa(i)+"]", t, targetKeys)
	}

	return warnings
}

func join(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}
