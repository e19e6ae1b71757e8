package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/lithammer/dedent"
)

func flag(name string) *kong.Flag {
	return &kong.Flag{Value: &kong.Value{Name: name}}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	r, err := resolve(strings.NewReader(dedent.Dedent(`
		log-level: debug
		log_format: json
		log-pretty: false
		verbose: true
		jobs: 4
		ratio: 0.5
		names: [a, 2]
	`)))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "json"},
		{"log-pretty", false},
		{"verbose", true},
		{"jobs", "4"},
		{"ratio", "0.5"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()

			got, err := r.Resolve(nil, nil, flag(tt.flag))
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%s) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}

	got, err := r.Resolve(nil, nil, flag("names"))
	if err != nil {
		t.Fatal(err)
	}

	if list, ok := got.([]any); !ok || !slices.Equal(list, []any{"a", "2"}) {
		t.Errorf("Resolve(names) = %#v, want [a 2]", got)
	}
}

func TestResolve_Empty(t *testing.T) {
	t.Parallel()

	r, err := resolve(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := r.Resolve(nil, nil, flag("log-level")); got != nil {
		t.Errorf("Resolve() = %#v, want nil", got)
	}
}

func TestResolve_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := resolve(strings.NewReader("- not\n- a mapping\n")); err == nil {
		t.Error("resolve() succeeded on a sequence")
	}
}
