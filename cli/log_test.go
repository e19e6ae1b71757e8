package cli

import (
	"testing"

	"github.com/nuclenergy/t-cli/log"
)

// restoreLog reverts the default logger after a test that configures it.
func restoreLog(t *testing.T) {
	t.Helper()

	saved := log.Default()

	t.Cleanup(func() {
		log.Config(
			log.WithLevel(saved.Level()),
			log.WithFormat(saved.Format()),
			log.WithPretty(log.DefaultPretty),
			log.WithCaller(log.DefaultCaller),
		)
	})
}

func TestLogConfig_Scan(t *testing.T) {
	restoreLog(t)

	tests := []struct {
		name   string
		args   []string
		want   logConfig
		level  log.Level
		format log.Format
	}{
		{
			name:   "separate_values",
			args:   []string{"--log-level", "debug", "collect", "--log-format", "json"},
			want:   logConfig{Level: "debug", Format: "json", Pretty: true},
			level:  log.LevelDebug,
			format: log.FormatJSON,
		},
		{
			name:   "assigned_values",
			args:   []string{"gc", "--log-level=warn", "--log-format=text"},
			want:   logConfig{Level: "warn", Format: "text", Pretty: true},
			level:  log.LevelWarn,
			format: log.FormatText,
		},
		{
			name:   "booleans",
			args:   []string{"--no-log-pretty", "--log-caller", "--log-level=error"},
			want:   logConfig{Level: "error", Caller: true},
			level:  log.LevelError,
			format: log.FormatText,
		},
		{
			name:   "assigned_booleans",
			args:   []string{"--log-pretty=false", "--no-log-caller=false", "--log-level=info"},
			want:   logConfig{Level: "info", Caller: true},
			level:  log.LevelInfo,
			format: log.FormatText,
		},
		{
			name:   "stops_at_terminator",
			args:   []string{"--log-level=debug", "--", "--log-level=error"},
			want:   logConfig{Level: "debug", Pretty: true},
			level:  log.LevelDebug,
			format: log.FormatText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log.Config(log.WithFormat(log.FormatText))

			got := logConfig{Pretty: true}
			got.scan(tt.args)

			if got != tt.want {
				t.Errorf("scan() = %+v, want %+v", got, tt.want)
			}

			if l := log.Default().Level(); l != tt.level {
				t.Errorf("log level = %v, want %v", l, tt.level)
			}

			if f := log.Default().Format(); f != tt.format {
				t.Errorf("log format = %v, want %v", f, tt.format)
			}
		})
	}
}

func TestLogConfig_Vars(t *testing.T) {
	t.Parallel()

	vars := (&logConfig{}).vars()

	for key, want := range map[string]string{
		"logLevel":      "info",
		"logLevelEnum":  "trace,debug,info,warn,error",
		"logFormat":     "text",
		"logFormatEnum": "text,json",
		"logTime":       "none",
	} {
		if got := vars[key]; got != want {
			t.Errorf("vars[%s] = %q, want %q", key, got, want)
		}
	}
}
