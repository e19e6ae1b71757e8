package script

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/nuclenergy/t-cli/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrParse                 = pkg.NewError("syntax error")
	ErrNoDefaultExport       = pkg.NewError("no exported expression found")
	ErrIdentifierNotFound    = pkg.NewError("identifier not found")
	ErrUnsupportedExpression = pkg.NewError("unsupported expression")
	ErrUnsupportedKey        = pkg.NewError("unsupported object key")
)

// ParseError reports the first syntax error found in a source file.
type ParseError struct {
	Name   string // File name as given to Parse
	Reason string // What the parser found, e.g. "unexpected ')'"
	Line   int    // 1-based
	Column int    // 1-based, in bytes
	Text   string // The offending source line
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString(ErrParse.Error())
	buf.WriteString(" in ")
	buf.WriteString(e.Name)
	buf.WriteString(" at line ")
	buf.WriteString(strconv.Itoa(e.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Column))

	if e.Reason != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Reason)
	}

	if snippet := e.Snippet(); snippet != "" {
		buf.WriteString("\n")
		buf.WriteString(snippet)
	}

	return buf.String()
}

// Snippet renders the offending line with a marker under the error column.
func (e *ParseError) Snippet() string {
	if e.Text == "" {
		return ""
	}

	num := strconv.Itoa(e.Line)

	var buf strings.Builder

	buf.WriteString("  ")
	buf.WriteString(num)
	buf.WriteString(" | ")
	buf.WriteString(e.Text)
	buf.WriteRune('\n')

	// 2 leading spaces plus " | "
	buf.WriteString(strings.Repeat(" ", len(num)+5))

	if e.Column > 1 {
		// Keep tabs so the marker lines up under them.
		for _, r := range e.Text[:min(e.Column-1, len(e.Text))] {
			if r == '\t' {
				buf.WriteRune('\t')
			} else {
				buf.WriteRune(' ')
			}
		}
	}

	buf.WriteRune('^')

	return buf.String()
}

// Unwrap returns [ErrParse].
func (e *ParseError) Unwrap() error { return ErrParse }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrParse.Error()),
		slog.String("file", e.Name),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
		slog.String("reason", e.Reason),
	)
}

// UnsupportedError reports a syntax form that cannot be converted into a
// configuration value. It matches [ErrUnsupportedExpression] or
// [ErrUnsupportedKey] with errors.Is.
type UnsupportedError struct {
	Err    *pkg.Error // Sentinel
	Name   string
	Kind   string // tree-sitter node kind
	Text   string // Source text of the node, abbreviated
	Line   int
	Column int
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return e.Err.Error() + " " + strconv.Quote(e.Text) + " (" + e.Kind + ") at " +
		e.Name + ":" + strconv.Itoa(e.Line) + ":" + strconv.Itoa(e.Column)
}

// Unwrap returns the sentinel error.
func (e *UnsupportedError) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *UnsupportedError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Err.Error()),
		slog.String("kind", e.Kind),
		slog.String("text", e.Text),
		slog.String("file", e.Name),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
	)
}

// ConfigError reports a default export naming an identifier that is not
// declared at the top level of the module.
type ConfigError struct {
	Name       string
	Identifier string
	Suggestion string // Closest declared name, if any
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	msg := ErrIdentifierNotFound.Error() + ": " + e.Identifier + " in " + e.Name
	if e.Suggestion != "" {
		msg += " (did you mean " + strconv.Quote(e.Suggestion) + "?)"
	}

	return msg
}

// Unwrap returns [ErrIdentifierNotFound].
func (e *ConfigError) Unwrap() error { return ErrIdentifierNotFound }

// LogValue implements slog.LogValuer.
func (e *ConfigError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrIdentifierNotFound.Error()),
		slog.String("identifier", e.Identifier),
		slog.String("file", e.Name),
	}

	if e.Suggestion != "" {
		attrs = append(attrs, slog.String("suggestion", e.Suggestion))
	}

	return slog.GroupValue(attrs...)
}
