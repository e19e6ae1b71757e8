package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	dirKey    struct{}
	stdoutKey struct{}
)

// WithDir returns a new context.Context naming the project directory.
// Relative include patterns and file flags are interpreted below it.
func WithDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, dirKey{}, dir)
}

func dirFrom(ctx context.Context) string {
	if dir, ok := ctx.Value(dirKey{}).(string); ok && dir != "" {
		return dir
	}

	return "."
}

// inDir resolves a relative path against the project directory.
func inDir(ctx context.Context, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dirFrom(ctx), path)
}

// WithStdout returns a new context.Context that directs command output to w.
func WithStdout(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stdoutKey{}, w)
}

// Stdout returns the writer set by [WithStdout], or [os.Stdout].
func Stdout(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stdoutKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdoutFrom prefers the writer of the parsed kong context, which is the one
// help and usage are printed to.
func stdoutFrom(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return Stdout(ctx)
}
