package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"

	"github.com/nuclenergy/t-cli/config"
	"github.com/nuclenergy/t-cli/log"
	"github.com/nuclenergy/t-cli/store"
)

// Init writes a configuration file template. The file format follows the
// extension of the output file.
type Init struct {
	Output string `default:"${configFile}" help:"File to write." placeholder:"FILE" short:"o"`
	Force  bool   `help:"Overwrite an existing file." short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	path := inDir(ctx, i.Output)

	// Check if file exists and force not set
	_, err = os.Stat(path)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", path)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	var buf bytes.Buffer

	err = config.Encode(ctx, &buf, config.FormatOf(path), config.Example())
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", path)).
			Wrap(err)
	}

	err = os.WriteFile(path, buf.Bytes(), store.FileMode)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", path)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", path),
	)

	return status(ctx, "Config file generated successfully", path)
}
