package cmd

import "github.com/nuclenergy/t-cli/pkg"

var (
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrStatus      = pkg.NewError("write status")
)
