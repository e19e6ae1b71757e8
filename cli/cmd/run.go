package cmd

import "context"

// Collect adds the keys used in source files to the key files.
type Collect struct {
	Project `embed:""`
}

// Run executes the collect command.
func (c *Collect) Run(ctx context.Context) error {
	return c.run(ctx, "Collected successfully", collect)
}

// Generate writes the translation module of every output directory.
type Generate struct {
	Project `embed:""`
}

// Run executes the generate command.
func (g *Generate) Run(ctx context.Context) error {
	return g.run(ctx, "Generated successfully", generate)
}

// Clean removes unused keys from the key files.
type Clean struct {
	Project `embed:""`
}

// Run executes the clean command.
func (c *Clean) Run(ctx context.Context) error {
	return c.run(ctx, "Cleaned successfully", clean)
}

// Cg collects, then generates.
type Cg struct {
	Project `embed:""`
}

// Run executes the cg command.
func (c *Cg) Run(ctx context.Context) error {
	return c.run(ctx, "Collected and generated successfully", collect, generate)
}

// Gc collects, generates, then cleans.
type Gc struct {
	Project `embed:""`
}

// Run executes the gc command.
func (g *Gc) Run(ctx context.Context) error {
	return g.run(ctx, "Collected, generated and cleaned successfully",
		collect, generate, clean)
}
