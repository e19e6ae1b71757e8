package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nuclenergy/t-cli/config"
	"github.com/nuclenergy/t-cli/log"
	"github.com/nuclenergy/t-cli/task"
)

// Project holds the flags of the commands that read the project
// configuration.
type Project struct {
	Config  string `default:"${configFile}" help:"Project configuration file." placeholder:"FILE" short:"c"`
	Verbose bool   `help:"Log progress."`
}

// load reads the project configuration.
func (p *Project) load(ctx context.Context) (*config.Config, error) {
	if p.Verbose && log.Default().Level() > log.LevelDebug {
		log.Config(log.WithLevel(log.LevelDebug))
	}

	return config.Load(ctx, inDir(ctx, p.Config))
}

// runner returns a task runner for the project configuration.
func (p *Project) runner(ctx context.Context) (*task.Runner, error) {
	cfg, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	return task.New(cfg, task.WithRoot(dirFrom(ctx))), nil
}

type step func(context.Context) (task.Report, error)

// run executes steps in order and reports their combined result.
func (p *Project) run(ctx context.Context, done string, steps ...func(*task.Runner) step) error {
	r, err := p.runner(ctx)
	if err != nil {
		return err
	}

	var total task.Report

	for _, s := range steps {
		rep, err := s(r)(ctx)
		if err != nil {
			return err
		}

		total.Workspaces += rep.Workspaces
		total.Written = append(total.Written, rep.Written...)
		total.Unchanged += rep.Unchanged
		total.Skipped = append(total.Skipped, rep.Skipped...)
	}

	log.DebugContext(ctx, done,
		slog.Int("workspaces", total.Workspaces),
		slog.Any("written", total.Written),
	)

	return status(ctx, done, summary(total))
}

func collect(r *task.Runner) step  { return r.Collect }
func generate(r *task.Runner) step { return r.Generate }
func clean(r *task.Runner) step    { return r.Clean }

// summary describes the files touched by a run, e.g. "2 written, 4 unchanged".
func summary(rep task.Report) string {
	parts := []string{
		fmt.Sprintf("%d written", len(rep.Written)),
		fmt.Sprintf("%d unchanged", rep.Unchanged),
	}

	if n := len(rep.Skipped); n > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", n))
	}

	return strings.Join(parts, ", ")
}

// status prints the one-line result of a command.
func status(ctx context.Context, msg, detail string) error {
	w := stdoutFrom(ctx)
	r := lipgloss.NewRenderer(w)

	line := r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true).Render(msg)
	if detail != "" {
		line += " " + r.NewStyle().Faint(true).Render("("+detail+")")
	}

	if _, err := fmt.Fprintln(w, line); err != nil {
		return ErrStatus.Wrap(err)
	}

	return nil
}
