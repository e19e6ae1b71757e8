package task

import (
	"context"
	"path/filepath"

	"github.com/nuclenergy/t-cli/config"
	"github.com/nuclenergy/t-cli/scan"
)

// Runner executes tasks for one configuration.
type Runner struct {
	config  *config.Config
	root    string
	scanner *scan.Scanner
}

// Option configures a Runner.
type Option func(*Runner)

// WithRoot sets the directory include patterns are relative to.
// The default is the working directory.
func WithRoot(dir string) Option {
	return func(r *Runner) { r.root = dir }
}

// WithScanner shares a scanner, and with it its cache, between runners.
func WithScanner(s *scan.Scanner) Option {
	return func(r *Runner) { r.scanner = s }
}

// New returns a Runner for cfg.
func New(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{config: cfg, root: "."}

	for _, opt := range opts {
		opt(r)
	}

	if r.scanner == nil {
		r.scanner = scan.NewScanner()
	}

	return r
}

// Report summarizes the files a task looked at.
type Report struct {
	Workspaces int      // Workspaces visited
	Written    []string // Files created or changed
	Unchanged  int      // Files already up to date
	Skipped    []string // Files left alone because they could not be decoded
}

func (rep *Report) record(path string, written bool) {
	if written {
		rep.Written = append(rep.Written, path)
	} else {
		rep.Unchanged++
	}
}

// workspace pairs a workspace directory with the target it was found by.
type workspace struct {
	dir    string
	target config.Target
}

// output returns the output directory of the workspace.
func (w workspace) output() string { return filepath.Join(w.dir, w.target.Output) }

// workspaces returns the workspaces of every target, in target order and
// then path order. A directory matched by two targets appears twice.
func (r *Runner) workspaces(ctx context.Context) ([]workspace, error) {
	var all []workspace

	for _, t := range r.config.Targets {
		dirs, err := scan.Resolve(ctx, r.root, t.Includes, t.Excludes)
		if err != nil {
			return nil, err
		}

		for _, dir := range dirs {
			all = append(all, workspace{dir: dir, target: t})
		}
	}

	return all, nil
}
