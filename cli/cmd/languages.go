package cmd

import (
	"context"

	"github.com/ddddddO/gtree"

	"github.com/nuclenergy/t-cli/config"
	"github.com/nuclenergy/t-cli/pkg"
)

var ErrTree = pkg.NewError("render language tree")

// Languages prints the language inheritance tree.
type Languages struct {
	Project `embed:""`
}

// Run executes the languages command.
func (l *Languages) Run(ctx context.Context) error {
	cfg, err := l.load(ctx)
	if err != nil {
		return err
	}

	root := gtree.NewRoot(cfg.Languages.Name)
	addLanguages(root, cfg.Languages.Children)

	if err := gtree.OutputFromRoot(stdoutFrom(ctx), root); err != nil {
		return ErrTree.Wrap(err)
	}

	return nil
}

func addLanguages(parent *gtree.Node, children []config.LanguageNode) {
	for _, child := range children {
		addLanguages(parent.Add(child.Name), child.Children)
	}
}
