package script

import (
	"bytes"
	"cmp"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// File is a parsed source file.
type File struct {
	Name   string
	Source []byte
	tree   *sitter.Tree
}

// Grammar returns the tree-sitter grammar used for the named file.
// Plain TypeScript files use the TypeScript grammar, where "<T>x" is a type
// assertion. Everything else, JavaScript included, uses the TSX grammar.
func Grammar(name string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return tsx.GetLanguage()
	}
}

// Parse parses src, naming it name in errors. A source with any syntax error
// is rejected with a [*ParseError] describing the first one.
func Parse(ctx context.Context, name string, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(Grammar(name))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil || tree == nil {
		return nil, ErrParse.Wrap(cmp.Or(err, context.Cause(ctx))).
			With(slog.String("file", name))
	}

	if root := tree.RootNode(); root.HasError() {
		defer tree.Close()

		return nil, newParseError(name, src, firstError(root))
	}

	return &File{Name: name, Source: src, tree: tree}, nil
}

// Close releases the syntax tree.
func (f *File) Close() {
	if f != nil && f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Root returns the root node of the syntax tree.
func (f *File) Root() *sitter.Node { return f.tree.RootNode() }

// Text returns the source text spanned by n.
func (f *File) Text(n *sitter.Node) string { return n.Content(f.Source) }

// Walk visits every node in depth-first pre-order. Children of a node are
// skipped when visit returns false.
func (f *File) Walk(visit func(*sitter.Node) bool) {
	cur := sitter.NewTreeCursor(f.Root())
	defer cur.Close()

	for {
		if visit(cur.CurrentNode()) && cur.GoToFirstChild() {
			continue
		}

		for !cur.GoToNextSibling() {
			if !cur.GoToParent() {
				return
			}
		}
	}
}

// StringLiteral returns the decoded value of a string literal node.
func (f *File) StringLiteral(n *sitter.Node) (string, bool) {
	return StringLiteral(n, f.Source)
}

// StringLiteral returns the decoded value of n if it is a string literal.
func StringLiteral(n *sitter.Node, src []byte) (string, bool) {
	if n == nil || n.Type() != "string" {
		return "", false
	}

	return Unquote(n.Content(src))
}

// NamedChildren returns the named children of n, without comments.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	nodes := make([]*sitter.Node, 0, count)

	for i := range count {
		if c := n.NamedChild(i); c != nil && c.Type() != "comment" {
			nodes = append(nodes, c)
		}
	}

	return nodes
}

// firstError returns the first ERROR or MISSING node in pre-order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}

	for i := range int(n.ChildCount()) {
		if c := n.Child(i); c != nil && c.HasError() {
			if e := firstError(c); e != nil {
				return e
			}
		}
	}

	return nil
}

func newParseError(name string, src []byte, n *sitter.Node) *ParseError {
	if n == nil {
		return &ParseError{Name: name, Line: 1, Column: 1}
	}

	pt := n.StartPoint()
	e := &ParseError{
		Name:   name,
		Line:   int(pt.Row) + 1,
		Column: int(pt.Column) + 1,
		Text:   sourceLine(src, int(pt.Row)),
	}

	switch {
	case n.IsMissing():
		e.Reason = "missing " + n.Type()

	case n.ChildCount() > 0:
		e.Reason = "unexpected " + abbrev(n.Child(0).Content(src))

	default:
		e.Reason = "unexpected " + abbrev(n.Content(src))
	}

	return e
}

func sourceLine(src []byte, row int) string {
	for range row {
		i := bytes.IndexByte(src, '\n')
		if i < 0 {
			return ""
		}

		src = src[i+1:]
	}

	if i := bytes.IndexByte(src, '\n'); i >= 0 {
		src = src[:i]
	}

	return strings.TrimRight(string(src), "\r")
}

func abbrev(s string) string { return "'" + clip(s) + "'" }

// clip shortens s to a single line of at most 32 bytes for messages.
func clip(s string) string {
	const limit = 32

	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i] + "..."
	}

	if len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}

		s = s[:cut] + "..."
	}

	return s
}
