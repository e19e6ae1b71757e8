package script

import (
	"context"
	"log/slog"

	"github.com/sahilm/fuzzy"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/nuclenergy/t-cli/pkg"
)

// EvalSource parses src and evaluates its default export.
func EvalSource(ctx context.Context, name string, src []byte) (any, error) {
	f, err := Parse(ctx, name, src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Eval(f)
}

// Eval returns the value of the first default export in f.
//
// When the export is a bare identifier, it is replaced by the initializer of
// the top-level variable with that name. The result is built from
// map[string]any, []any and string values only.
func Eval(f *File) (any, error) {
	aliases, order := declarations(f)

	expr := defaultExport(f)
	if expr == nil {
		return nil, ErrNoDefaultExport.With(slog.String("file", f.Name))
	}

	if expr.Type() == "identifier" {
		id := f.Text(expr)

		init, ok := aliases[id]
		if !ok {
			return nil, &ConfigError{
				Name:       f.Name,
				Identifier: id,
				Suggestion: suggest(id, order),
			}
		}

		expr = init
	}

	return evaluator{f}.value(expr)
}

// declarations maps each top-level variable name to its initializer.
// Later declarations replace earlier ones. The names are also returned in
// declaration order.
func declarations(f *File) (map[string]*sitter.Node, []string) {
	aliases := make(map[string]*sitter.Node)

	var order []string

	add := func(decl *sitter.Node) {
		for _, d := range NamedChildren(decl) {
			if d.Type() != "variable_declarator" {
				continue
			}

			name, value := d.ChildByFieldName("name"), d.ChildByFieldName("value")
			if name == nil || value == nil || name.Type() != "identifier" {
				continue
			}

			id := f.Text(name)
			if _, ok := aliases[id]; !ok {
				order = append(order, id)
			}

			aliases[id] = value
		}
	}

	for _, stmt := range NamedChildren(f.Root()) {
		switch stmt.Type() {
		case "lexical_declaration", "variable_declaration":
			add(stmt)

		case "export_statement":
			if decl := stmt.ChildByFieldName("declaration"); decl != nil {
				switch decl.Type() {
				case "lexical_declaration", "variable_declaration":
					add(decl)
				}
			}
		}
	}

	return aliases, order
}

// defaultExport returns the expression of the first "export default <expr>"
// statement at the top level.
func defaultExport(f *File) *sitter.Node {
	for _, stmt := range NamedChildren(f.Root()) {
		if stmt.Type() != "export_statement" {
			continue
		}

		if value := stmt.ChildByFieldName("value"); value != nil {
			return value
		}
	}

	return nil
}

func suggest(id string, names []string) string {
	if matches := fuzzy.Find(id, names); len(matches) > 0 {
		return matches[0].Str
	}

	// Also try the other direction so that "cfg" finds "config" and
	// "configuration" finds "config".
	for _, name := range names {
		if matches := fuzzy.Find(name, []string{id}); len(matches) > 0 {
			return name
		}
	}

	return ""
}

type evaluator struct{ f *File }

func (e evaluator) value(n *sitter.Node) (any, error) {
	switch n.Type() {
	case "object":
		return e.object(n)

	case "array":
		elems := NamedChildren(n)
		arr := make([]any, 0, len(elems))

		for _, el := range elems {
			v, err := e.value(el)
			if err != nil {
				return nil, err
			}

			arr = append(arr, v)
		}

		return arr, nil

	case "string":
		if s, ok := e.f.StringLiteral(n); ok {
			return s, nil
		}

	case "as_expression", "satisfies_expression":
		if inner := NamedChildren(n); len(inner) > 0 {
			return e.value(inner[0])
		}

	case "type_assertion":
		// <T>x: the expression follows the type arguments.
		if inner := NamedChildren(n); len(inner) > 0 {
			return e.value(inner[len(inner)-1])
		}
	}

	return nil, e.unsupported(ErrUnsupportedExpression, n)
}

func (e evaluator) object(n *sitter.Node) (map[string]any, error) {
	obj := make(map[string]any)

	for _, member := range NamedChildren(n) {
		// Shorthand properties, methods and spreads carry no literal value.
		if member.Type() != "pair" {
			continue
		}

		key, err := e.key(member.ChildByFieldName("key"))
		if err != nil {
			return nil, err
		}

		v, err := e.value(member.ChildByFieldName("value"))
		if err != nil {
			return nil, err
		}

		obj[key] = v
	}

	return obj, nil
}

func (e evaluator) key(n *sitter.Node) (string, error) {
	switch n.Type() {
	case "property_identifier":
		return e.f.Text(n), nil

	case "string":
		if s, ok := e.f.StringLiteral(n); ok {
			return s, nil
		}
	}

	return "", e.unsupported(ErrUnsupportedKey, n)
}

func (e evaluator) unsupported(sentinel *pkg.Error, n *sitter.Node) error {
	pt := n.StartPoint()

	return &UnsupportedError{
		Err:    sentinel,
		Name:   e.f.Name,
		Kind:   n.Type(),
		Text:   clip(e.f.Text(n)),
		Line:   int(pt.Row) + 1,
		Column: int(pt.Column) + 1,
	}
}
