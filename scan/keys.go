package scan

import (
	"context"
	"slices"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/nuclenergy/t-cli/script"
)

// Extensions lists the extensions of scanned source files.
var Extensions = []string{".ts", ".tsx", ".js", ".jsx"}

// Keys parses src and returns the keys of its marker calls in pre-order.
// A key appears once per call, so the result may contain duplicates.
func Keys(ctx context.Context, name string, src []byte, fnNames []string) ([]string, error) {
	f, err := script.Parse(ctx, name, src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var keys []string

	f.Walk(func(n *sitter.Node) bool {
		if n.Type() == "call_expression" {
			if key, ok := markerKey(f, n, fnNames); ok {
				keys = append(keys, key)
			}
		}

		return true
	})

	return keys, nil
}

// markerKey returns the key of a call to one of fnNames.
func markerKey(f *script.File, call *sitter.Node, fnNames []string) (string, bool) {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" || !slices.Contains(fnNames, f.Text(fn)) {
		return "", false
	}

	for i := range int(call.ChildCount()) {
		if t := call.Child(i).Type(); t == "?." || t == "optional_chain" {
			return "", false
		}
	}

	args := call.ChildByFieldName("arguments")
	if args == nil || args.Type() != "arguments" {
		// Tagged template.
		return "", false
	}

	list := script.NamedChildren(args)
	if len(list) == 0 {
		return "", false
	}

	return f.StringLiteral(list[0])
}
