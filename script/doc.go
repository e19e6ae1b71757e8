// Package script reads configuration values out of TypeScript and JavaScript
// sources without running them.
//
// Sources are parsed with tree-sitter. [Eval] then locates the module's
// default export and converts it into plain Go values using a small whitelist
// of literal forms:
//
//	object literal        map[string]any
//	array literal         []any
//	string literal        string
//	x as T, x satisfies T the value of x
//
// A default export that is a bare identifier is resolved through the
// module's top-level variable declarations, one hop only. Everything else,
// including numbers, template strings, calls and spreads, is rejected with
// an [UnsupportedError].
//
// The same parser backs the key scanner, so [Parse], [File.Walk] and
// [StringLiteral] are exported for it.
package script
