// Package task implements the three operations of t-cli over a loaded
// configuration:
//
//   - [Runner.Collect] adds the keys found in source files to the key files,
//     without removing anything;
//   - [Runner.Clean] removes keys no source file uses any more and fills in
//     missing default-language values;
//   - [Runner.Generate] compiles the key files of each output directory into a
//     TypeScript module (index.ts) in which every language falls back to its
//     parent in the language tree.
//
// Targets, workspaces, languages and files are always processed in the same
// order, so repeated runs over an unchanged tree leave every file untouched.
package task
