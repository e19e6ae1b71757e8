// Package scan finds workspaces and extracts translation keys from the
// source files in them.
//
// A key is the string literal first argument of a call to one of the
// configured marker functions:
//
//	t("greeting")          // key "greeting"
//	t(`greeting`)          // ignored, not a string literal
//	t?.("greeting")        // ignored, optional call
//
// [Resolve] turns a target's include and exclude patterns into the sorted list
// of workspace directories. A [Scanner] reads the source files directly inside
// a workspace and returns their keys in a deterministic order. Results are
// cached by content so a file is parsed once per process.
package scan
