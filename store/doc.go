// Package store reads and writes per-language key files.
//
// A key file is a JSON object mapping translation keys to translated strings
// or null. Entry order is significant and preserved across reads and writes.
package store
