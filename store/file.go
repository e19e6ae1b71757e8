package store

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/nuclenergy/t-cli/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrRead   = pkg.NewError("failed to read key file")
	ErrWrite  = pkg.NewError("failed to write key file")
	ErrDecode = pkg.NewError("invalid key file")
)

// FileMode is the permission of newly created key files.
const FileMode fs.FileMode = 0o644

// Path returns the key file of a language in an output directory.
func Path(outputDir, language string) string {
	return filepath.Join(outputDir, language+".json")
}

// Read loads the key file at path. A missing file is reported as
// (nil, false, nil).
func Read(path string) (*Map, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, ErrRead.Wrap(err).With(slog.String("path", path))
	}

	m, err := Decode(data)
	if err != nil {
		return nil, true, ErrDecode.Wrap(err).With(slog.String("path", path))
	}

	return m, true, nil
}

// Decode parses the content of a key file.
func Decode(data []byte) (*Map, error) {
	m := NewMap()
	if err := m.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	return m, nil
}

// Write stores m at path unless the file already holds exactly the same
// content. Missing parent directories are created. The file is replaced
// atomically. Write reports whether the file was written.
func Write(path string, m *Map) (bool, error) {
	data, err := m.Encode()
	if err != nil {
		return false, ErrWrite.Wrap(err).With(slog.String("path", path))
	}

	return WriteBytes(path, data)
}

// WriteBytes stores data at path unless the file already holds it, creating
// parent directories and replacing the file atomically.
func WriteBytes(path string, data []byte) (bool, error) {
	old, err := os.ReadFile(path)

	exists := err == nil
	if exists && bytes.Equal(old, data) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, ErrWrite.Wrap(err).With(slog.String("path", path))
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return false, ErrWrite.Wrap(err).With(slog.String("path", path))
	}

	if !exists {
		// atomic creates its temporary file private to the owner.
		if err := os.Chmod(path, FileMode); err != nil {
			return true, ErrWrite.Wrap(err).With(slog.String("path", path))
		}
	}

	return true, nil
}
