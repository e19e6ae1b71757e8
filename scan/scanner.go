package scan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/nuclenergy/t-cli/log"
	"github.com/nuclenergy/t-cli/pkg"
	"github.com/nuclenergy/t-cli/script"
)

// Scanner extracts keys from workspaces. Results are cached by file content,
// marker names and grammar, so a Scanner shared by several passes over the
// same tree parses each file once. A Scanner is safe for concurrent use.
type Scanner struct {
	cache sync.Map // xxh3.Uint128 -> *entry
	limit int
}

type entry struct {
	once sync.Once
	keys []string
	err  error
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithConcurrency limits the number of files parsed at once. Values below 1
// select [runtime.GOMAXPROCS].
func WithConcurrency(n int) Option {
	return func(s *Scanner) { s.limit = n }
}

// NewScanner returns a Scanner with an empty cache.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{}

	for _, opt := range opts {
		opt(s)
	}

	if s.limit < 1 {
		s.limit = runtime.GOMAXPROCS(0)
	}

	return s
}

// Files returns the source files directly inside dir, sorted with
// [pkg.CompareFold]. Symbolic links to regular files are included.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ErrWalk.Wrap(err).With(slog.String("path", dir))
	}

	var files []string

	for _, e := range entries {
		if !slices.Contains(Extensions, filepath.Ext(e.Name())) {
			continue
		}

		p := filepath.Join(dir, e.Name())

		switch {
		case e.Type().IsRegular():
		case e.Type()&os.ModeSymlink != 0:
			if info, err := os.Stat(p); err != nil || !info.Mode().IsRegular() {
				continue
			}
		default:
			continue
		}

		files = append(files, p)
	}

	slices.SortFunc(files, pkg.CompareFold)

	return files, nil
}

// Workspace returns the keys of every source file directly inside dir,
// concatenated in file order. Files are parsed concurrently.
func (s *Scanner) Workspace(ctx context.Context, dir string, fnNames []string) ([]string, error) {
	files, err := Files(dir)
	if err != nil {
		return nil, err
	}

	results := make([][]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)

	for i, file := range files {
		g.Go(func() error {
			keys, err := s.File(gctx, file, fnNames)
			results[i] = keys

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	keys := slices.Concat(results...)

	log.DebugContext(ctx, "scanned workspace",
		slog.String("path", dir),
		slog.Int("files", len(files)),
		slog.Int("keys", len(keys)),
	)

	return keys, nil
}

// File returns the keys of a single source file.
func (s *Scanner) File(ctx context.Context, path string, fnNames []string) ([]string, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, err
	}

	key := cacheKey(path, src, fnNames)

	value, hit := s.cache.LoadOrStore(key, new(entry))
	e, _ := value.(*entry)

	e.once.Do(func() {
		e.keys, e.err = Keys(ctx, path, src, fnNames)
	})

	if e.err != nil && ctx.Err() != nil {
		// A cancelled parse says nothing about the file.
		s.cache.CompareAndDelete(key, e)
	}

	log.TraceContext(ctx, "scanned file",
		slog.String("path", path),
		slog.Bool("cache_hit", hit),
		slog.Int("keys", len(e.keys)),
	)

	if e.err != nil {
		return nil, renamed(e.err, path)
	}

	return slices.Clone(e.keys), nil
}

// renamed reports a cached parse error against path. Files with identical
// content share one cache entry, but the error must name the file scanned.
func renamed(err error, path string) error {
	var pe *script.ParseError
	if !errors.As(err, &pe) || pe.Name == path {
		return err
	}

	c := *pe
	c.Name = path

	return &c
}

func readSource(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadSource.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	src, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadSource.Wrap(err).With(slog.String("path", path))
	}

	return src, nil
}

// cacheKey identifies the parse result of src. The extension is part of the
// key because it selects the grammar.
func cacheKey(path string, src []byte, fnNames []string) xxh3.Uint128 {
	h := xxh3.New()

	_, _ = h.WriteString(strings.ToLower(filepath.Ext(path)))
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(strings.Join(fnNames, "\x00"))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(src)

	return h.Sum128()
}
