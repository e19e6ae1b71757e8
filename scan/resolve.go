package scan

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/nuclenergy/t-cli/log"
	"github.com/nuclenergy/t-cli/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrPattern    = pkg.NewError("invalid exclude pattern")
	ErrWalk       = pkg.NewError("failed to walk directory")
	ErrReadSource = pkg.NewError("failed to read source file")
)

// Resolve returns every directory below (and including) each of includes,
// interpreted relative to root, that is not excluded. Includes that do not
// exist are skipped. The result is sorted with [pkg.CompareFold] and free of
// duplicates.
//
// Exclude patterns are globs evaluated per include directory:
//   - "/build" matches only build directly below the include directory;
//   - "a/*/b" (any pattern containing a slash) matches a path relative to it;
//   - "node_modules" or ".*" (no slash) matches a directory name at any depth.
//
// The include directory itself is never excluded. Symbolic links are not
// followed.
func Resolve(ctx context.Context, root string, includes, excludes []string) ([]string, error) {
	matchers, err := compile(excludes)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	for _, include := range includes {
		base := filepath.Join(root, CleanInclude(include))

		info, err := os.Stat(base)
		if err != nil || !info.IsDir() {
			log.DebugContext(ctx, "skipping include",
				slog.String("include", include),
				slog.String("path", base))

			continue
		}

		err = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}

			if !d.IsDir() {
				return nil
			}

			if p != base {
				rel, _ := filepath.Rel(base, p)
				if matchers.match(filepath.ToSlash(rel)) {
					return filepath.SkipDir
				}
			}

			seen[p] = struct{}{}

			return nil
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}

			return nil, ErrWalk.Wrap(err).With(slog.String("path", base))
		}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}

	slices.SortFunc(dirs, pkg.CompareFold)

	return dirs, nil
}

// CleanInclude strips leading separators from an include pattern so that
// "/src" and "./src" both name the src directory below the root.
func CleanInclude(include string) string {
	return filepath.Clean(strings.TrimLeft(filepath.FromSlash(include), `/\`))
}

type matcher struct {
	glob     glob.Glob
	anchored bool // Matched against the relative path instead of the name
}

type matchers []matcher

func compile(patterns []string) (matchers, error) {
	ms := make(matchers, 0, len(patterns))

	for _, p := range patterns {
		pattern := strings.TrimSuffix(filepath.ToSlash(p), "/")
		anchored := strings.Contains(pattern, "/")
		pattern = strings.TrimPrefix(pattern, "/")

		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, ErrPattern.Wrap(err).With(slog.String("pattern", p))
		}

		ms = append(ms, matcher{glob: g, anchored: anchored})
	}

	return ms, nil
}

// match reports whether the slash-separated relative path is excluded.
func (ms matchers) match(rel string) bool {
	name := path.Base(rel)

	for _, m := range ms {
		if m.anchored && m.glob.Match(rel) || !m.anchored && m.glob.Match(name) {
			return true
		}
	}

	return false
}
