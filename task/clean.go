package task

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nuclenergy/t-cli/log"
	"github.com/nuclenergy/t-cli/store"
)

// Clean removes from every key file the keys that no workspace sharing its
// output directory uses any more, and sets null default-language values to
// the key itself.
//
// Key files that cannot be decoded are reported and left untouched. A file is
// rewritten only when a key was removed or a value was filled in.
func (r *Runner) Clean(ctx context.Context) (Report, error) {
	var rep Report

	workspaces, err := r.workspaces(ctx)
	if err != nil {
		return rep, err
	}

	var (
		used    = make(map[string]map[string]struct{})
		outputs []string
	)

	for _, ws := range workspaces {
		log.DebugContext(ctx, "scanning workspace", slog.String("path", ws.dir))

		keys, err := r.scanner.Workspace(ctx, ws.dir, ws.target.FnNames)
		if err != nil {
			return rep, err
		}

		rep.Workspaces++

		out := ws.output()

		set, ok := used[out]
		if !ok {
			set = make(map[string]struct{})
			used[out] = set
			outputs = append(outputs, out)
		}

		for _, key := range keys {
			set[key] = struct{}{}
		}
	}

	dflt := r.config.Default()

	for _, out := range outputs {
		set := used[out]

		for _, lang := range r.config.Languages.Languages() {
			path := store.Path(out, lang)

			m, ok, err := store.Read(path)

			switch {
			case errors.Is(err, store.ErrDecode):
				log.WarnContext(ctx, "skipping key file", slog.Any("error", err))

				rep.Skipped = append(rep.Skipped, path)

				continue

			case err != nil:
				return rep, err

			case !ok:
				continue
			}

			removed := m.Retain(func(key string, _ *string) bool {
				_, ok := set[key]

				return ok
			})

			filled := 0

			if lang == dflt {
				for key, value := range m.All() {
					if value == nil {
						m.Set(key, store.Value(key))
						filled++
					}
				}
			}

			if removed == 0 && filled == 0 {
				log.DebugContext(ctx, "no unused keys", slog.String("path", path))

				rep.Unchanged++

				continue
			}

			written, err := store.Write(path, m)
			if err != nil {
				return rep, err
			}

			rep.record(path, written)

			log.DebugContext(ctx, "cleaned keys",
				slog.String("path", path),
				slog.Int("removed", removed),
				slog.Int("filled", filled),
			)
		}
	}

	return rep, nil
}
