package task

import (
	"context"
	"log/slog"

	"github.com/nuclenergy/t-cli/log"
	"github.com/nuclenergy/t-cli/store"
)

// Collect scans every workspace and merges the keys it finds into the key
// files of the workspace's output directory.
//
// The default language maps a new key to itself; other languages get a null
// placeholder. Existing entries keep their translated values, and keys found
// only in an existing file are kept after the scanned ones. A key file that
// cannot be decoded aborts the run before anything is written.
func (r *Runner) Collect(ctx context.Context) (Report, error) {
	var rep Report

	workspaces, err := r.workspaces(ctx)
	if err != nil {
		return rep, err
	}

	var (
		languages = r.config.Languages.Languages()
		dflt      = r.config.Default()
		files     = make(map[string]*store.Map)
		order     []string
	)

	for _, ws := range workspaces {
		log.DebugContext(ctx, "scanning workspace", slog.String("path", ws.dir))

		keys, err := r.scanner.Workspace(ctx, ws.dir, ws.target.FnNames)
		if err != nil {
			return rep, err
		}

		rep.Workspaces++

		if len(keys) == 0 {
			continue
		}

		for _, lang := range languages {
			path := store.Path(ws.output(), lang)

			m, ok := files[path]
			if !ok {
				m = store.NewMap()
				files[path] = m
				order = append(order, path)
			}

			for _, key := range keys {
				if lang == dflt {
					m.Set(key, store.Value(key))
				} else {
					m.SetDefault(key, nil)
				}
			}
		}
	}

	merged := make([]*store.Map, len(order))

	for i, path := range order {
		old, _, err := store.Read(path)
		if err != nil {
			return rep, err
		}

		merged[i] = merge(files[path], old)
	}

	for i, path := range order {
		written, err := store.Write(path, merged[i])
		if err != nil {
			return rep, err
		}

		rep.record(path, written)

		log.DebugContext(ctx, "collected keys",
			slog.String("path", path),
			slog.Int("keys", merged[i].Len()),
			slog.Bool("written", written),
		)
	}

	return rep, nil
}

// merge folds the entries of an existing key file into scanned.
// Keys present in both keep their scanned position and take the old value
// unless it is null. Keys only in old are appended in their old order.
func merge(scanned, old *store.Map) *store.Map {
	if old == nil {
		return scanned
	}

	for key, value := range old.All() {
		if scanned.Has(key) && value == nil {
			continue
		}

		scanned.Set(key, value)
	}

	return scanned
}
