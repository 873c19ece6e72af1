package discover

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Glob returns the paths of all files in dir whose name ends with ext
// (case-insensitive, e.g. ".vk4"), sorted by name. Subdirectories are not
// descended into.
func Glob(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("discover: read dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if matchesExt(e.Name(), ext) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Watch monitors dir and calls onFile with the path of each newly created
// file matching ext. It runs until ctx is cancelled. Each path is reported
// once, even when the writer emits multiple create/write events while the
// file is being filled.
//
// Watcher errors are logged and watching continues; only setup failures are
// returned.
func Watch(ctx context.Context, dir, ext string, onFile func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("discover: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("discover: watch %s: %w", dir, err)
	}

	slog.Info("discover: watching for measurement files", "dir", dir, "ext", ext)

	reported := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !matchesExt(filepath.Base(event.Name), ext) {
				continue
			}
			if _, seen := reported[event.Name]; seen {
				continue
			}
			reported[event.Name] = struct{}{}
			slog.Debug("discover: new measurement file", "path", event.Name)
			onFile(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("discover: watcher error", "err", err)
		}
	}
}

func matchesExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}
