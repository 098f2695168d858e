package theme

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the style file at path whenever it changes and calls onChange
// with the result. It blocks until ctx is done or the watcher fails.
//
// The containing directory is watched rather than the file so that editors
// which save by renaming a temporary file are picked up. onChange runs on the
// watcher goroutine; callers driving a Context must hand the style over to
// their frame loop.
func Watch(ctx context.Context, path string, onChange func(*Style, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("theme watch: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("theme watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			onChange(Load(abs))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("theme watch: %w", err)
		}
	}
}
