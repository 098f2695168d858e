package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/go-drift/ember/cmd/ember/internal/cache"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a screen to PNG or PDF",
		Long: `Lay out a screen and draw a single frame to an image or a PDF page.

The output format follows the extension of --out. Without --out the frame is
written as <screen>.png in the project output directory.

Flags:
  --out FILE       Output file (.png or .pdf)
  --size WxH       Viewport size in pixels (default from ember.yaml, or 320x240)
  --theme FILE     Style file (.yaml or .toml)
  --dark           Use the built-in dark style
  --debug          Draw widget bounds and ids
  --tap NAME       Tap the named widget before drawing (repeatable)
  --press KEY      Press a key before drawing, e.g. tab or enter (repeatable)
  --watch          Re-render whenever the screen or style file changes
  --no-cache       Always render, bypassing the render cache
  --trace          Print frame timings as JSON

Scripted --tap and --press steps run in the order given.

Examples:
  ember render home.ember
  ember render --out home.pdf --dark home.ember
  ember render --press tab --press enter --out after.png home.ember`,
		Usage: "ember render [flags] <screen.ember>",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	opts, err := parseScreenArgs(args, "--out", "--watch", "--no-cache", "--trace")
	if err != nil {
		return fmt.Errorf("%w\n\nUsage: ember render [flags] <screen.ember>", err)
	}
	ext := strings.ToLower(filepath.Ext(opts.out))
	if ext != ".png" && ext != ".pdf" {
		return fmt.Errorf("unsupported output format %q (use .png or .pdf)", ext)
	}

	if err := renderOnce(opts, ext); err != nil {
		if !opts.watch {
			return err
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	if !opts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths := []string{opts.screen}
	if opts.themePath != "" {
		paths = append(paths, opts.themePath)
	}
	fmt.Fprintf(stdout, "Watching %s (Ctrl-C to stop)\n", strings.Join(paths, ", "))
	err = watchFiles(ctx, paths, 100*time.Millisecond, func() {
		if err := renderOnce(opts, ext); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// renderOnce renders the screen into opts.out, reusing a cached render when
// the inputs are unchanged.
func renderOnce(opts *screenOptions, ext string) error {
	in, err := loadInputs(opts)
	if err != nil {
		return err
	}

	useCache := !opts.noCache && !opts.trace
	key := in.cacheKey(opts, ext)
	data, cached := []byte(nil), false
	if useCache {
		data, cached = cache.Lookup(key, ext)
	}

	if !cached {
		ctx, err := in.mount(opts)
		if err != nil {
			return err
		}
		if data, err = encodeFrame(ctx, in.style, ext); err != nil {
			return err
		}
		if opts.trace {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(ctx.Trace()); err != nil {
				return err
			}
		}
		if useCache {
			if err := cache.Store(key, ext, data); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(opts.out), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(opts.out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.out, err)
	}

	note := ""
	if cached {
		note = " (cached)"
	}
	fmt.Fprintf(stdout, "Rendered %s at %s%s\n", opts.out, opts.size, note)
	return nil
}

// watchFiles calls onChange after any of paths is written, coalescing bursts
// of events within settle. It blocks until ctx is done or the watcher fails.
//
// Directories are watched rather than the files so that editors which save by
// renaming a temporary file are picked up.
func watchFiles(ctx context.Context, paths []string, settle time.Duration, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	targets := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(settle)
		case <-timer.C:
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}
