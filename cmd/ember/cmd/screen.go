package cmd

import (
	"bytes"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-drift/ember/cmd/ember/internal/cache"
	"github.com/go-drift/ember/cmd/ember/internal/config"
	"github.com/go-drift/ember/pkg/engine"
	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/markup"
	"github.com/go-drift/ember/pkg/rendering/vector"
	"github.com/go-drift/ember/pkg/theme"
)

// screenOptions are the flags shared by commands that mount a screen.
type screenOptions struct {
	screen    string
	out       string
	size      graphics.Size
	themePath string
	dark      bool
	debug     bool
	steps     []step
	watch     bool
	noCache   bool
	trace     bool

	project *config.Resolved
}

// step is one scripted input applied before the frame is drawn.
type step struct {
	tap string
	key event.Key
}

func (s step) String() string {
	if s.tap != "" {
		return "tap:" + s.tap
	}
	return "key:" + s.key.String()
}

// parseScreenArgs parses screen flags. Flags outside allowed are rejected, so
// each command only accepts what it uses. Defaults come from the ember.yaml
// of the project holding the screen file.
func parseScreenArgs(args []string, allowed ...string) (*screenOptions, error) {
	opts := &screenOptions{}
	permitted := map[string]bool{"--size": true, "--theme": true, "--dark": true, "--debug": true, "--tap": true, "--press": true}
	for _, a := range allowed {
		permitted[a] = true
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			if opts.screen != "" {
				return nil, fmt.Errorf("expected one screen file, got %q and %q", opts.screen, arg)
			}
			opts.screen = arg
			continue
		}

		name, inline, hasInline := strings.Cut(arg, "=")
		if !permitted[name] {
			return nil, fmt.Errorf("unknown flag %s", name)
		}
		value := func() (string, error) {
			if hasInline {
				return inline, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", name)
			}
			i++
			return args[i], nil
		}

		var err error
		var v string
		switch name {
		case "--size":
			if v, err = value(); err == nil {
				opts.size, err = parseSize(v)
			}
		case "--theme":
			opts.themePath, err = value()
		case "--out":
			opts.out, err = value()
		case "--tap":
			if v, err = value(); err == nil {
				opts.steps = append(opts.steps, step{tap: v})
			}
		case "--press":
			if v, err = value(); err == nil {
				var k event.Key
				if k, err = event.ParseKey(v); err == nil {
					opts.steps = append(opts.steps, step{key: k})
				}
			}
		case "--dark":
			opts.dark = true
		case "--debug":
			opts.debug = true
		case "--watch":
			opts.watch = true
		case "--no-cache":
			opts.noCache = true
		case "--trace":
			opts.trace = true
		}
		if err != nil {
			return nil, err
		}
	}

	if opts.screen == "" {
		return nil, fmt.Errorf("screen file is required")
	}
	if opts.themePath != "" && opts.dark {
		return nil, fmt.Errorf("--theme and --dark are mutually exclusive")
	}

	project, err := projectFor(filepath.Dir(opts.screen))
	if err != nil {
		return nil, err
	}
	opts.project = project
	if opts.size.IsEmpty() {
		opts.size = project.Viewport
	}
	if opts.themePath == "" && !opts.dark {
		opts.themePath = project.ThemePath
	}
	opts.debug = opts.debug || project.Debug
	if opts.out == "" {
		base := strings.TrimSuffix(filepath.Base(opts.screen), filepath.Ext(opts.screen))
		opts.out = filepath.Join(project.OutputDir, base+".png")
	}
	return opts, nil
}

// projectFor resolves the configuration of the project enclosing dir. Outside
// a project the defaults apply with dir as the root.
func projectFor(dir string) (*config.Resolved, error) {
	root, err := config.FindProjectRoot(dir)
	if err != nil {
		root = dir
	}
	return config.Resolve(root)
}

func parseSize(s string) (graphics.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return graphics.Size{}, fmt.Errorf("invalid size %q (want WIDTHxHEIGHT)", s)
	}
	width, err1 := strconv.ParseFloat(w, 64)
	height, err2 := strconv.ParseFloat(h, 64)
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return graphics.Size{}, fmt.Errorf("invalid size %q (want WIDTHxHEIGHT)", s)
	}
	return graphics.Size{Width: width, Height: height}, nil
}

// screenInputs are the files a render depends on.
type screenInputs struct {
	src   []byte
	style *theme.Style
}

func loadInputs(opts *screenOptions) (*screenInputs, error) {
	src, err := os.ReadFile(opts.screen)
	if err != nil {
		return nil, err
	}
	style := theme.Default()
	switch {
	case opts.themePath != "":
		if style, err = theme.Load(opts.themePath); err != nil {
			return nil, err
		}
	case opts.dark:
		style = theme.Dark()
	}
	return &screenInputs{src: src, style: style}, nil
}

// cacheKey covers everything that changes the rendered bytes.
func (in *screenInputs) cacheKey(opts *screenOptions, ext string) string {
	steps := make([]string, len(opts.steps))
	for i, s := range opts.steps {
		steps[i] = s.String()
	}
	return cache.Key(
		in.src,
		[]byte(strconv.FormatUint(in.style.Fingerprint(), 16)),
		[]byte(opts.size.String()),
		[]byte(strconv.FormatBool(opts.debug)),
		[]byte(ext),
		[]byte(strings.Join(steps, "\n")),
	)
}

// mount builds the screen, lays it out and plays the scripted steps.
func (in *screenInputs) mount(opts *screenOptions) (*engine.Context, error) {
	root, err := markup.Default().BuildReader(opts.screen, bytes.NewReader(in.src))
	if err != nil {
		return nil, err
	}
	engineOpts := []engine.Option{
		engine.WithViewport(opts.size),
		engine.WithStyle(in.style),
		engine.WithDebug(opts.debug),
		engine.WithQueueCapacity(opts.project.QueueCapacity),
		engine.WithOverflowPolicy(opts.project.Policy),
	}
	if opts.trace {
		engineOpts = append(engineOpts, engine.WithFrameTrace(1, 0))
	}
	ctx, err := engine.New(root, engineOpts...)
	if err != nil {
		return nil, err
	}
	ctx.Update()
	for _, s := range opts.steps {
		if err := play(ctx, s); err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

func play(ctx *engine.Context, s step) error {
	var evs []event.Event
	if s.tap != "" {
		w := ctx.FindByName(s.tap)
		if w == nil {
			return fmt.Errorf("--tap: no widget named %q", s.tap)
		}
		pos := w.Base().Rect().Center()
		evs = []event.Event{event.PointerDown{Pos: pos}, event.PointerUp{Pos: pos}}
	} else {
		evs = []event.Event{event.KeyDown{Code: s.key}, event.KeyUp{Code: s.key}}
	}
	for _, ev := range evs {
		if _, err := ctx.Dispatch(ev); err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
	}
	ctx.Update()
	return nil
}

// encodeFrame draws one frame over the style background and encodes it by
// output extension.
func encodeFrame(ctx *engine.Context, style *theme.Style, ext string) ([]byte, error) {
	size := ctx.Viewport()
	bg := style.Palette.Background
	var buf bytes.Buffer

	switch ext {
	case ".png":
		s := graphics.NewImageSurface(int(math.Ceil(size.Width)), int(math.Ceil(size.Height)))
		s.Clear(bg)
		if err := ctx.Frame(s); err != nil {
			return nil, err
		}
		if err := png.Encode(&buf, s.Image()); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case ".pdf":
		s, err := vector.New(size.Width, size.Height)
		if err != nil {
			return nil, err
		}
		if err := s.DrawRect(graphics.RectFromLTWH(0, 0, size.Width, size.Height), graphics.FillPaint(bg)); err != nil {
			return nil, err
		}
		if err := ctx.Frame(s); err != nil {
			return nil, err
		}
		if err := s.WritePDF(&buf); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported output format %q (use .png or .pdf)", ext)
	}
	return buf.Bytes(), nil
}
