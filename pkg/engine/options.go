package engine

import (
	"log/slog"
	"time"

	"github.com/go-drift/ember/pkg/errors"
	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/theme"
)

// DefaultViewport is the viewport size used when none is configured.
var DefaultViewport = graphics.Size{Width: 320, Height: 240}

// Option configures a Context.
type Option func(*config)

type config struct {
	viewport   graphics.Size
	capacity   int
	policy     event.OverflowPolicy
	style      *theme.Style
	logger     *slog.Logger
	debug      bool
	handler    errors.Handler
	traceCap   int
	traceLimit time.Duration
}

func defaultConfig() config {
	return config{
		viewport: DefaultViewport,
		capacity: event.DefaultCapacity,
		policy:   event.DropNewest,
		logger:   defaultLogger,
	}
}

// WithViewport sets the size the root is laid out to fill.
func WithViewport(size graphics.Size) Option {
	return func(c *config) { c.viewport = size.NonNegative() }
}

// WithQueueCapacity sets the fixed event queue capacity.
func WithQueueCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// WithOverflowPolicy selects which event a full queue discards.
func WithOverflowPolicy(p event.OverflowPolicy) Option {
	return func(c *config) { c.policy = p }
}

// WithStyle sets the context style. Nil keeps theme.Default.
func WithStyle(s *theme.Style) Option {
	return func(c *config) { c.style = s }
}

// WithLogger replaces the default stderr logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDebug enables the debug overlay: every widget's rect and an ID/size
// label are drawn over the frame.
func WithDebug(on bool) Option {
	return func(c *config) { c.debug = on }
}

// WithErrorHandler routes recovered handler panics and reported errors to h
// instead of the global errors handler.
func WithErrorHandler(h errors.Handler) Option {
	return func(c *config) { c.handler = h }
}

// WithFrameTrace keeps the last capacity frame samples. Frames slower than
// threshold are counted as slow.
func WithFrameTrace(capacity int, threshold time.Duration) Option {
	return func(c *config) {
		c.traceCap = max(capacity, 1)
		c.traceLimit = threshold
	}
}
