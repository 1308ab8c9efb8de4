package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/luamark"
)

// Ensure LoggingRenderer implements luamark.Renderer.
var _ luamark.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging.
type LoggingRenderer struct {
	next   luamark.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next luamark.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(markdown string, opts *luamark.Options) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render",
			"bytes", len(markdown),
			"html_bytes", len(html),
			"gfm", opts == nil || opts.Parse.GFM,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(markdown, opts)
}
