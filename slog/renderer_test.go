package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/luamark"
	"github.com/fwojciec/luamark/mock"
	lmslog "github.com/fwojciec/luamark/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("logs render with sizes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Renderer{
			RenderFn: func(markdown string, opts *luamark.Options) (string, error) {
				return "<h1>Hello</h1>\n", nil
			},
		}

		renderer := lmslog.NewLoggingRenderer(inner, logger)
		html, err := renderer.Render("# Hello", luamark.GFMOptions())

		require.NoError(t, err)
		assert.Equal(t, "<h1>Hello</h1>\n", html)
		output := buf.String()
		assert.Contains(t, output, "msg=render")
		assert.Contains(t, output, "bytes=7")
		assert.Contains(t, output, "html_bytes=15")
		assert.Contains(t, output, "gfm=true")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Renderer{
			RenderFn: func(markdown string, opts *luamark.Options) (string, error) {
				return "", errors.New("bad input")
			},
		}

		renderer := lmslog.NewLoggingRenderer(inner, logger)
		_, err := renderer.Render("x", &luamark.Options{})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "gfm=false")
		assert.Contains(t, output, "err=\"bad input\"")
	})

	t.Run("passes options through", func(t *testing.T) {
		t.Parallel()

		var got *luamark.Options
		inner := &mock.Renderer{
			RenderFn: func(markdown string, opts *luamark.Options) (string, error) {
				got = opts
				return "", nil
			},
		}
		opts := luamark.GFMOptions()

		renderer := lmslog.NewLoggingRenderer(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
		_, _ = renderer.Render("x", opts)

		assert.Same(t, opts, got)
	})
}
