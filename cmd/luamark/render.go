package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/fwojciec/luamark"
	"golang.org/x/sync/errgroup"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	adapter := luamark.NewAdapter(deps.Renderer)
	rec := c.record()

	if len(c.Files) == 0 {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		fmt.Fprint(deps.Stdout, adapter.ToHTML(string(data), rec))
		return nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]string, len(c.Files))
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, path := range c.Files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			results[i] = adapter.ToHTML(string(data), rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, html := range results {
		fmt.Fprint(deps.Stdout, html)
	}
	return nil
}

// record builds an option record from -o flags. Without flags it returns
// nil so the renderer's stock GFM options apply.
func (c *RenderCmd) record() luamark.Record {
	if len(c.Option) == 0 {
		return nil
	}
	rec := luamark.Record{}
	for k, v := range c.Option {
		if slices.Contains(luamark.BoolKeys, k) {
			if b, err := strconv.ParseBool(v); err == nil {
				rec[k] = b
				continue
			}
		}
		rec[k] = v
	}
	return rec
}
