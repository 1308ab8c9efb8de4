package mock

import "github.com/fwojciec/luamark"

var _ luamark.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of luamark.Renderer.
type Renderer struct {
	RenderFn func(markdown string, opts *luamark.Options) (string, error)
}

func (r *Renderer) Render(markdown string, opts *luamark.Options) (string, error) {
	return r.RenderFn(markdown, opts)
}
