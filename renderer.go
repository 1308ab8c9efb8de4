package luamark

// Renderer converts Markdown to HTML.
type Renderer interface {
	// Render compiles markdown into HTML according to opts.
	// A nil opts means the renderer's stock GFM options.
	// Implementations must be safe for concurrent use.
	Render(markdown string, opts *Options) (string, error)
}

// Adapter bridges option records coming from scripts to a Renderer.
type Adapter struct {
	renderer Renderer
}

// NewAdapter creates a new Adapter backed by r.
func NewAdapter(r Renderer) *Adapter {
	return &Adapter{renderer: r}
}

// Options resolves the options ToHTML would use for rec. A nil record
// selects GFMOptions; any other record is normalized with GFM parsing on.
func (a *Adapter) Options(rec Record) *Options {
	if rec == nil {
		return GFMOptions()
	}
	return &Options{
		Parse:   ParseOptions{GFM: true},
		Compile: Normalize(rec),
	}
}

// ToHTML renders markdown and always returns a string: the HTML on
// success, or the failure reason when the renderer rejects the input.
func (a *Adapter) ToHTML(markdown string, rec Record) string {
	html, err := a.renderer.Render(markdown, a.Options(rec))
	if err != nil {
		return ErrorReason(err)
	}
	return html
}
