package gopherlua_test

import (
	"testing"

	"github.com/fwojciec/luamark"
	"github.com/fwojciec/luamark/goldmark"
	"github.com/fwojciec/luamark/gopherlua"
	"github.com/fwojciec/luamark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

// run executes script in a fresh state backed by r and returns the global "result".
func run(t *testing.T, r luamark.Renderer, script string) lua.LValue {
	t.Helper()
	L := gopherlua.NewState(r)
	defer L.Close()
	require.NoError(t, L.DoString(script))
	return L.GetGlobal("result")
}

func TestModule_ToHTML(t *testing.T) {
	t.Parallel()

	t.Run("renders heading", func(t *testing.T) {
		t.Parallel()

		result := run(t, goldmark.NewRenderer(), `result = markdown.to_html("# Hello")`)

		assert.Equal(t, lua.LString("<h1>Hello</h1>\n"), result)
	})

	t.Run("renders empty input", func(t *testing.T) {
		t.Parallel()

		result := run(t, goldmark.NewRenderer(), `result = markdown.to_html("")`)

		assert.Equal(t, lua.LString(""), result)
	})

	t.Run("applies options table", func(t *testing.T) {
		t.Parallel()

		result := run(t, goldmark.NewRenderer(), `
			result = markdown.to_html("<b>x</b>", {
				allow_dangerous_html = true,
				default_line_ending = "lf",
			})
		`)

		assert.Equal(t, lua.LString("<p><b>x</b></p>\n"), result)
	})

	t.Run("absent options and nil options both use stock GFM options", func(t *testing.T) {
		t.Parallel()

		var got []*luamark.Options
		renderer := &mock.Renderer{
			RenderFn: func(markdown string, opts *luamark.Options) (string, error) {
				got = append(got, opts)
				return "", nil
			},
		}

		run(t, renderer, `markdown.to_html("a"); markdown.to_html("a", nil)`)

		require.Len(t, got, 2)
		assert.Equal(t, luamark.GFMOptions(), got[0])
		assert.Equal(t, luamark.GFMOptions(), got[1])
	})

	t.Run("converts table values into a record", func(t *testing.T) {
		t.Parallel()

		var got *luamark.Options
		renderer := &mock.Renderer{
			RenderFn: func(markdown string, opts *luamark.Options) (string, error) {
				got = opts
				return "", nil
			},
		}

		run(t, renderer, `
			markdown.to_html("a", {
				allow_any_img_src = true,
				gfm_tagfilter = "no",
				gfm_footnote_label = "Notes",
				gfm_footnote_back_label = 1,
				default_line_ending = "lf",
				[1] = true,
				unknown = true,
			})
		`)

		require.NotNil(t, got)
		assert.True(t, got.Parse.GFM)
		assert.True(t, got.Compile.AllowAnyImgSrc)
		assert.True(t, got.Compile.GFMTagfilter)
		assert.Equal(t, luamark.LineEndingLF, got.Compile.DefaultLineEnding)
		require.NotNil(t, got.Compile.GFMFootnoteLabel)
		assert.Equal(t, "Notes", *got.Compile.GFMFootnoteLabel)
		assert.Nil(t, got.Compile.GFMFootnoteBackLabel)
	})

	t.Run("returns rendering failures as strings", func(t *testing.T) {
		t.Parallel()

		renderer := &mock.Renderer{
			RenderFn: func(markdown string, opts *luamark.Options) (string, error) {
				return "", luamark.Errorf(luamark.EINVALID, "unexpected closing fence")
			},
		}

		result := run(t, renderer, `
			local ok, html = pcall(markdown.to_html, "~~~")
			assert(ok)
			result = html
		`)

		assert.Equal(t, lua.LString("unexpected closing fence"), result)
	})

	t.Run("raises on non-table options", func(t *testing.T) {
		t.Parallel()

		result := run(t, goldmark.NewRenderer(), `
			local ok, err = pcall(markdown.to_html, "# a", 42)
			assert(not ok)
			result = err
		`)

		require.IsType(t, lua.LString(""), result)
		assert.Contains(t, result.String(), "table expected")
	})

	t.Run("raises on non-string markdown", func(t *testing.T) {
		t.Parallel()

		result := run(t, goldmark.NewRenderer(), `
			local ok, err = pcall(markdown.to_html, {})
			assert(not ok)
			result = err
		`)

		assert.Contains(t, result.String(), "string expected")
	})

	t.Run("raises on invalid UTF-8", func(t *testing.T) {
		t.Parallel()

		result := run(t, goldmark.NewRenderer(), `
			local ok, err = pcall(markdown.to_html, "\255\254")
			assert(not ok)
			result = err
		`)

		assert.Contains(t, result.String(), "invalid UTF-8")
	})
}

func TestModule_GFMOptions(t *testing.T) {
	t.Parallel()

	t.Run("returns the default record", func(t *testing.T) {
		t.Parallel()

		L := gopherlua.NewState(goldmark.NewRenderer())
		defer L.Close()

		require.NoError(t, L.DoString(`result = markdown.gfm_options()`))
		tbl, ok := L.GetGlobal("result").(*lua.LTable)
		require.True(t, ok)

		assert.Equal(t, luamark.DefaultRecord(), gopherlua.ToRecord(tbl))
	})

	t.Run("round-trips through to_html", func(t *testing.T) {
		t.Parallel()

		var got []*luamark.Options
		renderer := &mock.Renderer{
			RenderFn: func(markdown string, opts *luamark.Options) (string, error) {
				got = append(got, opts)
				return "", nil
			},
		}

		run(t, renderer, `
			markdown.to_html("a", markdown.gfm_options())
			markdown.to_html("a", {})
		`)

		require.Len(t, got, 2)
		assert.Equal(t, got[1], got[0])
	})

	t.Run("returns a fresh table each call", func(t *testing.T) {
		t.Parallel()

		result := run(t, goldmark.NewRenderer(), `
			local a = markdown.gfm_options()
			a.gfm_tagfilter = false
			result = markdown.gfm_options().gfm_tagfilter
		`)

		assert.Equal(t, lua.LTrue, result)
	})
}

func TestModule_Preload(t *testing.T) {
	t.Parallel()

	L := lua.NewState()
	defer L.Close()
	gopherlua.NewModule(goldmark.NewRenderer()).Preload(L)

	require.NoError(t, L.DoString(`
		local md = require("markdown")
		result = md.to_html("*hi*")
	`))

	assert.Equal(t, lua.LString("<p><em>hi</em></p>\n"), L.GetGlobal("result"))
	assert.Equal(t, lua.LNil, L.GetGlobal("markdown"))
}

func TestModule_IndependentStates(t *testing.T) {
	t.Parallel()

	r := goldmark.NewRenderer()
	a := gopherlua.NewState(r)
	defer a.Close()
	b := gopherlua.NewState(r)
	defer b.Close()

	require.NoError(t, a.DoString(`markdown.to_html = nil`))
	require.NoError(t, b.DoString(`result = markdown.to_html("x")`))

	assert.Equal(t, lua.LString("<p>x</p>\n"), b.GetGlobal("result"))
}
