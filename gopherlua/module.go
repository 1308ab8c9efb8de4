// Package gopherlua exposes luamark to Lua scripts running on
// github.com/yuin/gopher-lua.
package gopherlua

import (
	"unicode/utf8"

	"github.com/fwojciec/luamark"
	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the name of the global table and of the require() module.
const ModuleName = "markdown"

// Module is the markdown namespace bound into a Lua state. Build one per
// host environment; it holds no state beyond its renderer.
type Module struct {
	adapter *luamark.Adapter
}

// NewModule creates a new Module rendering through r.
func NewModule(r luamark.Renderer) *Module {
	return &Module{adapter: luamark.NewAdapter(r)}
}

// Register sets the markdown table as a global in L.
func (m *Module) Register(L *lua.LState) {
	L.SetGlobal(ModuleName, m.table(L))
}

// Preload makes require("markdown") return the markdown table.
func (m *Module) Preload(L *lua.LState) {
	L.PreloadModule(ModuleName, m.Loader)
}

// Loader is a lua.LGFunction pushing a new markdown table.
func (m *Module) Loader(L *lua.LState) int {
	L.Push(m.table(L))
	return 1
}

func (m *Module) table(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"to_html":     m.toHTML,
		"gfm_options": m.gfmOptions,
	})
}

// toHTML implements markdown.to_html(text [, options]). Argument errors are
// raised in Lua; rendering failures come back as the returned string.
func (m *Module) toHTML(L *lua.LState) int {
	markdown := L.CheckString(1)
	if !utf8.ValidString(markdown) {
		L.ArgError(1, "invalid UTF-8 string")
		return 0
	}
	var rec luamark.Record
	if tbl := L.OptTable(2, nil); tbl != nil {
		rec = ToRecord(tbl)
	}
	L.Push(lua.LString(m.adapter.ToHTML(markdown, rec)))
	return 1
}

// gfmOptions implements markdown.gfm_options().
func (m *Module) gfmOptions(L *lua.LState) int {
	L.Push(FromRecord(L, luamark.DefaultRecord()))
	return 1
}

// NewState returns a Lua state with the standard libraries opened and the
// markdown module both registered as a global and preloaded for require.
func NewState(r luamark.Renderer) *lua.LState {
	L := lua.NewState()
	m := NewModule(r)
	m.Register(L)
	m.Preload(L)
	return L
}
