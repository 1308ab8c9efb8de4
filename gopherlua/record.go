package gopherlua

import (
	"github.com/fwojciec/luamark"
	lua "github.com/yuin/gopher-lua"
)

// ToRecord converts a Lua table into a luamark.Record. Only string keys are
// kept; booleans, strings and numbers are converted and any other value is
// dropped, which luamark.Normalize then treats as absent.
func ToRecord(tbl *lua.LTable) luamark.Record {
	rec := luamark.Record{}
	tbl.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			return
		}
		switch v := v.(type) {
		case lua.LBool:
			rec[string(key)] = bool(v)
		case lua.LString:
			rec[string(key)] = string(v)
		case lua.LNumber:
			rec[string(key)] = float64(v)
		}
	})
	return rec
}

// FromRecord converts a luamark.Record into a new Lua table.
func FromRecord(L *lua.LState, rec luamark.Record) *lua.LTable {
	tbl := L.CreateTable(0, len(rec))
	for k, v := range rec {
		switch v := v.(type) {
		case bool:
			tbl.RawSetString(k, lua.LBool(v))
		case string:
			tbl.RawSetString(k, lua.LString(v))
		case float64:
			tbl.RawSetString(k, lua.LNumber(v))
		case int:
			tbl.RawSetString(k, lua.LNumber(v))
		}
	}
	return tbl
}
