package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/luamark/gopherlua"
	lua "github.com/yuin/gopher-lua"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	L := gopherlua.NewState(deps.Renderer)
	defer L.Close()
	L.SetContext(deps.Ctx)

	arg := L.NewTable()
	arg.RawSetInt(0, lua.LString(c.Script))
	for i, a := range c.Args {
		arg.RawSetInt(i+1, lua.LString(a))
	}
	L.SetGlobal("arg", arg)
	L.SetGlobal("print", L.NewFunction(printTo(deps.Stdout)))

	if err := L.DoFile(c.Script); err != nil {
		return fmt.Errorf("run %s: %w", c.Script, err)
	}
	return nil
}

// printTo returns a Lua print function writing to w.
func printTo(w io.Writer) lua.LGFunction {
	return func(L *lua.LState) int {
		top := L.GetTop()
		for i := 1; i <= top; i++ {
			if i > 1 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, L.ToStringMeta(L.Get(i)).String())
		}
		fmt.Fprintln(w)
		return 0
	}
}
