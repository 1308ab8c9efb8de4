package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/luamark"
)

// Run executes the options command.
func (c *OptionsCmd) Run(deps *Dependencies) error {
	var v any = luamark.DefaultRecord()
	if c.Resolved {
		v = luamark.Normalize(luamark.DefaultRecord())
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}
