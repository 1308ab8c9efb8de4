package main

import (
	"context"
	"io"

	"github.com/fwojciec/luamark"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Renderer luamark.Renderer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" env:"LUAMARK_VERBOSE" help:"Log every render to stderr"`

	Run     RunCmd     `cmd:"" help:"Run a Lua script with the markdown module loaded"`
	Render  RenderCmd  `cmd:"" help:"Render Markdown files (or stdin) to HTML"`
	Options OptionsCmd `cmd:"" help:"Print the recommended GFM option record"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Script string   `arg:"" type:"existingfile" help:"Lua script to execute"`
	Args   []string `arg:"" optional:"" passthrough:"" help:"Arguments exposed to the script as the arg table"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	Files       []string          `arg:"" optional:"" type:"existingfile" help:"Markdown files to render (default: stdin)"`
	Option      map[string]string `short:"o" help:"Compile option as key=value (repeatable); without any, stock GFM options apply"`
	Concurrency int               `short:"c" default:"4" help:"Concurrent render limit"`
}

// OptionsCmd is the "options" subcommand.
type OptionsCmd struct {
	Resolved bool `help:"Print the compile options the record resolves to instead"`
}
