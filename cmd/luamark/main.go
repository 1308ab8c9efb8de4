package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/luamark"
	"github.com/fwojciec/luamark/goldmark"
	lmslog "github.com/fwojciec/luamark/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Input for commands reading from standard input. Set before calling Run().
	Stdin io.Reader

	// Renderer used by all commands. Defaults to goldmark.
	Renderer luamark.Renderer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:    os.Stdin,
		Renderer: goldmark.NewRenderer(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("luamark"),
		kong.Description("Render GitHub-Flavored Markdown to HTML from the shell or from Lua scripts"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'luamark --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Renderer = m.Renderer
	if cli.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		deps.Renderer = lmslog.NewLoggingRenderer(m.Renderer, logger)
	}

	return kongCtx.Run(deps)
}
