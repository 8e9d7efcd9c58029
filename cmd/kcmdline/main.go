package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/shibukawa/kcmdline"
)

const version = "v0.1.0"

// Context represents the global context for commands
type Context struct {
	Config  *kcmdline.Config
	Verbose bool
	Quiet   bool
	Logger  *slog.Logger
	Stdin   io.Reader
	Stdout  io.Writer
}

// CLI represents the command-line interface
type CLI struct {
	Config    string       `help:"Configuration file path" default:"kcmdline.yaml"`
	Verbose   bool         `help:"Enable verbose output" short:"v"`
	Quiet     bool         `help:"Suppress output" short:"q"`
	LogLevel  string       `help:"Log level (debug, info, warn, error); overrides log_level in the config file"`
	NoColor   bool         `help:"Disable colored output"`
	Parse     ParseCmd     `cmd:"" help:"Parse command lines and print the options"`
	Check     CheckCmd     `cmd:"" help:"Check command lines against CEL rules"`
	Normalize NormalizeCmd `cmd:"" help:"Print command lines in canonical form"`
	Tokens    TokensCmd    `cmd:"" help:"Print the tokens of command lines"`
	Version   VersionCmd   `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Stdout, "kcmdline %s\n", version)
	return nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name("kcmdline"),
		kong.Description("Parse, normalize and check Linux kernel command lines."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.NoColor {
		color.NoColor = true
	}

	config, err := kcmdline.LoadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level, err := resolveLevel(&cli, config)
	if err != nil {
		return err
	}

	appCtx := &Context{
		Config:  config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
		Logger:  newLogger(stderr, level),
		Stdin:   stdin,
		Stdout:  stdout,
	}

	return kctx.Run(appCtx)
}

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
