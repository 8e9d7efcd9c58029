package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/shibukawa/kcmdline/cmdline"
	"github.com/shibukawa/kcmdline/formatter"
	"github.com/shibukawa/kcmdline/source"
	"golang.org/x/sync/errgroup"
)

// StdinInput is the input name that reads standard input
const StdinInput = "-"

const stdinName = "<stdin>"

// InputFlags selects the command lines a command works on
type InputFlags struct {
	Text    []string `help:"Literal command line" short:"t" sep:"none"`
	Profile []string `help:"Profile name from the config file" short:"p" sep:"none"`
	Inputs  []string `arg:"" optional:"" name:"input" help:"'-' for stdin, 'proc' for /proc/cmdline, or a text, .xml, .md, .yaml or .toml file" sep:"none"`
}

// collect resolves literals, then profiles, then inputs. With nothing
// selected the config source is read. Inputs are read concurrently and
// returned in argument order.
func (f *InputFlags) collect(ctx *Context) ([]source.Entry, error) {
	var entries []source.Entry

	for _, text := range f.Text {
		entries = append(entries, source.Entry{Cmdline: text})
	}

	for _, name := range f.Profile {
		line, err := ctx.Config.Profile(name)
		if err != nil {
			return nil, err
		}

		entries = append(entries, source.Entry{Name: name, Cmdline: line})
	}

	inputs := f.Inputs
	if len(entries) == 0 && len(inputs) == 0 {
		inputs = []string{ctx.Config.Source}
	}

	results := make([][]source.Entry, len(inputs))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, input := range inputs {
		g.Go(func() error {
			read, err := readInput(input, ctx.Stdin)
			if err != nil {
				return err
			}

			ctx.Logger.Debug("read input", "input", input, "entries", len(read))
			results[i] = read

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, read := range results {
		entries = append(entries, read...)
	}

	return entries, nil
}

func readInput(input string, stdin io.Reader) ([]source.Entry, error) {
	if input == StdinInput {
		entries, err := source.Read(stdinName, stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}

		return entries, nil
	}

	return source.Open(input)
}

// inspect parses every entry and logs the tokens that had no effect
func inspect(ctx *Context, entries []source.Entry) []formatter.Document {
	docs := make([]formatter.Document, 0, len(entries))
	for _, entry := range entries {
		opts, diagnostics := cmdline.Inspect(entry.Cmdline)
		logDiagnostics(ctx.Logger, entry.Name, diagnostics)

		docs = append(docs, formatter.Document{
			Name:        entry.Name,
			Options:     opts,
			Diagnostics: diagnostics,
		})
	}

	return docs
}
