package main

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/shibukawa/kcmdline"
	"github.com/shibukawa/kcmdline/formatter"
	"github.com/shibukawa/kcmdline/rules"
	"github.com/shibukawa/kcmdline/tokenizer"
)

// ParseCmd represents the parse command
type ParseCmd struct {
	InputFlags `embed:""`

	Format string `help:"Output format (text, json, yaml, cmdline, markdown); defaults to the config file's format" short:"f"`
	Strict bool   `help:"Fail when any token was ignored"`
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
	name := cmd.Format
	if name == "" {
		name = ctx.Config.Format
	}

	format, err := formatter.ParseFormat(name)
	if err != nil {
		return err
	}

	entries, err := cmd.collect(ctx)
	if err != nil {
		return err
	}

	docs := inspect(ctx, entries)
	if err := formatter.Write(ctx.Stdout, format, docs); err != nil {
		return err
	}

	if cmd.Strict {
		ignored := 0
		for _, doc := range docs {
			ignored += len(doc.Diagnostics)
		}

		if ignored > 0 {
			return fmt.Errorf("%w: %d token(s)", ErrIgnoredTokens, ignored)
		}
	}

	return nil
}

// NormalizeCmd represents the normalize command
type NormalizeCmd struct {
	InputFlags `embed:""`
}

// Run executes the normalize command
func (cmd *NormalizeCmd) Run(ctx *Context) error {
	entries, err := cmd.collect(ctx)
	if err != nil {
		return err
	}

	return formatter.Write(ctx.Stdout, formatter.Cmdline, inspect(ctx, entries))
}

// TokensCmd represents the tokens command
type TokensCmd struct {
	InputFlags `embed:""`

	Whitespace bool `help:"Include whitespace tokens"`
}

// Run executes the tokens command
func (cmd *TokensCmd) Run(ctx *Context) error {
	entries, err := cmd.collect(ctx)
	if err != nil {
		return err
	}

	header := color.New(color.FgCyan, color.Bold)

	for _, entry := range entries {
		if entry.Name != "" && len(entries) > 1 {
			header.Fprintf(ctx.Stdout, "%s\n", entry.Name)
		}

		tok := tokenizer.NewTokenizer(entry.Cmdline, tokenizer.TokenizerOptions{SkipWhitespace: !cmd.Whitespace})
		for token := range tok.Tokens() {
			if token.Type == tokenizer.EOF {
				break
			}

			fmt.Fprintf(ctx.Stdout, "%4d  %s\n", token.Position.Offset, token)
		}
	}

	return nil
}

// CheckCmd represents the check command
type CheckCmd struct {
	InputFlags `embed:""`

	Expr []string `help:"Additional CEL expression to check" short:"e" sep:"none"`
}

// Run executes the check command
func (cmd *CheckCmd) Run(ctx *Context) error {
	ruleSet := slices.Clone(ctx.Config.Rules)
	for _, expr := range cmd.Expr {
		ruleSet = append(ruleSet, kcmdline.Rule{Name: expr, Expr: expr, Severity: kcmdline.SeverityError})
	}

	if len(ruleSet) == 0 {
		return ErrNoRules
	}

	engine, err := rules.New(ruleSet)
	if err != nil {
		return err
	}

	entries, err := cmd.collect(ctx)
	if err != nil {
		return err
	}

	header := color.New(color.FgCyan, color.Bold)
	pass := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	fail := color.New(color.FgRed)

	failures := 0

	for _, doc := range inspect(ctx, entries) {
		if doc.Name != "" && len(entries) > 1 {
			header.Fprintf(ctx.Stdout, "%s\n", doc.Name)
		}

		for _, result := range engine.Evaluate(doc.Options) {
			switch {
			case result.Err != nil:
				fail.Fprintf(ctx.Stdout, "ERROR %s: %v\n", result.Rule.Name, result.Err)
			case result.Passed:
				if !ctx.Quiet {
					pass.Fprintf(ctx.Stdout, "PASS  %s\n", result.Rule.Name)
				}
			case result.Rule.Severity == kcmdline.SeverityWarning:
				warn.Fprintf(ctx.Stdout, "WARN  %s%s\n", result.Rule.Name, suffix(result.Rule.Message))
			default:
				fail.Fprintf(ctx.Stdout, "FAIL  %s%s\n", result.Rule.Name, suffix(result.Rule.Message))
			}

			if result.Failed() {
				failures++
			}
		}
	}

	if failures > 0 {
		return fmt.Errorf("%w: %d failure(s)", ErrRuleFailed, failures)
	}

	return nil
}

func suffix(message string) string {
	if message == "" {
		return ""
	}

	return ": " + message
}
