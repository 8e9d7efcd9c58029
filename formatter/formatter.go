// Package formatter renders parsed command lines for people and tools.
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/shibukawa/kcmdline"
	"github.com/shibukawa/kcmdline/cmdline"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format is an output format name
type Format string

const (
	Text     Format = "text"
	JSON     Format = "json"
	YAML     Format = "yaml"
	Cmdline  Format = "cmdline"
	Markdown Format = "markdown"
)

// Formats lists the supported formats
var Formats = []Format{Text, JSON, YAML, Cmdline, Markdown}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(name) {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: '%s'", kcmdline.ErrUnknownFormat, name)
}

// Document is one parsed command line
type Document struct {
	Name        string               `json:"name,omitempty" yaml:"name,omitempty"`
	Options     cmdline.Options      `json:"options" yaml:"options"`
	Diagnostics []cmdline.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Write renders docs in the given format. A single document is written
// on its own; several are written as a list.
func Write(w io.Writer, format Format, docs []Document) error {
	switch format {
	case Text:
		return writeText(w, docs)
	case JSON:
		return writeJSON(w, docs)
	case YAML:
		return writeYAML(w, docs)
	case Cmdline:
		return writeCmdline(w, docs)
	case Markdown:
		return writeMarkdown(w, docs)
	default:
		return fmt.Errorf("%w: '%s'", kcmdline.ErrUnknownFormat, format)
	}
}

func payload(docs []Document) any {
	if len(docs) == 1 {
		return docs[0].Options
	}

	return docs
}

func writeJSON(w io.Writer, docs []Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(payload(docs)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, docs []Document) error {
	data, err := yaml.Marshal(payload(docs))
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	_, err = w.Write(data)

	return err
}

func writeCmdline(w io.Writer, docs []Document) error {
	for _, doc := range docs {
		if _, err := fmt.Fprintln(w, doc.Options.String()); err != nil {
			return err
		}
	}

	return nil
}

// writeText prints an aligned listing. Numbers use digit grouping.
func writeText(w io.Writer, docs []Document) error {
	printer := message.NewPrinter(language.English)
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.Faint)

	for i, doc := range docs {
		if i > 0 {
			fmt.Fprintln(w)
		}

		if doc.Name != "" {
			header.Fprintf(w, "%s\n", doc.Name)
		}

		var flags []string
		values := 0
		for _, field := range doc.Options.Fields() {
			var value string

			switch v := field.Value.(type) {
			case string:
				value = v
				if value == "" {
					value = `""`
				}
			case uint32:
				value = printer.Sprintf("%d", v)
			case uint64:
				value = printer.Sprintf("%d", v)
			case bool:
				flags = append(flags, field.Name)
				continue
			}

			label.Fprintf(w, "%-13s", field.Name+":")
			fmt.Fprintln(w, value)
			values++
		}

		if len(flags) > 0 {
			label.Fprintf(w, "%-13s", "flags:")
			fmt.Fprintln(w, strings.Join(flags, " "))
		}

		if values == 0 && len(flags) == 0 {
			fmt.Fprintln(w, "(no options)")
		}
	}

	return nil
}

// writeMarkdown prints a GFM table per document
func writeMarkdown(w io.Writer, docs []Document) error {
	for i, doc := range docs {
		if i > 0 {
			fmt.Fprintln(w)
		}

		if doc.Name != "" {
			fmt.Fprintf(w, "## %s\n\n", doc.Name)
		}

		fmt.Fprintln(w, "| option | value |")
		fmt.Fprintln(w, "| --- | --- |")
		for _, field := range doc.Options.Fields() {
			fmt.Fprintf(w, "| %s | %s |\n", escapeCell(field.Name), escapeCell(fmt.Sprint(field.Value)))
		}
	}

	return nil
}

func escapeCell(s string) string {
	if s == "" {
		return "` `"
	}

	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}
