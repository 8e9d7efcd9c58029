package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/shibukawa/kcmdline"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// CodeBlockInfo is the fence info string that marks a command line block
const CodeBlockInfo = "cmdline"

// ReadMarkdown extracts every ```cmdline fenced block. Each entry is named
// after the closest heading above it.
func ReadMarkdown(r io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
	)

	doc := md.Parser().Parse(text.NewReader(content))

	var (
		entries []Entry
		heading string
	)

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			heading = extractHeadingText(node, content)
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			if !isCmdlineCodeBlock(node, content) {
				return ast.WalkSkipChildren, nil
			}

			line, err := ReadText(strings.NewReader(extractCodeBlockContent(node, content)))
			if err != nil {
				return ast.WalkStop, err
			}

			name := heading
			if name == "" {
				name = fmt.Sprintf("block %d", len(entries)+1)
			}
			entries = append(entries, Entry{Name: name, Cmdline: line})

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no ```%s code block", kcmdline.ErrNoCmdline, CodeBlockInfo)
	}

	return entries, nil
}

// extractHeadingText extracts text content from a heading AST node
func extractHeadingText(heading ast.Node, content []byte) string {
	var result strings.Builder

	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			segment := node.Segment
			result.Write(content[segment.Start:segment.Stop])
		case *ast.String:
			result.Write(node.Value)
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(result.String())
}

func isCmdlineCodeBlock(codeBlock *ast.FencedCodeBlock, content []byte) bool {
	if codeBlock.Info == nil {
		return false
	}

	segment := codeBlock.Info.Segment
	info := strings.Fields(string(content[segment.Start:segment.Stop]))

	return len(info) > 0 && strings.EqualFold(info[0], CodeBlockInfo)
}

func extractCodeBlockContent(codeBlock ast.Node, content []byte) string {
	var result strings.Builder

	lines := codeBlock.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		result.Write(line.Value(content))
	}

	return result.String()
}
