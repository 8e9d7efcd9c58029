// Package source acquires kernel command lines from the places they
// usually live: /proc, plain files, libvirt domain XML, Markdown runbooks
// and YAML or TOML profile files.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shibukawa/kcmdline"
)

// ProcCmdlinePath is where Linux exposes the running kernel's command line
const ProcCmdlinePath = "/proc/cmdline"

// ProcInput is the input name that selects ProcCmdlinePath
const ProcInput = "proc"

// Entry is one command line and the name it was found under
type Entry struct {
	Name    string `json:"name" yaml:"name"`
	Cmdline string `json:"cmdline" yaml:"cmdline"`
}

// Open reads the command lines held by path. ProcInput reads the running
// kernel's command line; other inputs are dispatched by file extension.
func Open(path string) ([]Entry, error) {
	if path == ProcInput {
		line, err := ReadProc(ProcCmdlinePath)
		if err != nil {
			return nil, err
		}

		return []Entry{{Name: ProcCmdlinePath, Cmdline: line}}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	if info, err := file.Stat(); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", kcmdline.ErrUnsupportedSource, path)
	}

	return Read(path, file)
}

// Read reads command lines from r, choosing the reader by name's extension:
// .xml is libvirt domain XML, .md is Markdown, .yaml/.yml and .toml are
// profile files and anything else is plain text.
func Read(name string, r io.Reader) ([]Entry, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xml":
		entry, err := ReadLibvirtXML(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if entry.Name == "" {
			entry.Name = name
		}

		return []Entry{entry}, nil
	case ".md", ".markdown":
		entries, err := ReadMarkdown(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		return entries, nil
	case ".yaml", ".yml":
		entries, err := ReadProfiles(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		return entries, nil
	case ".toml":
		entries, err := ReadTOMLProfiles(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		return entries, nil
	default:
		line, err := ReadText(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		return []Entry{{Name: name, Cmdline: line}}, nil
	}
}

// ReadProc reads a /proc/cmdline style file
func ReadProc(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read kernel command line: %w", err)
	}
	defer file.Close()

	return ReadText(file)
}

// ReadText reads a command line that may be split across lines. Lines
// starting with '#' are comments. Remaining lines are joined by spaces.
func ReadText(r io.Reader) (string, error) {
	var parts []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts = append(parts, line)
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read command line: %w", err)
	}

	return strings.Join(parts, " "), nil
}
