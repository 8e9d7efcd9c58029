// Package cmdline turns a kernel command line into typed options.
//
// Parsing never fails. Unknown keys, unknown flags and values that do not
// convert are dropped; Inspect reports them for callers that care.
package cmdline

import (
	"strconv"

	"github.com/shibukawa/kcmdline/tokenizer"
)

// Parse returns the options set by cmdline. Tokens are applied left to
// right, so the last occurrence of a key wins. A value that fails to
// convert leaves the field as it was.
func Parse(cmdline string) Options {
	var opts Options
	walk(cmdline, &opts, nil)

	return opts
}

// Inspect is Parse plus one Diagnostic for every token that had no effect.
func Inspect(cmdline string) (Options, []Diagnostic) {
	var (
		opts        Options
		diagnostics []Diagnostic
	)

	walk(cmdline, &opts, func(d Diagnostic) {
		diagnostics = append(diagnostics, d)
	})

	return opts, diagnostics
}

func walk(cmdline string, opts *Options, report func(Diagnostic)) {
	tokens := tokenizer.NewTokenizer(cmdline, tokenizer.TokenizerOptions{SkipWhitespace: true})
	for token := range tokens.Tokens() {
		var kind DiagnosticKind

		switch token.Type {
		case tokenizer.ASSIGNMENT:
			kind = opts.assign(token.Key, token.Arg)
		case tokenizer.FLAG:
			kind = opts.setFlag(token.Key)
		default:
			continue
		}

		if kind != Applied && report != nil {
			report(Diagnostic{
				Kind:   kind,
				Token:  token.Value,
				Key:    token.Key,
				Value:  token.Arg,
				Offset: token.Position.Offset,
			})
		}
	}
}

func (o *Options) assign(key, value string) DiagnosticKind {
	switch key {
	case KeyRoot:
		o.Root = &value
	case KeyInit:
		o.Init = &value
	case KeyLogLevel:
		return setUint32(&o.LogLevel, value)
	case KeyVGA:
		return setUint32(&o.VGA, value)
	case KeyMem:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return InvalidValue
		}
		o.Mem = &n
	case KeyIPv6Disable:
		if value != "1" {
			return IgnoredValue
		}
		o.IPv6Disable = true
	default:
		return UnknownKey
	}

	return Applied
}

func (o *Options) setFlag(name string) DiagnosticKind {
	field := o.flag(name)
	if field == nil {
		return UnknownFlag
	}
	*field = true

	return Applied
}

func setUint32(field **uint32, value string) DiagnosticKind {
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return InvalidValue
	}
	v := uint32(n)
	*field = &v

	return Applied
}
