package cmdline

import (
	"strconv"
	"strings"
)

// Options is the typed view of a kernel command line.
//
// Value options are nil when absent. Flags are false unless their bare
// name appeared on the command line.
type Options struct {
	Root     *string `json:"root,omitempty" yaml:"root,omitempty"`
	LogLevel *uint32 `json:"loglevel,omitempty" yaml:"loglevel,omitempty"`
	Init     *string `json:"init,omitempty" yaml:"init,omitempty"`
	Mem      *uint64 `json:"mem,omitempty" yaml:"mem,omitempty"`
	VGA      *uint32 `json:"vga,omitempty" yaml:"vga,omitempty"`

	Single      bool `json:"single" yaml:"single"`
	NoModeset   bool `json:"nomodeset" yaml:"nomodeset"`
	Debug       bool `json:"debug" yaml:"debug"`
	NoAPIC      bool `json:"noapic" yaml:"noapic"`
	IRQPool     bool `json:"irqpool" yaml:"irqpool"`
	NoLAPIC     bool `json:"nolapic" yaml:"nolapic"`
	IPv6Disable bool `json:"ipv6_disable" yaml:"ipv6_disable"`
	RO          bool `json:"ro" yaml:"ro"`
	Quiet       bool `json:"quiet" yaml:"quiet"`
	Silent      bool `json:"silent" yaml:"silent"`
	Splash      bool `json:"splash" yaml:"splash"`
}

// Command line names understood by the parser, in canonical order.
const (
	KeyRoot        = "root"
	KeyLogLevel    = "loglevel"
	KeyInit        = "init"
	KeyMem         = "mem"
	KeyVGA         = "vga"
	KeyIPv6Disable = "ipv6.disable"
)

var knownKeys = []string{KeyRoot, KeyLogLevel, KeyInit, KeyMem, KeyVGA, KeyIPv6Disable}

var knownFlags = []string{
	"single", "nomodeset", "debug", "noapic", "irqpool", "nolapic", "ro", "quiet", "silent", "splash",
}

// KnownKeys returns the key=value names the parser dispatches on
func KnownKeys() []string {
	return append([]string(nil), knownKeys...)
}

// KnownFlags returns the bare flag names the parser dispatches on
func KnownFlags() []string {
	return append([]string(nil), knownFlags...)
}

// flag returns the field backing a bare flag, or nil when the name is unknown.
func (o *Options) flag(name string) *bool {
	switch name {
	case "single":
		return &o.Single
	case "nomodeset":
		return &o.NoModeset
	case "debug":
		return &o.Debug
	case "noapic":
		return &o.NoAPIC
	case "irqpool":
		return &o.IRQPool
	case "nolapic":
		return &o.NoLAPIC
	case "ro":
		return &o.RO
	case "quiet":
		return &o.Quiet
	case "silent":
		return &o.Silent
	case "splash":
		return &o.Splash
	}

	return nil
}

// Flags returns the names of the flags that are set, in canonical order.
// ipv6.disable is a key=value option and is not listed here.
func (o Options) Flags() []string {
	flags := make([]string, 0, len(knownFlags))
	for _, name := range knownFlags {
		if *o.flag(name) {
			flags = append(flags, name)
		}
	}

	return flags
}

// Field is one set option, named as it appears on the command line.
// Value is a string, uint32, uint64 or bool.
type Field struct {
	Name  string
	Value any
}

// Fields returns the present value options followed by the set flags, in
// canonical order.
func (o Options) Fields() []Field {
	fields := make([]Field, 0, len(knownKeys)+len(knownFlags))
	if o.Root != nil {
		fields = append(fields, Field{KeyRoot, *o.Root})
	}
	if o.LogLevel != nil {
		fields = append(fields, Field{KeyLogLevel, *o.LogLevel})
	}
	if o.Init != nil {
		fields = append(fields, Field{KeyInit, *o.Init})
	}
	if o.Mem != nil {
		fields = append(fields, Field{KeyMem, *o.Mem})
	}
	if o.VGA != nil {
		fields = append(fields, Field{KeyVGA, *o.VGA})
	}
	if o.IPv6Disable {
		fields = append(fields, Field{KeyIPv6Disable, true})
	}
	for _, name := range o.Flags() {
		fields = append(fields, Field{name, true})
	}

	return fields
}

// String renders the canonical command line. Parsing the result yields
// an equal Options as long as no path contains whitespace.
func (o Options) String() string {
	words := make([]string, 0, len(knownKeys)+len(knownFlags))
	for _, field := range o.Fields() {
		switch v := field.Value.(type) {
		case string:
			words = append(words, field.Name+"="+v)
		case uint32:
			words = append(words, field.Name+"="+strconv.FormatUint(uint64(v), 10))
		case uint64:
			words = append(words, field.Name+"="+strconv.FormatUint(v, 10))
		case bool:
			if field.Name == KeyIPv6Disable {
				words = append(words, field.Name+"=1")
			} else {
				words = append(words, field.Name)
			}
		}
	}

	return strings.Join(words, " ")
}

// Equal reports whether both records hold the same values
func (o Options) Equal(other Options) bool {
	return equalPtr(o.Root, other.Root) &&
		equalPtr(o.LogLevel, other.LogLevel) &&
		equalPtr(o.Init, other.Init) &&
		equalPtr(o.Mem, other.Mem) &&
		equalPtr(o.VGA, other.VGA) &&
		o.Single == other.Single &&
		o.NoModeset == other.NoModeset &&
		o.Debug == other.Debug &&
		o.NoAPIC == other.NoAPIC &&
		o.IRQPool == other.IRQPool &&
		o.NoLAPIC == other.NoLAPIC &&
		o.IPv6Disable == other.IPv6Disable &&
		o.RO == other.RO &&
		o.Quiet == other.Quiet &&
		o.Silent == other.Silent &&
		o.Splash == other.Splash
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
