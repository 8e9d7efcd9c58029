package cmdline

import "fmt"

// DiagnosticKind tells why a token was dropped
type DiagnosticKind int

const (
	Applied      DiagnosticKind = iota
	UnknownKey                  // key=value with a key outside the table
	UnknownFlag                 // bare word outside the table
	InvalidValue                // value did not convert, field kept its value
	IgnoredValue                // ipv6.disable with a value other than "1"
)

// String returns the string representation of DiagnosticKind
func (k DiagnosticKind) String() string {
	switch k {
	case Applied:
		return "applied"
	case UnknownKey:
		return "unknown key"
	case UnknownFlag:
		return "unknown flag"
	case InvalidValue:
		return "invalid value"
	case IgnoredValue:
		return "ignored value"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic describes a token that had no effect on the result
type Diagnostic struct {
	Kind   DiagnosticKind `json:"kind" yaml:"kind"`
	Token  string         `json:"token" yaml:"token"`
	Key    string         `json:"key" yaml:"key"`
	Value  string         `json:"value,omitempty" yaml:"value,omitempty"`
	Offset int            `json:"offset" yaml:"offset"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s: %q", d.Offset, d.Kind, d.Token)
}
