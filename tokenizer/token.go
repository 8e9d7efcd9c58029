package tokenizer

// TokenType represents the type of a token
type TokenType int

const (
	EOF        TokenType = iota
	WHITESPACE           // run of unicode.IsSpace runes
	FLAG                 // bare word without '='
	ASSIGNMENT           // key=value, split on the first '='
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case FLAG:
		return "FLAG"
	case ASSIGNMENT:
		return "ASSIGNMENT"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in the command line.
// Offset is in bytes, Column is in runes and starts at 1.
type Position struct {
	Offset int
	Column int
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position

	// Key holds the flag name for FLAG and the text before the first '='
	// for ASSIGNMENT. Arg holds everything after the first '='.
	Key string
	Arg string
}

// String returns the string representation of Token
func (t Token) String() string {
	switch t.Type {
	case ASSIGNMENT:
		return t.Type.String() + "(" + t.Key + "): " + t.Arg
	default:
		return t.Type.String() + ": " + t.Value
	}
}
