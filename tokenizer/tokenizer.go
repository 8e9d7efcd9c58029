package tokenizer

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenIterator is a range-over-func iterator of tokens
type TokenIterator iter.Seq[Token]

// Tokenizer splits a kernel command line into tokens
type Tokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
}

// NewTokenizer creates a new Tokenizer
func NewTokenizer(input string, options ...TokenizerOptions) *Tokenizer {
	opts := TokenizerOptions{}
	if len(options) > 0 {
		opts = options[0]
	}

	return &Tokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens. The last token is always EOF.
func (t *Tokenizer) Tokens() TokenIterator {
	return func(yield func(Token) bool) {
		s := &scanner{
			input:  t.input,
			column: 1,
		}

		for {
			token := s.nextToken()
			if token.Type == EOF {
				yield(token)
				return
			}

			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}

			if !yield(token) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice (for debugging)
func (t *Tokenizer) AllTokens() []Token {
	tokens := make([]Token, 0, 32)
	for token := range t.Tokens() {
		tokens = append(tokens, token)
	}

	return tokens
}

// Split returns the non-whitespace words of input in order.
// It agrees with strings.Fields.
func Split(input string) []string {
	words := make([]string, 0, 16)
	for token := range NewTokenizer(input, TokenizerOptions{SkipWhitespace: true}).Tokens() {
		if token.Type == EOF {
			break
		}
		words = append(words, token.Value)
	}

	return words
}

type scanner struct {
	input  string
	offset int
	column int
}

func (s *scanner) position() Position {
	return Position{Offset: s.offset, Column: s.column}
}

// nextToken gets the next token
func (s *scanner) nextToken() Token {
	start := s.position()
	if s.offset >= len(s.input) {
		return Token{Type: EOF, Position: start}
	}

	r, _ := utf8.DecodeRuneInString(s.input[s.offset:])
	if unicode.IsSpace(r) {
		return Token{
			Type:     WHITESPACE,
			Value:    s.readWhile(unicode.IsSpace),
			Position: start,
		}
	}

	word := s.readWhile(func(r rune) bool { return !unicode.IsSpace(r) })

	return classify(word, start)
}

// readWhile consumes runes while pred holds and returns the consumed text
func (s *scanner) readWhile(pred func(rune) bool) string {
	begin := s.offset
	for s.offset < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[s.offset:])
		if !pred(r) {
			break
		}
		s.offset += size
		s.column++
	}

	return s.input[begin:s.offset]
}

// classify decides between key=value and a bare flag.
// Only the first '=' separates; later ones belong to the value.
func classify(word string, pos Position) Token {
	if key, arg, found := strings.Cut(word, "="); found {
		return Token{
			Type:     ASSIGNMENT,
			Value:    word,
			Key:      key,
			Arg:      arg,
			Position: pos,
		}
	}

	return Token{
		Type:     FLAG,
		Value:    word,
		Key:      word,
		Position: pos,
	}
}
