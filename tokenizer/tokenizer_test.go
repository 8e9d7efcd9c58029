package tokenizer

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTokenIterator(t *testing.T) {
	input := "root=/dev/sda1 ro quiet"
	tokenizer := NewTokenizer(input)

	expectedTypes := []TokenType{
		ASSIGNMENT, WHITESPACE, FLAG, WHITESPACE, FLAG, EOF,
	}

	var actualTypes []TokenType
	for token := range tokenizer.Tokens() {
		actualTypes = append(actualTypes, token.Type)
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestTokenIteratorWithOptions(t *testing.T) {
	input := "  root=/dev/sda1 \t ro\n quiet  "
	tokenizer := NewTokenizer(input, TokenizerOptions{
		SkipWhitespace: true,
	})

	expectedTypes := []TokenType{ASSIGNMENT, FLAG, FLAG, EOF}

	var actualTypes []TokenType
	for token := range tokenizer.Tokens() {
		actualTypes = append(actualTypes, token.Type)
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestIteratorEarlyTermination(t *testing.T) {
	tokenizer := NewTokenizer("a b c d e f g h")

	count := 0
	for range tokenizer.Tokens() {
		count++

		if count >= 5 {
			break
		}
	}

	assert.Equal(t, 5, count)
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedType TokenType
		expectedKey  string
		expectedArg  string
	}{
		{
			name:         "bare flag",
			input:        "quiet",
			expectedType: FLAG,
			expectedKey:  "quiet",
		},
		{
			name:         "key value",
			input:        "loglevel=3",
			expectedType: ASSIGNMENT,
			expectedKey:  "loglevel",
			expectedArg:  "3",
		},
		{
			name:         "split on first equal only",
			input:        "init=/bin/sh=x=y",
			expectedType: ASSIGNMENT,
			expectedKey:  "init",
			expectedArg:  "/bin/sh=x=y",
		},
		{
			name:         "empty value",
			input:        "root=",
			expectedType: ASSIGNMENT,
			expectedKey:  "root",
			expectedArg:  "",
		},
		{
			name:         "empty key",
			input:        "=",
			expectedType: ASSIGNMENT,
			expectedKey:  "",
			expectedArg:  "",
		},
		{
			name:         "dotted key",
			input:        "ipv6.disable=1",
			expectedType: ASSIGNMENT,
			expectedKey:  "ipv6.disable",
			expectedArg:  "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := NewTokenizer(tt.input).AllTokens()
			assert.Equal(t, 2, len(tokens))
			assert.Equal(t, tt.expectedType, tokens[0].Type)
			assert.Equal(t, tt.expectedKey, tokens[0].Key)
			assert.Equal(t, tt.expectedArg, tokens[0].Arg)
			assert.Equal(t, tt.input, tokens[0].Value)
			assert.Equal(t, EOF, tokens[1].Type)
		})
	}
}

func TestPositions(t *testing.T) {
	tokens := NewTokenizer("ro  café=1 x", TokenizerOptions{SkipWhitespace: true}).AllTokens()

	assert.Equal(t, 4, len(tokens))
	assert.Equal(t, Position{Offset: 0, Column: 1}, tokens[0].Position)
	assert.Equal(t, Position{Offset: 4, Column: 5}, tokens[1].Position)
	// "café" has a two byte rune, so bytes run ahead of columns
	assert.Equal(t, Position{Offset: 12, Column: 12}, tokens[2].Position)
	assert.Equal(t, Position{Offset: 13, Column: 13}, tokens[3].Position)
}

func TestSplit(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"\t\n\v\f\r ",
		"quiet",
		"  root=/dev/sda1   ro  ",
		"a\tb\nc\r\nd",
		"x y z",
		"=",
		"key= =value",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, strings.Fields(input), Split(input))
		})
	}
}

func TestEmptyInput(t *testing.T) {
	tokens := NewTokenizer("").AllTokens()
	assert.Equal(t, []Token{{Type: EOF, Position: Position{Offset: 0, Column: 1}}}, tokens)
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "FLAG: quiet", Token{Type: FLAG, Value: "quiet", Key: "quiet"}.String())
	assert.Equal(t, "ASSIGNMENT(mem): 8192", Token{Type: ASSIGNMENT, Value: "mem=8192", Key: "mem", Arg: "8192"}.String())
	assert.Equal(t, "UNKNOWN", TokenType(42).String())
}
