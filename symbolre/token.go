// Package symbolre matches sequences of abstract symbols against regular
// expressions, and generates minimal sequences conforming to such patterns.
//
// Symbols are alphanumeric-with-underscore strings, typically the names of
// VC-2 data unit types. Patterns support concatenation (juxtaposition),
// union (|), the ?, * and + modifiers, parentheses, the wildcard '.' and the
// end-of-sequence assertion '$'. Whitespace, including newlines, is
// insignificant.
package symbolre

import "fmt"

type tokenType int

const (
	tokenString tokenType = iota
	tokenWildcard
	tokenEndOfSequence
	tokenModifier
	tokenBar
	tokenOpenParen
	tokenCloseParen
)

type token struct {
	typ    tokenType
	value  string
	offset int
}

func isSymbolChar(c byte) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// tokenize splits a pattern string into tokens, recording each token's
// character offset for error reporting.
func tokenize(pattern string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch {
		case isSpace(c):
			i++
		case isSymbolChar(c):
			start := i
			for i < len(pattern) && isSymbolChar(pattern[i]) {
				i++
			}
			tokens = append(tokens, token{tokenString, pattern[start:i], start})
		case c == '.':
			tokens = append(tokens, token{tokenWildcard, ".", i})
			i++
		case c == '$':
			tokens = append(tokens, token{tokenEndOfSequence, "$", i})
			i++
		case c == '?' || c == '*' || c == '+':
			tokens = append(tokens, token{tokenModifier, string(c), i})
			i++
		case c == '|':
			tokens = append(tokens, token{tokenBar, "|", i})
			i++
		case c == '(':
			tokens = append(tokens, token{tokenOpenParen, "(", i})
			i++
		case c == ')':
			tokens = append(tokens, token{tokenCloseParen, ")", i})
			i++
		default:
			return nil, &SyntaxError{i, fmt.Sprintf("unexpected character %q", c)}
		}
	}
	return tokens, nil
}
