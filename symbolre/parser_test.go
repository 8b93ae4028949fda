package symbolre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens, err := tokenize("foo_123 (a|b)* .+ $?")
	require.NoError(t, err)

	var types []tokenType
	var offsets []int
	for _, tok := range tokens {
		types = append(types, tok.typ)
		offsets = append(offsets, tok.offset)
	}
	assert.Equal(t, []tokenType{
		tokenString,
		tokenOpenParen, tokenString, tokenBar, tokenString, tokenCloseParen,
		tokenModifier,
		tokenWildcard, tokenModifier,
		tokenEndOfSequence, tokenModifier,
	}, types)
	assert.Equal(t, []int{0, 8, 9, 10, 11, 12, 13, 15, 16, 18, 19}, offsets)
}

func TestTokenizeWhitespaceInsignificant(t *testing.T) {
	a, err := tokenize("a b")
	require.NoError(t, err)
	b, err := tokenize(" a \n\t b \r\n")
	require.NoError(t, err)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].typ, b[i].typ)
		assert.Equal(t, a[i].value, b[i].value)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		wantOffset int
	}{
		{"unexpected character", "foo @ bar", 4},
		{"multiple modifiers", "a*?", 1},
		{"modifier before bar", "a | *b", 2},
		{"modifier at start", "*a", 0},
		{"modifier after open paren", "(*a)", 0},
		{"unmatched open paren", "(a", 0},
		{"unmatched close paren", "a)", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatcher(tt.pattern)
			require.Error(t, err)
			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.wantOffset, syntaxErr.Offset)
		})
	}
}

func TestParseEquivalences(t *testing.T) {
	// Patterns whose internal AST shape may differ but whose matching
	// behaviour must be identical.
	tests := []struct {
		a, b     string
		accepted [][]string
		rejected [][]string
	}{
		{
			a:        "a+",
			b:        "a a*",
			accepted: [][]string{{"a"}, {"a", "a", "a"}},
			rejected: [][]string{{}},
		},
		{
			a:        "a?",
			b:        "() | a",
			accepted: [][]string{{}, {"a"}},
			rejected: [][]string{{"a", "a"}},
		},
		{
			a:        "a b c",
			b:        "((a b) c)",
			accepted: [][]string{{"a", "b", "c"}},
			rejected: [][]string{{"a", "b"}, {"a", "c"}},
		},
	}
	for _, tt := range tests {
		for _, pattern := range []string{tt.a, tt.b} {
			for _, seq := range tt.accepted {
				m := mustMatcher(t, pattern)
				for _, s := range seq {
					require.True(t, m.MatchSymbol(s), "%q should accept %v", pattern, seq)
				}
				assert.True(t, m.IsComplete(), "%q should complete on %v", pattern, seq)
			}
			for _, seq := range tt.rejected {
				m := mustMatcher(t, pattern)
				complete := true
				for _, s := range seq {
					if !m.MatchSymbol(s) {
						complete = false
						break
					}
				}
				if complete {
					complete = m.IsComplete()
				}
				assert.False(t, complete, "%q should reject %v", pattern, seq)
			}
		}
	}
}
