package symbolre

// AST node types. A nil astNode is the empty expression.
type astNode interface{ ast() }

// symbolNode matches exactly one occurrence of a symbol (or the wildcard or
// end-of-sequence sentinel).
type symbolNode struct{ symbol string }

// starNode matches zero or more repetitions of its sub-expression.
type starNode struct{ expr astNode }

// concatNode matches a followed by b.
type concatNode struct{ a, b astNode }

// unionNode matches either a or b. Either side may be nil (empty).
type unionNode struct{ a, b astNode }

func (*symbolNode) ast() {}
func (*starNode) ast()   {}
func (*concatNode) ast() {}
func (*unionNode) ast()  {}

func popToken(tokens *[]token) token {
	t := (*tokens)[len(*tokens)-1]
	*tokens = (*tokens)[:len(*tokens)-1]
	return t
}

// parseExpression consumes tokens from the end of the token list (i.e. right
// to left, which makes tight binding of the ?, * and + modifiers easy) and
// returns when it runs out of tokens or reaches an unmatched opening
// parenthesis.
func parseExpression(tokens *[]token) (astNode, error) {
	var ast astNode
	var modifier *token

	for len(*tokens) > 0 && (*tokens)[len(*tokens)-1].typ != tokenOpenParen {
		t := (*tokens)[len(*tokens)-1]

		if t.typ == tokenModifier {
			if modifier != nil {
				return nil, &SyntaxError{t.offset, "multiple modifiers"}
			}
			m := popToken(tokens)
			modifier = &m
			continue
		}

		if t.typ == tokenBar {
			if modifier != nil {
				return nil, &SyntaxError{t.offset, "modifier before '|'"}
			}
			popToken(tokens)
			left, err := parseExpression(tokens)
			if err != nil {
				return nil, err
			}
			ast = &unionNode{left, ast}
			continue
		}

		// Grab the next expression from the token list
		var next astNode
		switch t.typ {
		case tokenCloseParen:
			popToken(tokens)
			sub, err := parseExpression(tokens)
			if err != nil {
				return nil, err
			}
			if len(*tokens) == 0 {
				return nil, &SyntaxError{-1, "unmatched parentheses"}
			}
			popToken(tokens) // the matching '('
			next = sub
		case tokenString:
			next = &symbolNode{popToken(tokens).value}
		case tokenWildcard:
			popToken(tokens)
			next = &symbolNode{Wildcard}
		case tokenEndOfSequence:
			popToken(tokens)
			next = &symbolNode{EndOfSequence}
		}

		// Apply any pending modifier
		if modifier != nil {
			switch modifier.value {
			case "*":
				next = &starNode{next}
			case "+":
				next = &concatNode{next, &starNode{next}}
			case "?":
				next = &unionNode{next, nil}
			}
			modifier = nil
		}

		if ast == nil {
			ast = next
		} else {
			ast = &concatNode{next, ast}
		}
	}

	if modifier != nil {
		if len(*tokens) > 0 {
			return nil, &SyntaxError{(*tokens)[len(*tokens)-1].offset, "modifier before '('"}
		}
		return nil, &SyntaxError{modifier.offset, "modifier at start of expression"}
	}

	return ast, nil
}

// parsePattern parses a full pattern string into an AST.
func parsePattern(pattern string) (astNode, error) {
	tokens, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}
	ast, err := parseExpression(&tokens)
	if err != nil {
		return nil, err
	}
	if len(tokens) > 0 {
		return nil, &SyntaxError{tokens[len(tokens)-1].offset, "unmatched parentheses"}
	}
	return ast, nil
}
