package symbolre

// Matcher tests whether a sequence of symbols conforms to a pattern,
// consuming one symbol at a time.
//
// MatchSymbol should be called for each symbol in the sequence. If false is
// returned the sequence does not match. ValidNextSymbols may be used to list
// what symbols would have been accepted. Once the whole sequence has been
// consumed, IsComplete reports whether a complete pattern was matched.
//
// A Matcher models one linear traversal of one candidate sequence and must
// not be reused across independent sequences, or shared between goroutines.
// Callers needing rollback should Copy the matcher before a tentative
// MatchSymbol.
type Matcher struct {
	nfa    *nfa
	states map[*nfaNode]struct{}
}

// NewMatcher compiles a pattern into a Matcher. A malformed pattern fails
// with a *SyntaxError; no partially built matcher is returned.
func NewMatcher(pattern string) (*Matcher, error) {
	ast, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}
	n := nfaFromAST(ast)
	return &Matcher{
		nfa:    n,
		states: map[*nfaNode]struct{}{n.start: {}},
	}, nil
}

// Copy returns an independent matcher at the same position. The immutable
// NFA is shared; only the current state set is duplicated.
func (m *Matcher) Copy() *Matcher {
	states := make(map[*nfaNode]struct{}, len(m.states))
	for s := range m.states {
		states[s] = struct{}{}
	}
	return &Matcher{nfa: m.nfa, states: states}
}

// MatchSymbol attempts to match the next symbol in the sequence, advancing
// along edges labelled with the symbol or the wildcard. It returns true if
// the symbol matched. On failure the matcher state is left unchanged so the
// caller may retry with a different symbol.
func (m *Matcher) MatchSymbol(symbol string) bool {
	newStates := make(map[*nfaNode]struct{})
	for node := range m.states {
		for dest := range node.follow(symbol) {
			newStates[dest] = struct{}{}
		}
		for dest := range node.follow(Wildcard) {
			newStates[dest] = struct{}{}
		}
	}
	if len(newStates) == 0 {
		return false
	}
	m.states = newStates
	return true
}

// IsComplete reports whether it is valid for the sequence to terminate at
// this point: either the NFA's final state is in the current epsilon
// closure, or an explicit end-of-sequence assertion is satisfiable here.
func (m *Matcher) IsComplete() bool {
	for node := range m.states {
		if _, ok := node.equivalentNodes()[m.nfa.final]; ok {
			return true
		}
		if len(node.follow(EndOfSequence)) > 0 {
			return true
		}
	}
	return false
}

// ValidNextSymbols returns the set of symbols the matcher would accept next.
//
// If a wildcard is allowed it stands for every concrete symbol, so Wildcard
// alone is returned in place of any concrete labels. If it is valid for the
// sequence to end here the set also includes EndOfSequence (which is never
// absorbed into the wildcard).
func (m *Matcher) ValidNextSymbols() map[string]struct{} {
	valid := make(map[string]struct{})
	wildcard := false
	for node := range m.states {
		for equivalent := range node.equivalentNodes() {
			for symbol := range equivalent.edges {
				if symbol == Wildcard {
					wildcard = true
				}
				if symbol != EndOfSequence {
					valid[symbol] = struct{}{}
				}
			}
		}
	}
	if wildcard {
		valid = map[string]struct{}{Wildcard: {}}
	}
	if m.IsComplete() {
		valid[EndOfSequence] = struct{}{}
	}
	return valid
}
