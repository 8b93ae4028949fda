package symbolre

import "sort"

// DefaultDepthLimit is the default bound on consecutive filler insertions in
// MakeMatchingSequence. The value is empirically chosen for the level
// sequence restriction patterns shipped with this toolkit, not a proven
// sufficient constant; callers with patterns needing longer filler runs must
// raise it.
const DefaultDepthLimit = 3

// SequenceOptions tunes MakeMatchingSequence.
type SequenceOptions struct {
	// DepthLimit bounds the number of consecutive symbols inserted
	// without consuming a required symbol. Zero means DefaultDepthLimit.
	// Sequences needing more consecutive insertions than this are
	// reported impossible; the bound is what keeps the search finite.
	DepthLimit int

	// SymbolPriority orders filler symbols from most to least preferable.
	// The result is always a shortest sequence; where several equal
	// length sequences exist, this chooses which is returned. Symbols not
	// listed rank last, in alphabetical order. When empty, wildcard
	// positions are filled with the Wildcard sentinel rather than a
	// concrete symbol.
	SymbolPriority []string
}

// searchState is one node of the breadth-first search frontier. Each state
// owns its matchers: branches never share mutable matcher state.
type searchState struct {
	emitted   []string
	remaining []string
	matchers  []*Matcher
	depthLeft int
}

func copyMatchers(matchers []*Matcher) []*Matcher {
	out := make([]*Matcher, len(matchers))
	for i, m := range matchers {
		out[i] = m.Copy()
	}
	return out
}

func appendSymbol(symbols []string, symbol string) []string {
	out := make([]string, 0, len(symbols)+1)
	out = append(out, symbols...)
	return append(out, symbol)
}

// MakeMatchingSequence finds the shortest sequence of symbols which contains
// required as an ordered subsequence (extra symbols may be inserted anywhere,
// none deleted or reordered) and is matched to completion by every supplied
// pattern simultaneously.
//
// The search is breadth-first, trying to consume the next required symbol
// before inserting filler, so the first solution found is minimal. It fails
// with an *ImpossibleSequenceError when no sequence exists within the
// insertion bound.
func MakeMatchingSequence(required []string, patterns []string, opts SequenceOptions) ([]string, error) {
	depthLimit := opts.DepthLimit
	if depthLimit == 0 {
		depthLimit = DefaultDepthLimit
	}

	matchers := make([]*Matcher, len(patterns))
	for i, pattern := range patterns {
		m, err := NewMatcher(pattern)
		if err != nil {
			return nil, err
		}
		matchers[i] = m
	}

	queue := []searchState{{
		emitted:   nil,
		remaining: required,
		matchers:  matchers,
		depthLeft: depthLimit,
	}}

	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]

		if len(state.remaining) == 0 {
			if allComplete(state.matchers) {
				if state.emitted == nil {
					return []string{}, nil
				}
				return state.emitted, nil
			}
		} else if allAccept(state.matchers, state.remaining[0]) {
			// The next required symbol is accepted by every
			// pattern: consume it and reset the insertion budget.
			// Filler is only tried when the required symbol is
			// blocked.
			next := copyMatchers(state.matchers)
			for _, m := range next {
				m.MatchSymbol(state.remaining[0])
			}
			queue = append(queue, searchState{
				emitted:   appendSymbol(state.emitted, state.remaining[0]),
				remaining: state.remaining[1:],
				matchers:  next,
				depthLeft: depthLimit,
			})
			continue
		}

		if state.depthLeft <= 0 {
			continue
		}

		candidates := fillerCandidates(state.matchers)
		if len(candidates) == 0 {
			continue
		}

		for _, symbol := range orderCandidates(candidates, opts.SymbolPriority) {
			next := copyMatchers(state.matchers)
			ok := true
			for _, m := range next {
				if !m.MatchSymbol(symbol) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			queue = append(queue, searchState{
				emitted:   appendSymbol(state.emitted, symbol),
				remaining: state.remaining,
				matchers:  next,
				depthLeft: state.depthLeft - 1,
			})
		}
	}

	return nil, &ImpossibleSequenceError{Required: append([]string(nil), required...)}
}

func allComplete(matchers []*Matcher) bool {
	for _, m := range matchers {
		if !m.IsComplete() {
			return false
		}
	}
	return true
}

func allAccept(matchers []*Matcher, symbol string) bool {
	for _, m := range matchers {
		valid := m.ValidNextSymbols()
		if _, ok := valid[symbol]; ok {
			continue
		}
		if _, ok := valid[Wildcard]; ok {
			continue
		}
		return false
	}
	return true
}

// fillerCandidates computes the wildcard-aware intersection of every
// matcher's acceptable next symbols, excluding the end-of-sequence
// assertion. A pattern which permits the wildcard is compatible with any
// candidate proposed by the others.
func fillerCandidates(matchers []*Matcher) map[string]struct{} {
	candidates := map[string]struct{}{Wildcard: {}}
	for _, m := range matchers {
		symbols := m.ValidNextSymbols()
		delete(symbols, EndOfSequence)

		_, symbolsWild := symbols[Wildcard]
		_, candidatesWild := candidates[Wildcard]
		switch {
		case symbolsWild && candidatesWild:
			for s := range symbols {
				candidates[s] = struct{}{}
			}
		case candidatesWild:
			candidates = symbols
		case symbolsWild:
			// This matcher accepts anything the others propose
		default:
			for s := range candidates {
				if _, ok := symbols[s]; !ok {
					delete(candidates, s)
				}
			}
		}
	}
	return candidates
}

// orderCandidates sorts filler candidates by the supplied priority list,
// with unlisted symbols last in alphabetical order. When a wildcard
// candidate exists and a priority list is given, the wildcard is replaced by
// the concrete priority symbols.
func orderCandidates(candidates map[string]struct{}, priority []string) []string {
	if _, ok := candidates[Wildcard]; ok && len(priority) > 0 {
		delete(candidates, Wildcard)
		for _, s := range priority {
			candidates[s] = struct{}{}
		}
	}

	rank := func(symbol string) int {
		for i, s := range priority {
			if s == symbol {
				return i
			}
		}
		return len(priority)
	}

	out := make([]string, 0, len(candidates))
	for s := range candidates {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}
