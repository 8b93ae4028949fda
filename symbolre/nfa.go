package symbolre

const (
	// Wildcard matches any single symbol.
	Wildcard = "."

	// EndOfSequence is the zero-width end-of-sequence assertion. It is
	// never consumed as a symbol.
	EndOfSequence = ""
)

// nfaNode is a state in a Non-deterministic Finite-state Automaton.
//
// Labelled transitions live in edges; empty (epsilon) transitions are stored
// separately and are always symmetric: if a has an epsilon edge to b then b
// has one back to a. This lets the set of epsilon-equivalent nodes be found
// by undirected traversal.
type nfaNode struct {
	edges map[string]map[*nfaNode]struct{}
	eps   map[*nfaNode]struct{}
}

func newNFANode() *nfaNode {
	return &nfaNode{
		edges: make(map[string]map[*nfaNode]struct{}),
		eps:   make(map[*nfaNode]struct{}),
	}
}

func (n *nfaNode) addEdge(dest *nfaNode, symbol string) {
	set, ok := n.edges[symbol]
	if !ok {
		set = make(map[*nfaNode]struct{})
		n.edges[symbol] = set
	}
	set[dest] = struct{}{}
}

func (n *nfaNode) addEpsilon(dest *nfaNode) {
	n.eps[dest] = struct{}{}
	dest.eps[n] = struct{}{}
}

// equivalentNodes returns the set of nodes connected to this one by only
// epsilon transitions, including this node.
func (n *nfaNode) equivalentNodes() map[*nfaNode]struct{} {
	visited := map[*nfaNode]struct{}{n: {}}
	toVisit := []*nfaNode{n}
	for len(toVisit) > 0 {
		node := toVisit[len(toVisit)-1]
		toVisit = toVisit[:len(toVisit)-1]
		for other := range node.eps {
			if _, seen := visited[other]; !seen {
				visited[other] = struct{}{}
				toVisit = append(toVisit, other)
			}
		}
	}
	return visited
}

// follow returns the nodes reachable from this node's epsilon closure along
// edges labelled with the given symbol.
func (n *nfaNode) follow(symbol string) map[*nfaNode]struct{} {
	out := make(map[*nfaNode]struct{})
	for node := range n.equivalentNodes() {
		for neighbour := range node.edges[symbol] {
			out[neighbour] = struct{}{}
		}
	}
	return out
}

// nfa is an automaton with distinguished start and final states. It is
// structurally immutable once built and may be shared between matchers.
type nfa struct {
	start *nfaNode
	final *nfaNode
}

// nfaFromAST converts an AST into an NFA using Thompson's construction. A
// nil (empty) AST yields a single node which is both start and final.
func nfaFromAST(ast astNode) *nfa {
	switch node := ast.(type) {
	case nil:
		n := newNFANode()
		return &nfa{n, n}
	case *symbolNode:
		out := &nfa{newNFANode(), newNFANode()}
		out.start.addEdge(out.final, node.symbol)
		return out
	case *concatNode:
		a := nfaFromAST(node.a)
		b := nfaFromAST(node.b)
		a.final.addEpsilon(b.start)
		return &nfa{a.start, b.final}
	case *unionNode:
		out := &nfa{newNFANode(), newNFANode()}
		a := nfaFromAST(node.a)
		b := nfaFromAST(node.b)
		out.start.addEpsilon(a.start)
		out.start.addEpsilon(b.start)
		a.final.addEpsilon(out.final)
		b.final.addEpsilon(out.final)
		return out
	case *starNode:
		out := &nfa{newNFANode(), newNFANode()}
		sub := nfaFromAST(node.expr)
		out.start.addEpsilon(out.final)
		out.start.addEpsilon(sub.start)
		sub.final.addEpsilon(sub.start)
		sub.final.addEpsilon(out.final)
		return out
	default:
		panic("unreachable AST node type")
	}
}
