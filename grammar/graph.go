package grammar

import (
	"sort"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
)

// GrammarGraph is the directed graph over rule identities: an edge A→B
// exists whenever an alternative of A references B. Untyped references fan
// out to every same-named rule. The graph backs the two advisory analyses,
// trap-loop detection (Tarjan SCC) and reachability (DFS).
type GrammarGraph struct {
	raw   *RawGrammar
	g     *core.Graph
	rules map[string]*Rule // identity key → rule
}

// NewGrammarGraph builds the rule graph. References to undefined rules
// contribute no edges; the validator reports them separately.
func NewGrammarGraph(raw *RawGrammar) *GrammarGraph {
	gg := &GrammarGraph{
		raw:   raw,
		g:     core.NewGraph(core.WithDirected(true), core.WithLoops()),
		rules: make(map[string]*Rule),
	}
	for _, r := range raw.Rules {
		key := r.LHS.Key()
		if _, dup := gg.rules[key]; dup {
			continue // duplicate definitions are a validator finding
		}
		gg.rules[key] = r
		if err := gg.g.AddVertex(key); err != nil {
			tracer().Errorf("grammar graph: add vertex %q: %v", key, err)
		}
	}
	for _, r := range raw.Rules {
		from := r.LHS.Key()
		for _, a := range r.Production.Alts {
			for _, s := range a.Symbols {
				if s.Kind != NonTermSym {
					continue
				}
				for _, to := range gg.targets(s.NT) {
					if gg.g.HasEdge(from, to) {
						continue
					}
					if _, err := gg.g.AddEdge(from, to, 0); err != nil {
						tracer().Errorf("grammar graph: edge %s→%s: %v", from, to, err)
					}
				}
			}
		}
	}
	return gg
}

// targets resolves a reference to the identity keys of its defined
// candidate rules.
func (gg *GrammarGraph) targets(nt NonTerminal) []string {
	if nt.IsTyped() {
		if _, ok := gg.rules[nt.Key()]; ok {
			return []string{nt.Key()}
		}
		return nil
	}
	var keys []string
	for _, r := range gg.raw.rulesNamed(nt.Name) {
		keys = append(keys, r.LHS.Key())
	}
	return keys
}

// Unreachable returns the rules not reachable from the start identity, in
// definition order. An untyped start fans out to every same-named rule.
// Returns ok=false when the start identity resolves to no rule.
func (gg *GrammarGraph) Unreachable(start NonTerminal) (unreachable []*Rule, ok bool) {
	seeds := gg.targets(start)
	if len(seeds) == 0 {
		return nil, false
	}
	visited := make(map[string]bool)
	for _, seed := range seeds {
		res, err := dfs.DFS(gg.g, seed)
		if err != nil {
			tracer().Errorf("grammar graph: DFS from %q: %v", seed, err)
			return nil, false
		}
		for v := range res.Visited {
			visited[v] = true
		}
	}
	for _, r := range gg.raw.Rules {
		if !visited[r.LHS.Key()] {
			unreachable = append(unreachable, r)
		}
	}
	return unreachable, true
}

// TrapComponents returns the strongly connected components that generation
// cannot escape: every alternative of every member rule references back
// into the component (no alternative exits to terminals, regexes or outside
// rules), and at least one of those cyclic alternatives carries no invoke
// limit that would bound the recursion. Members are returned in definition
// order. A bounded cycle is not reported: it terminates, if only by
// exhaustion.
func (gg *GrammarGraph) TrapComponents() [][]*Rule {
	var traps [][]*Rule
	for _, scc := range gg.components() {
		if len(scc) == 1 && !gg.g.HasEdge(scc[0], scc[0]) {
			continue // trivial component, no cycle
		}
		members := make(map[string]bool, len(scc))
		for _, key := range scc {
			members[key] = true
		}
		if !gg.isTrap(members) {
			continue
		}
		var rules []*Rule
		for _, r := range gg.raw.Rules {
			if members[r.LHS.Key()] {
				rules = append(rules, r)
			}
		}
		traps = append(traps, rules)
	}
	return traps
}

// isTrap decides whether the component formed by members has no exit. An
// alternative exits the component when none of its references is confined
// to it. A reference is confined iff every candidate rule it can resolve
// to lies inside the component.
func (gg *GrammarGraph) isTrap(members map[string]bool) bool {
	unbounded := false
	for key := range members {
		rule := gg.rules[key]
		if rule.Production.producesTerminals() {
			return false // an all-terminal alternative always exits
		}
		for _, a := range rule.Production.Alts {
			confined := false
			for _, s := range a.Symbols {
				if s.Kind == NonTermSym && gg.confined(s.NT, members) {
					confined = true
					break
				}
			}
			if !confined {
				return false // this alternative can leave the component
			}
			if !a.Limit.Bounded {
				unbounded = true
			}
		}
	}
	return unbounded
}

func (gg *GrammarGraph) confined(nt NonTerminal, members map[string]bool) bool {
	targets := gg.targets(nt)
	if len(targets) == 0 {
		return false // undefined reference, reported elsewhere
	}
	for _, key := range targets {
		if !members[key] {
			return false
		}
	}
	return true
}

// components computes the strongly connected components of the rule graph
// with Tarjan's algorithm, O(V+E). Vertices are visited in definition
// order and neighbors in sorted order, so the result is deterministic.
func (gg *GrammarGraph) components() [][]string {
	adj := make(map[string][]string, len(gg.rules))
	for key := range gg.rules {
		neighbors, err := gg.g.NeighborIDs(key)
		if err != nil {
			tracer().Errorf("grammar graph: neighbors of %q: %v", key, err)
			continue
		}
		sort.Strings(neighbors)
		adj[key] = neighbors
	}
	t := &tarjanWalker{
		adj:     adj,
		index:   make(map[string]int),
		lowlink: make(map[string]int),
		onstack: make(map[string]bool),
	}
	for _, r := range gg.raw.Rules {
		key := r.LHS.Key()
		if _, seen := t.index[key]; !seen && gg.rules[key] == r {
			t.strongconnect(key)
		}
	}
	return t.sccs
}

type tarjanWalker struct {
	adj     map[string][]string
	index   map[string]int
	lowlink map[string]int
	onstack map[string]bool
	stack   []string
	counter int
	sccs    [][]string
}

func (t *tarjanWalker) strongconnect(v string) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onstack[v] = true
	for _, w := range t.adj[v] {
		if _, seen := t.index[w]; !seen {
			t.strongconnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onstack[w] && t.index[w] < t.lowlink[v] {
			t.lowlink[v] = t.index[w]
		}
	}
	if t.lowlink[v] != t.index[v] {
		return
	}
	var scc []string
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onstack[w] = false
		scc = append(scc, w)
		if w == v {
			break
		}
	}
	t.sccs = append(t.sccs, scc)
}
