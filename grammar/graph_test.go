package grammar

import (
	"testing"

	"github.com/npillmayer/bnfgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trapNames(traps [][]*Rule) [][]string {
	var names [][]string
	for _, scc := range traps {
		var n []string
		for _, r := range scc {
			n = append(n, r.LHS.Key())
		}
		names = append(names, n)
	}
	return names
}

func TestGraphSelfLoopTrap(t *testing.T) {
	raw := &RawGrammar{}
	raw.AddRule(Untyped("A"), alt(lit("x"), ref("A")))
	gg := NewGrammarGraph(raw)
	traps := gg.TrapComponents()
	require.Len(t, traps, 1)
	assert.Equal(t, [][]string{{"A"}}, trapNames(traps))
}

func TestGraphTwoRuleTrap(t *testing.T) {
	raw := &RawGrammar{}
	raw.AddRule(Untyped("A"), alt(lit("a"), ref("B")))
	raw.AddRule(Untyped("B"), alt(ref("A")))
	gg := NewGrammarGraph(raw)
	traps := gg.TrapComponents()
	require.Len(t, traps, 1, "A and B form one component with no exit")
	assert.Equal(t, [][]string{{"A", "B"}}, trapNames(traps))
}

func TestGraphTriLoopTrap(t *testing.T) {
	raw := &RawGrammar{}
	raw.AddRule(Untyped("A"), alt(ref("B")))
	raw.AddRule(Untyped("B"), alt(ref("C")))
	raw.AddRule(Untyped("C"), alt(ref("A")))
	gg := NewGrammarGraph(raw)
	traps := gg.TrapComponents()
	require.Len(t, traps, 1)
	assert.Equal(t, [][]string{{"A", "B", "C"}}, trapNames(traps))
}

func TestGraphRingIsOneComponent(t *testing.T) {
	// members of a cycle must land in a single component, never in
	// per-rule singletons
	raw := &RawGrammar{}
	raw.AddRule(Untyped("A"), alt(ref("B")))
	raw.AddRule(Untyped("B"), alt(ref("C")))
	raw.AddRule(Untyped("C"), alt(ref("D")))
	raw.AddRule(Untyped("D"), alt(lit("back"), ref("A")))
	gg := NewGrammarGraph(raw)
	traps := gg.TrapComponents()
	require.Len(t, traps, 1)
	assert.Equal(t, [][]string{{"A", "B", "C", "D"}}, trapNames(traps))
}

func TestGraphExitAlternativeLiftsTrap(t *testing.T) {
	// one terminal-only alternative anywhere in the component provides an
	// exit for the whole component
	raw := &RawGrammar{}
	raw.AddRule(Untyped("A"), alt(lit("a"), ref("B")))
	raw.AddRule(Untyped("B"), alt(ref("A")), alt(lit("done")))
	gg := NewGrammarGraph(raw)
	assert.Empty(t, gg.TrapComponents())
}

func TestGraphEscapeThroughOutsideRule(t *testing.T) {
	// an alternative referencing a rule outside the component is an exit
	raw := &RawGrammar{}
	raw.AddRule(Untyped("A"), alt(ref("B")))
	raw.AddRule(Untyped("B"), alt(ref("A")), alt(ref("T")))
	raw.AddRule(Untyped("T"), alt(lit("t")))
	gg := NewGrammarGraph(raw)
	assert.Empty(t, gg.TrapComponents())
}

func TestGraphBoundedCycleIsNoTrap(t *testing.T) {
	// every cyclic alternative carries an invoke limit, so the recursion
	// ends by exhaustion
	raw := &RawGrammar{}
	raw.AddRule(Untyped("A"),
		NewAlternative(1, Limited(0, 3), []Symbol{ref("A")}, bnfgen.Span{}))
	gg := NewGrammarGraph(raw)
	assert.Empty(t, gg.TrapComponents())
}

func TestGraphMixedAlternativeIsConfined(t *testing.T) {
	// "a" <A> still recurses after emitting its terminal, so the loop has
	// no exit
	raw := &RawGrammar{}
	raw.AddRule(Untyped("A"), alt(lit("a"), ref("A")))
	gg := NewGrammarGraph(raw)
	assert.Len(t, gg.TrapComponents(), 1)
}

func TestGraphUntypedReferenceFansOut(t *testing.T) {
	// the untyped reference <E> may resolve to the terminal-producing
	// <E: "str">, which is an exit
	raw := &RawGrammar{}
	raw.AddRule(Typed("E", "int"), alt(lit("1"), ref("E")))
	raw.AddRule(Typed("E", "str"), alt(lit("s")))
	gg := NewGrammarGraph(raw)
	assert.Empty(t, gg.TrapComponents())
}

func TestGraphSeparateTraps(t *testing.T) {
	raw := &RawGrammar{}
	raw.AddRule(Untyped("A"), alt(ref("A")))
	raw.AddRule(Untyped("B"), alt(ref("B")))
	gg := NewGrammarGraph(raw)
	traps := gg.TrapComponents()
	require.Len(t, traps, 2)
	assert.ElementsMatch(t, [][]string{{"A"}, {"B"}}, trapNames(traps))
}

func TestGraphUnreachable(t *testing.T) {
	raw := &RawGrammar{}
	raw.AddRule(Untyped("S"), alt(ref("A")))
	raw.AddRule(Untyped("A"), alt(lit("a")))
	raw.AddRule(Untyped("B"), alt(ref("C")))
	raw.AddRule(Untyped("C"), alt(lit("c")))
	gg := NewGrammarGraph(raw)
	unreachable, ok := gg.Unreachable(Untyped("S"))
	require.True(t, ok)
	var names []string
	for _, r := range unreachable {
		names = append(names, r.LHS.Name)
	}
	assert.Equal(t, []string{"B", "C"}, names)
}

func TestGraphUnreachableUnknownStart(t *testing.T) {
	raw := &RawGrammar{}
	raw.AddRule(Untyped("S"), alt(lit("a")))
	_, ok := NewGrammarGraph(raw).Unreachable(Untyped("Nope"))
	assert.False(t, ok)
}

func TestGraphUntypedStartFansOut(t *testing.T) {
	raw := &RawGrammar{}
	raw.AddRule(Typed("S", "a"), alt(ref("X")))
	raw.AddRule(Typed("S", "b"), alt(ref("Y")))
	raw.AddRule(Untyped("X"), alt(lit("x")))
	raw.AddRule(Untyped("Y"), alt(lit("y")))
	gg := NewGrammarGraph(raw)
	unreachable, ok := gg.Unreachable(Untyped("S"))
	require.True(t, ok)
	assert.Empty(t, unreachable)
}
