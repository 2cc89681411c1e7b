package generator

import (
	"fmt"
	"strings"

	"github.com/npillmayer/bnfgen"
	"github.com/npillmayer/bnfgen/grammar"
	"golang.org/x/exp/rand"
)

// Tree is one node of a derivation tree: either a terminal leaf carrying
// its literal text, or a branch named after the expanded non-terminal with
// one child per symbol of the chosen alternative.
type Tree struct {
	Name     string // branch: the non-terminal's name; empty for leaves
	Literal  string // leaf: the terminal text
	Children []*Tree
}

// IsLeaf reports whether the node is a terminal leaf.
func (t *Tree) IsLeaf() bool {
	return t.Name == ""
}

// Flatten joins the tree's leaves in derivation order, yielding the flat
// string the tree derives.
func (t *Tree) Flatten(sep string) string {
	var atoms []string
	t.walk(func(leaf *Tree) {
		atoms = append(atoms, leaf.Literal)
	})
	return strings.Join(atoms, sep)
}

func (t *Tree) walk(visit func(*Tree)) {
	if t.IsLeaf() {
		visit(t)
		return
	}
	for _, c := range t.Children {
		c.walk(visit)
	}
}

// String renders the tree in a compact parenthesized form, e.g.
//
//	(S (A "a") "b")
func (t *Tree) String() string {
	if t.IsLeaf() {
		return fmt.Sprintf("%q", t.Literal)
	}
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(t.Name)
	for _, c := range t.Children {
		b.WriteString(" ")
		b.WriteString(c.String())
	}
	b.WriteString(")")
	return b.String()
}

// TreeGenerator derives derivation trees instead of flat strings. It draws
// from the same selection machinery as Generator, so a TreeGenerator and a
// Generator with equal seeds make equal choices. Not safe for concurrent
// use.
type TreeGenerator struct {
	cg       *grammar.CheckedGrammar
	rng      *rand.Rand
	maxSteps int
	phase    Phase
}

// NewTree creates a tree generator over a checked grammar. The separator
// option has no effect here; Flatten takes one per call.
func NewTree(cg *grammar.CheckedGrammar, opts ...Option) *TreeGenerator {
	c := configure(opts)
	return &TreeGenerator{
		cg:       cg,
		rng:      rand.New(rand.NewSource(c.seed)),
		maxSteps: c.maxSteps,
	}
}

// Phase returns the state of the most recent run.
func (g *TreeGenerator) Phase() Phase {
	return g.phase
}

// Generate derives one random derivation tree rooted at the start symbol.
func (g *TreeGenerator) Generate(start grammar.NonTerminal) (*Tree, error) {
	g.phase = Expanding
	st := grammar.NewState(g.rng)
	steps := 0
	root, err := g.expand(grammar.Reference(start, bnfgen.Span{}), st, &steps)
	if err != nil {
		g.phase = Failed
		return nil, err
	}
	g.phase = Done
	return root, nil
}

// GenerateTree is a one-shot convenience around NewTree + Generate.
func GenerateTree(cg *grammar.CheckedGrammar, start grammar.NonTerminal, opts ...Option) (*Tree, error) {
	return NewTree(cg, opts...).Generate(start)
}

func (g *TreeGenerator) expand(sym grammar.Symbol, st *grammar.State, steps *int) (*Tree, error) {
	if g.maxSteps > 0 && *steps >= g.maxSteps {
		return nil, fmt.Errorf("%w after %d steps", ErrMaxSteps, *steps)
	}
	*steps++
	red, err := g.cg.Reduce(sym, st)
	if err != nil {
		return nil, err
	}
	if red.Terminal {
		return &Tree{Literal: red.Literal}, nil
	}
	node := &Tree{Name: red.Name, Children: make([]*Tree, 0, len(red.Syms))}
	for _, s := range red.Syms {
		child, err := g.expand(s, st, steps)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}
