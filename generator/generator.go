package generator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/bnfgen"
	"github.com/npillmayer/bnfgen/grammar"
	"golang.org/x/exp/rand"
)

// ErrMaxSteps is returned when a run exceeds its expansion-step ceiling
// before deriving a complete string. Callers typically retry with a fresh
// run; see the gen command's -attempts flag.
var ErrMaxSteps = errors.New("generation exceeded the step ceiling")

// Option configures a generator.
type Option func(*config)

type config struct {
	seed     uint64
	seeded   bool
	sep      string
	maxSteps int
}

// WithSeed makes generation reproducible: equal seeds on equal grammars
// derive equal output sequences. Without it the generator seeds itself from
// the wall clock.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithSeparator sets the string joining emitted terminals. Default is a
// single blank.
func WithSeparator(sep string) Option {
	return func(c *config) {
		c.sep = sep
	}
}

// WithMaxSteps bounds the number of expansion steps per run. A run
// exceeding the bound fails with ErrMaxSteps. Zero (the default) means
// unbounded.
func WithMaxSteps(n int) Option {
	return func(c *config) {
		c.maxSteps = n
	}
}

func configure(opts []Option) config {
	c := config{sep: " "}
	for _, opt := range opts {
		opt(&c)
	}
	if !c.seeded {
		c.seed = uint64(time.Now().UnixNano())
	}
	return c
}

// Phase is the state of a generator's most recent run.
type Phase int8

const (
	Idle      Phase = iota // no run started yet
	Expanding              // a run is in progress
	Done                   // the last run derived a complete string
	Failed                 // the last run returned an error
)

func (p Phase) String() string {
	switch p {
	case Expanding:
		return "expanding"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return "idle"
}

// Generator derives flat random strings from a checked grammar. It keeps a
// single random number source across runs, so successive calls produce
// different (but, under WithSeed, reproducible) output. Not safe for
// concurrent use; run one generator per goroutine.
type Generator struct {
	cg       *grammar.CheckedGrammar
	rng      *rand.Rand
	sep      string
	maxSteps int
	phase    Phase
}

// New creates a generator over a checked grammar.
func New(cg *grammar.CheckedGrammar, opts ...Option) *Generator {
	c := configure(opts)
	return &Generator{
		cg:       cg,
		rng:      rand.New(rand.NewSource(c.seed)),
		sep:      c.sep,
		maxSteps: c.maxSteps,
	}
}

// Phase returns the state of the most recent run.
func (g *Generator) Phase() Phase {
	return g.phase
}

// Generate derives one random string from the start symbol.
//
// Expansion is iterative, driven by a work stack of pending symbols. The
// symbol on top is reduced against the grammar: terminals append their text
// to the output, non-terminals push the chosen alternative's symbols, left
// one on top, so the derivation is left-most and terminals appear in sentence
// order. Every run expands with fresh invoke-limit counters.
func (g *Generator) Generate(start grammar.NonTerminal) (string, error) {
	g.phase = Expanding
	st := grammar.NewState(g.rng)
	stack := arraystack.New()
	stack.Push(grammar.Reference(start, bnfgen.Span{}))

	var atoms []string
	steps := 0
	for !stack.Empty() {
		if g.maxSteps > 0 && steps >= g.maxSteps {
			g.phase = Failed
			return "", fmt.Errorf("deriving %s: %w after %d steps", start, ErrMaxSteps, steps)
		}
		steps++
		top, _ := stack.Pop()
		red, err := g.cg.Reduce(top.(grammar.Symbol), st)
		if err != nil {
			g.phase = Failed
			return "", err
		}
		if red.Terminal {
			atoms = append(atoms, red.Literal)
			continue
		}
		for i := len(red.Syms) - 1; i >= 0; i-- {
			stack.Push(red.Syms[i])
		}
	}
	tracer().Debugf("derived %d atoms from %s in %d steps", len(atoms), start, steps)
	g.phase = Done
	return strings.Join(atoms, g.sep), nil
}

// GenerateFlat is a one-shot convenience around New + Generate.
func GenerateFlat(cg *grammar.CheckedGrammar, start grammar.NonTerminal, opts ...Option) (string, error) {
	return New(cg, opts...).Generate(start)
}
