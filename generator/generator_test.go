package generator

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/bnfgen"
	"github.com/npillmayer/bnfgen/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func lit(s string) grammar.Symbol {
	return grammar.Terminal(s, bnfgen.Span{})
}

func ref(name string) grammar.Symbol {
	return grammar.Reference(grammar.Untyped(name), bnfgen.Span{})
}

func alt(syms ...grammar.Symbol) *grammar.Alternative {
	return grammar.NewAlternative(1, grammar.Unlimited(), syms, bnfgen.Span{})
}

func sentences(t *testing.T) *grammar.CheckedGrammar {
	t.Helper()
	raw := &grammar.RawGrammar{}
	raw.AddRule(grammar.Untyped("S"), alt(ref("NP"), ref("VP")))
	raw.AddRule(grammar.Untyped("NP"), alt(lit("the"), ref("N")))
	raw.AddRule(grammar.Untyped("N"), alt(lit("dog")), alt(lit("cat")))
	raw.AddRule(grammar.Untyped("VP"), alt(lit("sleeps")), alt(lit("barks")))
	cg, diags := grammar.Validate(raw)
	if cg == nil {
		t.Fatalf("grammar does not validate: %v", diags)
	}
	return cg
}

func TestGenerateFlat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bnfgen.generator")
	defer teardown()
	cg := sentences(t)
	g := New(cg, WithSeed(42))
	out, err := g.Generate(grammar.Untyped("S"))
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("derived %q", out)
	words := strings.Split(out, " ")
	if len(words) != 3 || words[0] != "the" {
		t.Errorf("expected 'the <noun> <verb>', got %q", out)
	}
	if g.Phase() != Done {
		t.Errorf("expected phase done, got %s", g.Phase())
	}
}

func TestGenerateDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bnfgen.generator")
	defer teardown()
	cg := sentences(t)
	g1 := New(cg, WithSeed(7))
	g2 := New(cg, WithSeed(7))
	for i := 0; i < 20; i++ {
		s1, err1 := g1.Generate(grammar.Untyped("S"))
		s2, err2 := g2.Generate(grammar.Untyped("S"))
		if err1 != nil || err2 != nil {
			t.Fatal(err1, err2)
		}
		if s1 != s2 {
			t.Fatalf("run %d: equal seeds diverged: %q vs %q", i, s1, s2)
		}
	}
}

func TestGenerateSeparator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bnfgen.generator")
	defer teardown()
	cg := sentences(t)
	g := New(cg, WithSeed(1), WithSeparator(""))
	out, err := g.Generate(grammar.Untyped("S"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, " ") {
		t.Errorf("empty separator, but output contains blanks: %q", out)
	}
}

func TestGenerateLeftmostOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bnfgen.generator")
	defer teardown()
	raw := &grammar.RawGrammar{}
	raw.AddRule(grammar.Untyped("S"), alt(lit("a"), ref("M"), lit("c")))
	raw.AddRule(grammar.Untyped("M"), alt(lit("b")))
	cg, _ := grammar.Validate(raw)
	g := New(cg, WithSeed(1))
	out, err := g.Generate(grammar.Untyped("S"))
	if err != nil {
		t.Fatal(err)
	}
	if out != "a b c" {
		t.Errorf("terminals out of sentence order: %q", out)
	}
}

func TestGenerateMaxSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bnfgen.generator")
	defer teardown()
	raw := &grammar.RawGrammar{}
	raw.AddRule(grammar.Untyped("S"), alt(lit("x"), ref("S")))
	cg, _ := grammar.Validate(raw) // trap loop, advisory only
	g := New(cg, WithSeed(1), WithMaxSteps(50))
	_, err := g.Generate(grammar.Untyped("S"))
	if !errors.Is(err, ErrMaxSteps) {
		t.Fatalf("expected ErrMaxSteps, got %v", err)
	}
	if g.Phase() != Failed {
		t.Errorf("expected phase failed, got %s", g.Phase())
	}
}

func TestGenerateExhaustion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bnfgen.generator")
	defer teardown()
	raw := &grammar.RawGrammar{}
	raw.AddRule(grammar.Untyped("S"), alt(ref("A"), ref("A"), ref("A")))
	raw.AddRule(grammar.Untyped("A"),
		grammar.NewAlternative(1, grammar.Limited(0, 2), []grammar.Symbol{lit("a")}, bnfgen.Span{}))
	cg, _ := grammar.Validate(raw)
	g := New(cg, WithSeed(1))
	_, err := g.Generate(grammar.Untyped("S"))
	var exh *grammar.ExhaustedError
	if !errors.As(err, &exh) {
		t.Fatalf("expected an exhausted production, got %v", err)
	}
	// the failed run must not poison the next one
	raw2 := &grammar.RawGrammar{}
	raw2.AddRule(grammar.Untyped("S"), alt(ref("A")))
	raw2.AddRule(grammar.Untyped("A"),
		grammar.NewAlternative(1, grammar.Limited(0, 1), []grammar.Symbol{lit("a")}, bnfgen.Span{}))
	cg2, _ := grammar.Validate(raw2)
	g2 := New(cg2, WithSeed(1))
	for i := 0; i < 5; i++ {
		if out, err := g2.Generate(grammar.Untyped("S")); err != nil || out != "a" {
			t.Fatalf("run %d: counters leaked across runs: %q, %v", i, out, err)
		}
	}
}

func TestGenerateInvokeLimitsPerRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bnfgen.generator")
	defer teardown()
	raw := &grammar.RawGrammar{}
	raw.AddRule(grammar.Untyped("S"), alt(ref("A"), ref("A"), ref("A")))
	raw.AddRule(grammar.Untyped("A"),
		grammar.NewAlternative(100, grammar.Limited(0, 1), []grammar.Symbol{lit("rare")}, bnfgen.Span{}),
		alt(lit("common")))
	cg, _ := grammar.Validate(raw)
	g := New(cg, WithSeed(9))
	seen := 0
	for i := 0; i < 20; i++ {
		out, err := g.Generate(grammar.Untyped("S"))
		if err != nil {
			t.Fatal(err)
		}
		if n := strings.Count(out, "rare"); n > 1 {
			t.Fatalf("run %d: limited alternative selected %d times: %q", i, n, out)
		} else {
			seen += n
		}
	}
	if seen == 0 {
		t.Error("heavily weighted alternative never selected across 20 runs")
	}
}

func TestConcurrentGenerators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bnfgen.generator")
	defer teardown()
	cg := sentences(t)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			g := New(cg, WithSeed(seed))
			for i := 0; i < 50; i++ {
				if _, err := g.Generate(grammar.Untyped("S")); err != nil {
					t.Errorf("seed %d: %v", seed, err)
					return
				}
			}
		}(uint64(w))
	}
	wg.Wait()
}

func TestTreeGenerate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bnfgen.generator")
	defer teardown()
	raw := &grammar.RawGrammar{}
	raw.AddRule(grammar.Untyped("S"), alt(lit("a"), ref("M"), lit("c")))
	raw.AddRule(grammar.Untyped("M"), alt(lit("b")))
	cg, _ := grammar.Validate(raw)
	tree, err := NewTree(cg, WithSeed(1)).Generate(grammar.Untyped("S"))
	if err != nil {
		t.Fatal(err)
	}
	if tree.Name != "S" || len(tree.Children) != 3 {
		t.Fatalf("unexpected tree shape: %s", tree)
	}
	if tree.Children[1].Name != "M" {
		t.Errorf("middle child should be an M branch: %s", tree)
	}
	if got := tree.Flatten(" "); got != "a b c" {
		t.Errorf("flattened tree diverges from flat derivation: %q", got)
	}
	if got := tree.String(); got != `(S "a" (M "b") "c")` {
		t.Errorf("unexpected rendering: %s", got)
	}
}

func TestTreeMatchesFlatChoices(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bnfgen.generator")
	defer teardown()
	cg := sentences(t)
	for seed := uint64(0); seed < 10; seed++ {
		flat, err := New(cg, WithSeed(seed)).Generate(grammar.Untyped("S"))
		if err != nil {
			t.Fatal(err)
		}
		tree, err := NewTree(cg, WithSeed(seed)).Generate(grammar.Untyped("S"))
		if err != nil {
			t.Fatal(err)
		}
		if tree.Flatten(" ") != flat {
			t.Fatalf("seed %d: tree and flat generators diverged: %q vs %q",
				seed, tree.Flatten(" "), flat)
		}
	}
}

func TestTreeMaxSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bnfgen.generator")
	defer teardown()
	raw := &grammar.RawGrammar{}
	raw.AddRule(grammar.Untyped("S"), alt(lit("x"), ref("S")))
	cg, _ := grammar.Validate(raw)
	g := NewTree(cg, WithSeed(1), WithMaxSteps(50))
	_, err := g.Generate(grammar.Untyped("S"))
	if !errors.Is(err, ErrMaxSteps) {
		t.Fatalf("expected ErrMaxSteps, got %v", err)
	}
}

func TestOneShotConveniences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bnfgen.generator")
	defer teardown()
	cg := sentences(t)
	out, err := GenerateFlat(cg, grammar.Untyped("S"), WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	if out == "" {
		t.Error("expected a non-empty derivation")
	}
	tree, err := GenerateTree(cg, grammar.Untyped("S"), WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	if tree.Flatten(" ") != out {
		t.Errorf("equal seeds should agree: %q vs %q", tree.Flatten(" "), out)
	}
}
