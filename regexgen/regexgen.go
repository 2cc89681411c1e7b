package regexgen

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"strings"

	"golang.org/x/exp/rand"
)

// maxUnboundedRepeat caps the repetition count for `+`, `*` and open-ended
// counted repeats: a sub-expression with minimum count m is repeated between
// m and m+maxUnboundedRepeat times.
const maxUnboundedRepeat = 10

// maxAvoidRetries bounds how often generation is restarted when the drawn
// string collides with a member of the avoid-set.
const maxAvoidRetries = 100

// ErrAvoidRetries is returned by Pattern.Generate when every drawn string
// collided with the avoid-set.
var ErrAvoidRetries = errors.New("regexgen: avoid-set retry limit exceeded")

// Pattern is a compiled regular expression, ready for generation.
// A Pattern is immutable and may be shared between concurrent generation
// runs, each run supplying its own RNG.
type Pattern struct {
	src string
	re  *syntax.Regexp
}

// Compile parses a regular expression in Perl syntax. Compilation failures
// surface here, at grammar-build time, never during generation.
func Compile(pattern string) (*Pattern, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("regexgen: cannot compile %q: %w", pattern, err)
	}
	return &Pattern{src: pattern, re: re}, nil
}

// MustCompile is like Compile, but panics on compilation failure.
// Intended for patterns known to be valid, e.g. in tests.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.src
}

// Generate draws a random member of the pattern's language. The result is
// guaranteed not to equal any member of avoid; when every draw collides,
// Generate gives up after a bounded number of retries and returns an error
// wrapping ErrAvoidRetries.
func (p *Pattern) Generate(rng *rand.Rand, avoid []string) (string, error) {
	for i := 0; i < maxAvoidRetries; i++ {
		var b strings.Builder
		emit(&b, p.re, rng)
		s := b.String()
		if !contains(avoid, s) {
			return s, nil
		}
		tracer().Debugf("pattern %q drew reserved literal %q, retrying", p.src, s)
	}
	return "", fmt.Errorf("regexgen: pattern %q: %w", p.src, ErrAvoidRetries)
}

func contains(set []string, s string) bool {
	for _, member := range set {
		if member == s {
			return true
		}
	}
	return false
}

// emit appends one random match of re to b.
func emit(b *strings.Builder, re *syntax.Regexp, rng *rand.Rand) {
	switch re.Op {
	case syntax.OpEmptyMatch, syntax.OpNoMatch:
		// nothing
	case syntax.OpLiteral:
		for _, r := range re.Rune {
			b.WriteRune(r)
		}
	case syntax.OpCharClass:
		b.WriteRune(pickClass(re.Rune, rng))
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		// printable ASCII keeps generated samples readable
		b.WriteRune(rune(0x20 + rng.Intn(0x7f-0x20)))
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			emit(b, sub, rng)
		}
	case syntax.OpAlternate:
		emit(b, re.Sub[rng.Intn(len(re.Sub))], rng)
	case syntax.OpStar:
		repeat(b, re.Sub[0], 0, -1, rng)
	case syntax.OpPlus:
		repeat(b, re.Sub[0], 1, -1, rng)
	case syntax.OpQuest:
		repeat(b, re.Sub[0], 0, 1, rng)
	case syntax.OpRepeat:
		repeat(b, re.Sub[0], re.Min, re.Max, rng)
	case syntax.OpCapture:
		emit(b, re.Sub[0], rng)
	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		// anchors are no-ops for generation
	default:
		tracer().Errorf("unexpected regexp op %d", re.Op)
	}
}

// repeat emits sub between min and max times; max < 0 means unbounded and is
// capped at min+maxUnboundedRepeat.
func repeat(b *strings.Builder, sub *syntax.Regexp, min, max int, rng *rand.Rand) {
	if max < 0 {
		max = min + maxUnboundedRepeat
	}
	n := min
	if max > min {
		n += rng.Intn(max - min + 1)
	}
	for i := 0; i < n; i++ {
		emit(b, sub, rng)
	}
}

// pickClass draws one member of a character class uniformly. runes holds
// inclusive range pairs, as produced by regexp/syntax.
func pickClass(runes []rune, rng *rand.Rand) rune {
	total := 0
	for i := 0; i < len(runes); i += 2 {
		total += int(runes[i+1]-runes[i]) + 1
	}
	if total <= 0 {
		return '?'
	}
	n := rng.Intn(total)
	for i := 0; i < len(runes); i += 2 {
		size := int(runes[i+1]-runes[i]) + 1
		if n < size {
			return runes[i] + rune(n)
		}
		n -= size
	}
	return runes[len(runes)-2] // unreachable
}
