package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/bnfgen/bnflang"
	"github.com/npillmayer/bnfgen/generator"
	"github.com/npillmayer/bnfgen/grammar"
	"github.com/npillmayer/bnfgen/report"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tracer().SetTraceLevel(tracing.LevelInfo)
	if len(os.Args) < 2 {
		repl()
		return
	}
	switch os.Args[1] {
	case "check":
		os.Exit(check(os.Args[2:]))
	case "gen":
		os.Exit(gen(os.Args[2:]))
	case "help", "-h", "-help", "--help":
		usage()
	default:
		pterm.Error.Printf("unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println(`usage:
  bnfgen check -grammar <file> [-start <rule>] [-strict] [-trace <level>]
  bnfgen gen   -grammar <file> [-start <rule>] [-n <count>] [-seed <seed>]
               [-sep <string>] [-maxsteps <n>] [-attempts <n>] [-tree]
  bnfgen                       interactive session`)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// load parses and validates a grammar file. Findings are rendered to
// stderr and returned alongside the checked grammar, which is nil on
// blocking errors. The returned non-terminal is the start identity: the
// -start flag if given, otherwise the first rule's left-hand side.
func load(file, start, tlevel string) (*grammar.CheckedGrammar, grammar.NonTerminal, *grammar.DiagnosticSet, bool) {
	tracer().SetTraceLevel(tracing.TraceLevelFromString(tlevel))
	src, err := os.ReadFile(file)
	if err != nil {
		pterm.Error.Println(err.Error())
		return nil, grammar.NonTerminal{}, nil, false
	}
	raw, diags := bnflang.Parse(string(src))
	if diags.HasErrors() {
		report.NewReporter(report.Color).Render(os.Stderr, string(src), diags)
		return nil, grammar.NonTerminal{}, diags, false
	}
	if len(raw.Rules) == 0 {
		pterm.Error.Println("grammar file contains no rules")
		return nil, grammar.NonTerminal{}, diags, false
	}
	startNT := raw.Rules[0].LHS
	if start != "" {
		startNT = grammar.Untyped(start)
	}
	checked, diags := grammar.ValidateWithStart(raw, startNT)
	report.NewReporter(report.Color).Render(os.Stderr, string(src), diags)
	if checked == nil {
		return nil, grammar.NonTerminal{}, diags, false
	}
	return checked, startNT, diags, true
}

func check(args []string) int {
	flags := flag.NewFlagSet("check", flag.ExitOnError)
	file := flags.String("grammar", "", "grammar definition file")
	start := flags.String("start", "", "start rule (default: the first rule)")
	strict := flags.Bool("strict", false, "treat advisory warnings as failures")
	tlevel := flags.String("trace", "Error", "trace level [Debug|Info|Error]")
	flags.Parse(args)
	if *file == "" {
		pterm.Error.Println("check needs a -grammar file")
		return 2
	}
	checked, _, diags, ok := load(*file, *start, *tlevel)
	if !ok {
		return 1
	}
	if *strict && diags.WarningCount() > 0 {
		pterm.Error.Printf("%d warning(s) in strict mode\n", diags.WarningCount())
		return 1
	}
	pterm.Info.Printf("grammar OK, %d terminal literals\n", len(checked.LiteralTerminals()))
	return 0
}

func gen(args []string) int {
	flags := flag.NewFlagSet("gen", flag.ExitOnError)
	file := flags.String("grammar", "", "grammar definition file")
	start := flags.String("start", "", "start rule (default: the first rule)")
	count := flags.Int("n", 1, "number of strings to derive")
	seed := flags.Uint64("seed", 0, "random seed (0: from the clock)")
	sep := flags.String("sep", " ", "separator between emitted terminals")
	maxsteps := flags.Int("maxsteps", 0, "expansion step ceiling per derivation (0: unbounded)")
	attempts := flags.Int("attempts", 3, "retries when a derivation hits the step ceiling")
	tree := flags.Bool("tree", false, "print derivation trees instead of flat strings")
	tlevel := flags.String("trace", "Error", "trace level [Debug|Info|Error]")
	flags.Parse(args)
	if *file == "" {
		pterm.Error.Println("gen needs a -grammar file")
		return 2
	}
	checked, startNT, _, ok := load(*file, *start, *tlevel)
	if !ok {
		return 1
	}
	opts := []generator.Option{generator.WithSeparator(*sep)}
	if *seed != 0 {
		opts = append(opts, generator.WithSeed(*seed))
	}
	if *maxsteps > 0 {
		opts = append(opts, generator.WithMaxSteps(*maxsteps))
	}
	if *tree {
		return genTrees(checked, startNT, *count, *attempts, opts)
	}
	g := generator.New(checked, opts...)
	for i := 0; i < *count; i++ {
		out, err := derive(g.Generate, startNT, *attempts)
		if err != nil {
			pterm.Error.Println(err.Error())
			return 1
		}
		fmt.Println(out)
	}
	return 0
}

func genTrees(checked *grammar.CheckedGrammar, start grammar.NonTerminal,
	count, attempts int, opts []generator.Option) int {
	//
	g := generator.NewTree(checked, opts...)
	for i := 0; i < count; i++ {
		tree, err := derive(g.Generate, start, attempts)
		if err != nil {
			pterm.Error.Println(err.Error())
			return 1
		}
		fmt.Println(tree)
	}
	return 0
}

// derive runs one derivation, retrying on a step-ceiling hit. Other
// failures (an exhausted production) are permanent for the chosen seed and
// surface immediately.
func derive[T any](generate func(grammar.NonTerminal) (T, error),
	start grammar.NonTerminal, attempts int) (T, error) {
	//
	var out T
	var err error
	for i := 0; i < attempts; i++ {
		out, err = generate(start)
		if err == nil || !errors.Is(err, generator.ErrMaxSteps) {
			return out, err
		}
		tracer().Infof("derivation attempt %d: %v", i+1, err)
	}
	return out, err
}

// --- Interactive session ---------------------------------------------------

// session holds the state of an interactive run: the rule source entered so
// far, line by line.
type session struct {
	rules []string
	repl  *readline.Instance
}

func repl() {
	pterm.Info.Println("Welcome to bnfgen") // colored welcome message
	pterm.Info.Println("Enter rules, :check, :gen <rule>, :list, :clear, or :quit")
	rl, err := readline.New("bnfgen> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	s := &session{repl: rl}
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if s.execute(line) {
			break
		}
	}
	println("Good bye!")
}

// execute handles one input line, returning true on :quit.
func (s *session) execute(line string) bool {
	if !strings.HasPrefix(line, ":") {
		s.rules = append(s.rules, line)
		return false
	}
	args := strings.Fields(line)
	switch args[0] {
	case ":quit", ":q":
		return true
	case ":list":
		for _, r := range s.rules {
			fmt.Println(r)
		}
	case ":clear":
		s.rules = nil
		pterm.Info.Println("rules cleared")
	case ":check":
		s.check(args[1:])
	case ":gen":
		s.gen(args[1:])
	default:
		pterm.Error.Printf("unknown command %q\n", args[0])
	}
	return false
}

// compile parses and validates the session's rules, reporting findings to
// the terminal.
func (s *session) compile(start string) (*grammar.CheckedGrammar, grammar.NonTerminal, bool) {
	if len(s.rules) == 0 {
		pterm.Error.Println("no rules entered yet")
		return nil, grammar.NonTerminal{}, false
	}
	src := strings.Join(s.rules, "\n")
	raw, diags := bnflang.Parse(src)
	if diags.HasErrors() {
		report.NewReporter(report.Color).Render(os.Stdout, src, diags)
		return nil, grammar.NonTerminal{}, false
	}
	if len(raw.Rules) == 0 { // comment-only or blank input parses clean
		pterm.Error.Println("no rules entered yet")
		return nil, grammar.NonTerminal{}, false
	}
	startNT := raw.Rules[0].LHS
	if start != "" {
		startNT = grammar.Untyped(start)
	}
	checked, diags := grammar.ValidateWithStart(raw, startNT)
	report.NewReporter(report.Color).Render(os.Stdout, src, diags)
	if checked == nil {
		return nil, grammar.NonTerminal{}, false
	}
	return checked, startNT, true
}

func (s *session) check(args []string) {
	start := ""
	if len(args) > 0 {
		start = args[0]
	}
	if _, _, ok := s.compile(start); ok {
		pterm.Info.Println("grammar OK")
	}
}

// gen derives strings from the session's rules: ':gen', ':gen <rule>' or
// ':gen <rule> <count>'.
func (s *session) gen(args []string) {
	start := ""
	count := 1
	if len(args) > 0 {
		start = args[0]
	}
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
			count = n
		}
	}
	checked, startNT, ok := s.compile(start)
	if !ok {
		return
	}
	g := generator.New(checked, generator.WithMaxSteps(100000))
	for i := 0; i < count; i++ {
		out, err := derive(g.Generate, startNT, 3)
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		fmt.Println(out)
	}
}
