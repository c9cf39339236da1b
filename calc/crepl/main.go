package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/llparse/calc"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// main() starts an interactive CLI, where users may enter calc statements.
// C.REPL will evaluate each statement and print out the result.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	dfa := flag.Bool("dfa", false, "Use lexmachine DFA lexer")
	initf := flag.String("init", "", "Initial load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to C.REPL")    // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up the interpreter
	var opts []calc.Option
	if *dfa {
		opts = append(opts, calc.WithDFALexer())
	}
	opts = append(opts, calc.SourceName("crepl"))
	ip, err := calc.NewInterpreter(opts...)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	tracer().SetTraceLevel(traceLevel(*tlevel)) // now set the user supplied level
	if g, err := calc.Grammar(); err == nil {
		g.Dump() // only visible in debug mode
	}
	//
	// set up REPL
	repl, err := readline.New("crepl> ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	defer repl.Close()
	intp := &Intp{
		calc: ip,
		repl: repl,
	}
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input != "" {
		intp.Eval(input)
	}
	//
	// load an init file and start receiving commands / statements
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)           // init file name provided by flag
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	calc *calc.Interpreter
	repl *readline.Instance
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, _, err := intp.calc.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or evaluates a calc statement, given on a line by
// itself. Returns true if the user wants to quit.
func (intp *Intp) Eval(line string) bool {
	if !strings.HasPrefix(line, ":") {
		value, ok, err := intp.calc.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
		} else if ok {
			pterm.Info.Println(fmt.Sprintf("%g", value))
		}
		return false
	}
	cmd, arg := line, ""
	if i := strings.IndexAny(line, " \t"); i > 0 {
		cmd, arg = line[:i], strings.TrimSpace(line[i:])
	}
	switch cmd {
	case ":quit", ":q":
		return true
	case ":tokens":
		intp.showTokens(arg)
	case ":tree":
		intp.showTree(arg)
	case ":vars":
		intp.showVars()
	case ":rules":
		intp.showRules()
	default:
		pterm.Error.Println("unknown command " + cmd)
	}
	return false
}

func (intp *Intp) showTokens(input string) {
	tokens, err := intp.calc.Tokens(input)
	if err != nil {
		pterm.Error.Println(err.Error())
	}
	data := pterm.TableData{{"Flavor", "Value", "Line", "Column"}}
	for _, tok := range tokens {
		data = append(data, []string{string(tok.Flavor), fmt.Sprintf("%q", tok.Value),
			fmt.Sprint(tok.Line), fmt.Sprint(tok.Column)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) showTree(input string) {
	node, err := intp.calc.Parse(input)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if node == nil {
		pterm.Info.Println("empty statement")
		return
	}
	ll := leveledNode(node, pterm.LeveledList{}, 0)
	tracer().Debugf("|ll| = %d, ll = %v", len(ll), ll)
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledNode(node calc.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  node.Label(),
	})
	for _, ch := range node.Children() {
		ll = leveledNode(ch, ll, level+1)
	}
	return ll
}

func (intp *Intp) showVars() {
	vars := intp.calc.Vars()
	if len(vars) == 0 {
		pterm.Info.Println("no variables defined")
		return
	}
	data := pterm.TableData{{"Variable", "Value"}}
	for _, v := range vars {
		data = append(data, []string{v.Name, fmt.Sprintf("%g", v.Value)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) showRules() {
	g, err := calc.Grammar()
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	data := pterm.TableData{{"#", "Label", "Rule"}}
	for _, r := range g.Rules() {
		data = append(data, []string{fmt.Sprint(r.Serial), r.Label, r.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
