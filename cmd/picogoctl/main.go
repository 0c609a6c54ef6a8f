/*
Command picogoctl is an interactive shell over the interpreter's
bootstrap/teardown lifecycle and its string engine -- a sandbox for
exercising runtime.Open/Close and strval.String without an evaluator,
since the core this module implements stops at "builds and tears down
an Interpreter State" (spec §1 Out of scope: the evaluator itself).

Grounded on terex/terexlang/trepl/repl.go's main() shape: flag parsing,
gologadapter trace setup, pterm welcome/status messages, a
chzyer/readline REPL loop.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/picogo/alloc"
	"github.com/npillmayer/picogo/runtime"
	"github.com/npillmayer/picogo/strval"
)

func tracer() tracing.Trace {
	return gtrace.SyntaxTracer
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("picogoctl -- picogo interpreter-state sandbox")

	counting := alloc.NewCountingAllocator(alloc.StdAllocator())
	state, err := runtime.Open(os.Args, os.Environ(), counting)
	if err != nil {
		pterm.Error.Println("bootstrap failed: " + err.Error())
		os.Exit(1)
	}
	pterm.Info.Printfln("bootstrap complete: %d symbols interned, %d features detected",
		state.Symbols.Size(), len(state.Roots.Features()))

	sh := &shell{state: state, a: counting}
	repl, err := readline.New("picogo> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	sh.repl = repl

	tracer().Infof("Quit with <ctrl>D or \"quit\"")
	sh.REPL()

	if err := state.Close(); err != nil {
		pterm.Error.Println("teardown failed: " + err.Error())
		os.Exit(1)
	}
	pterm.Info.Printfln("teardown complete: %d live bytes remaining", counting.LiveBytes())
}

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

// shell is the REPL's interpreter object, holding the bootstrapped
// state alive across commands until the user quits.
type shell struct {
	state *runtime.State
	a     alloc.Allocator
	repl  *readline.Instance
}

// REPL reads command lines until EOF or "quit", dispatching each to
// Execute.
func (sh *shell) REPL() {
	for {
		line, err := sh.repl.Readline()
		if err != nil { // io.EOF, or ctrl-C
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := sh.Execute(line); quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Execute dispatches one command line, returning true if the REPL
// should stop.
//
// Commands:
//
//	quit                     stop the REPL and tear the state down
//	features                 list the bootstrap's detected feature symbols
//	fingerprint              print the state's structural fingerprint
//	intern <name>            intern a symbol, print its id
//	string <literal>         wrap a Go string literal in a strval.String, print its length and hash
//	concat <a> <b>           concatenate two string literals, print the result
//	sprintf <fmt> <args...>  run strval.Sprintf against a format string and string args
func (sh *shell) Execute(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]
	switch cmd {
	case "quit", "exit":
		return true
	case "features":
		for _, sym := range sh.state.Roots.Features() {
			pterm.Println(sym.Name)
		}
	case "fingerprint":
		fp, err := sh.state.Fingerprint()
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		pterm.Println(fp)
	case "intern":
		if len(args) != 1 {
			pterm.Error.Println("usage: intern <name>")
			return false
		}
		sym, existed := sh.state.Symbols.Intern(args[0])
		pterm.Printfln("%s (already interned: %v)", sym.String(), existed)
	case "string":
		if len(args) != 1 {
			pterm.Error.Println("usage: string <literal>")
			return false
		}
		s := strval.FromLiteral(sh.a, args[0])
		h, _ := s.Hash()
		pterm.Printfln("length=%d hash=%d", s.Length(), h)
	case "concat":
		if len(args) != 2 {
			pterm.Error.Println("usage: concat <a> <b>")
			return false
		}
		a := strval.FromLiteral(sh.a, args[0])
		b := strval.FromLiteral(sh.a, args[1])
		r, err := strval.Concat(sh.a, a, b)
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		bytes, err := r.Bytes()
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		pterm.Println(string(bytes))
	case "sprintf":
		if len(args) < 1 {
			pterm.Error.Println("usage: sprintf <fmt> <args...>")
			return false
		}
		fargs := make([]any, len(args)-1)
		for i, a := range args[1:] {
			fargs[i] = a
		}
		r, err := strval.Sprintf(sh.a, args[0], fargs...)
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		bytes, err := r.Bytes()
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		pterm.Println(string(bytes))
	default:
		pterm.Error.Println(fmt.Sprintf("unknown command %q", cmd))
	}
	return false
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
