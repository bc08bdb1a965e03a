// Command night runs Night source files and provides an interactive REPL.
// Usage mirrors the original C++ front end (original_source/code/src/main.cpp):
//
//	night <file> [-debug]
//	night --help | -h
//	night --version | -v
//
// With no file argument, night starts a REPL backed by github.com/peterh/liner
// for line editing and persistent history, the way daios-ai-msg's cmd/msg
// REPL works (SPEC_FULL.md AMBIENT STACK).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/peterh/liner"

	"github.com/AntimatterReactor/night"
)

const (
	appName     = "night"
	historyFile = ".night_history"
	promptMain  = "night> "
	promptCont  = "...... "
)

var helpText = fmt.Sprintf(`night %s — the Night interpreter

Usage:
  night <file> [-debug]     Run a Night source file.
  night                     Start an interactive REPL.
  night --help, -h          Show this help text.
  night --version, -v       Print the interpreter version.

for more info, run: night --help
`, night.Version)

func main() {
	debug := flag.Bool("debug", false, "print the CLI's Go file/line that reported an error")
	help := flag.Bool("help", false, "show usage")
	version := flag.Bool("version", false, "print the interpreter version")
	flag.BoolVar(help, "h", false, "show usage")
	flag.BoolVar(version, "v", false, "print the interpreter version")
	flag.Usage = func() { fmt.Fprint(os.Stderr, helpText) }
	flag.Parse()

	switch {
	case *help:
		fmt.Print(helpText)
		return
	case *version:
		fmt.Println(night.Version)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		os.Exit(runREPL())
	}
	// flag.Parse stops at the file argument, so a trailing -debug is
	// picked up here.
	for _, a := range args[1:] {
		if a == "-debug" || a == "--debug" {
			*debug = true
		}
	}
	os.Exit(runFile(args[0], *debug))
}

func runFile(path string, debug bool) int {
	in := night.NewInterpreter()
	warnings, err := in.RunFile(path)
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning: "+w.Error())
	}
	if err != nil {
		reportError(err, path, debug)
		return 1
	}
	return 0
}

func reportError(err error, path string, debug bool) {
	src, readErr := os.ReadFile(path)
	if readErr == nil {
		err = night.WrapErrorWithSource(err, string(src))
	}
	fmt.Fprintln(os.Stderr, err.Error())
	if debug {
		_, file, line, ok := runtime.Caller(2)
		if ok {
			fmt.Fprintf(os.Stderr, "debug: reported from %s:%d\n", file, line)
		}
	}
}

func runREPL() int {
	fmt.Printf("Night %s REPL — Ctrl+C cancels a line, Ctrl+D exits. Type :help for commands.\n", night.Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	in := night.NewInterpreter()

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return 0
		}

		code := line
		for !looksComplete(code) {
			more, err := ln.Prompt(promptCont)
			if err != nil {
				break
			}
			code += "\n" + more
		}

		trimmed := strings.TrimSpace(code)
		switch trimmed {
		case "":
			continue
		case ":quit":
			return 0
		case ":help":
			fmt.Println(":help  show this text\n:reset restart with a fresh global scope\n:quit  exit the REPL")
			continue
		case ":reset":
			in = night.NewInterpreter()
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		warnings, err := in.EvalPersistent("repl", code)
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, "warning: "+w.Error())
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, night.WrapErrorWithName(err, "repl", code).Error())
		}
	}
}

// looksComplete is a crude brace-balance probe used to decide whether the
// REPL should show a continuation prompt, since Night has no single-token
// "unexpected EOF" signal the way a full reparse-on-every-keystroke design
// would need.
func looksComplete(code string) bool {
	depth := 0
	for _, r := range code {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return depth <= 0
}
