// interpreter.go — the public API surface of the Night runtime.
//
// An Interpreter owns the global variable Scope and the global function
// table. RunFile/RunSource lex, parse, and evaluate a whole program;
// EvalPersistent (used by the REPL) evaluates every top-level statement of
// one input against the same Interpreter's Global scope, so declarations persist
// across REPL lines the way daios-ai-msg's EvalPersistentSource keeps a
// REPL's Global environment alive between inputs.
package night

import (
	"io"
	"os"
)

// Interpreter holds the whole mutable state of a running Night program:
// its global variable scope, its function table, and the recursion
// tracker shared by every call (spec.md §4.3).
type Interpreter struct {
	Global    *Scope
	Funcs     funcTable
	recursion recursionTracker

	Stdout io.Writer
	Stdin  io.Reader
}

// NewInterpreter returns an Interpreter with an empty global scope, ready
// to run one or more programs/REPL lines against it.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		Global: newScope(nil),
		Funcs:  funcTable{},
		Stdout: os.Stdout,
		Stdin:  os.Stdin,
	}
}

// RunFile lexes, parses, and runs the program in path. Parser warnings
// (e.g. duplicate function definitions, SPEC_FULL.md item 8) are returned
// alongside any fatal error.
func (in *Interpreter) RunFile(path string) ([]*ParseError, error) {
	lex, err := NewLexerFromFile(path)
	if err != nil {
		return nil, err
	}
	defer lex.Close()
	return in.run(lex)
}

// RunSource lexes, parses, and runs src, reporting diagnostics under name.
func (in *Interpreter) RunSource(name, src string) ([]*ParseError, error) {
	lex := NewLexer(name, src)
	return in.run(lex)
}

func (in *Interpreter) run(lex *Lexer) ([]*ParseError, error) {
	stmts, warnings, err := ParseProgram(lex)
	if err != nil {
		return warnings, err
	}
	if err := in.registerFunctions(stmts); err != nil {
		return warnings, err
	}
	if err := in.execBlock(stmts, in.Global); err != nil {
		if rc, ok := err.(*returnSignal); ok {
			_ = rc
			return warnings, nil
		}
		return warnings, err
	}
	return warnings, nil
}

// EvalPersistent parses and runs every statement in src (one REPL input,
// possibly several lines) against the Interpreter's existing Global scope and function
// table, so earlier declarations remain visible.
func (in *Interpreter) EvalPersistent(name, src string) ([]*ParseError, error) {
	lex := NewLexer(name, src)
	p, err := NewParser(lex)
	if err != nil {
		return nil, err
	}
	// Seed the parser's declared-name tracking with everything already
	// bound in Global/Funcs, so REPL continuation lines can reference
	// variables and functions from earlier inputs.
	for name := range in.Global.vars {
		p.scope.declare(name, TypeInt) // type only matters for docs; untyped here
	}
	for name := range in.Funcs {
		p.funcs[name] = true
	}

	var stmts []Stmt
	for p.cur.Kind != EOF {
		stmt, err := p.parseStmt()
		if err != nil {
			return p.Warnings, err
		}
		stmts = append(stmts, stmt)
		if err := p.finishStatement(); err != nil {
			return p.Warnings, err
		}
	}
	if err := in.registerFunctions(stmts); err != nil {
		return p.Warnings, err
	}
	if err := in.execBlock(stmts, in.Global); err != nil {
		if _, ok := err.(*returnSignal); ok {
			return p.Warnings, nil
		}
		return p.Warnings, err
	}
	return p.Warnings, nil
}

// registerFunctions populates the interpreter's global function table from
// every top-level `fn` statement before the program body runs. Functions
// must still be declared before use textually — Parser.funcs is populated
// statement-by-statement as it parses, so only self-recursion and calls to
// already-parsed functions pass the parser's undeclared-function check —
// this just makes the parsed functions callable from the top-level body
// regardless of where in that body they're invoked.
func (in *Interpreter) registerFunctions(stmts []Stmt) error {
	for _, s := range stmts {
		if fn, ok := s.(*FunctionStmt); ok {
			in.Funcs[fn.Name] = fn
		}
	}
	return nil
}

// Version is the Night interpreter's reported version (spec.md §7, used by
// `night --version`).
const Version = "0.1.0"
