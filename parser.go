package night

import "fmt"

// ParseError is a compile error raised by the parser: an unexpected token,
// a missing piece of punctuation, an undeclared name, or an empty required
// expression. See spec.md §7.2.
type ParseError struct {
	Loc Location
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Loc, e.Msg)
}

// builtinNames are reserved and resolved ahead of the user function table
// (spec.md §3/§4.3); the parser never rejects a call to one of these for
// being "undeclared".
var builtinNames = map[string]bool{
	"print": true, "input": true, "int": true, "float": true, "str": true, "system": true,
}

// binPrec gives each binary operator lexeme's precedence (spec.md §4.2,
// low to high): ".." lowest, then "||", "&&", equality, relational,
// additive, multiplicative. Unary and postfix "."/"[]" are handled outside
// this table (they bind tighter than any entry here).
var binPrec = map[string]int{
	"..": 1,
	"||": 2,
	"&&": 3,
	"==": 4, "!=": 4,
	"<": 5, "<=": 5, ">": 5, ">=": 5,
	"+": 6, "-": 6,
	"*": 7, "/": 7, "%": 7,
}

// parserScope is a chained map of declared variable names to their declared
// type, used only to reject references to undeclared names (spec.md §4.2);
// it never produces typed IR.
type parserScope struct {
	vars   map[string]TokenKind
	parent *parserScope
}

func newParserScope(parent *parserScope) *parserScope {
	return &parserScope{vars: map[string]TokenKind{}, parent: parent}
}

func (s *parserScope) declare(name string, t TokenKind) { s.vars[name] = t }

func (s *parserScope) resolve(name string) (TokenKind, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.vars[name]; ok {
			return t, true
		}
	}
	return 0, false
}

// Parser builds an AST from a token stream via recursive descent over
// statements and precedence-climbing over expressions (spec.md §4.2).
type Parser struct {
	lex      *Lexer
	cur      Token
	prevLine int // line on which the token before cur ended
	scope    *parserScope
	funcs    map[string]bool // declared user function names (global table)

	// Warnings collects non-fatal diagnostics: redefining an
	// already-declared function (spec.md §4.2 "parse-level warning").
	Warnings []*ParseError
}

// NewParser constructs a Parser over lex and primes the one-token lookahead.
func NewParser(lex *Lexer) (*Parser, error) {
	p := &Parser{lex: lex, scope: newParserScope(nil), funcs: map[string]bool{}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) errf(format string, args ...interface{}) error {
	return &ParseError{Loc: p.cur.Loc, Msg: fmt.Sprintf(format, args...)}
}

// advance consumes the current token and fetches the next one. Night's
// grammar never needs EOL as an in-stream token while parsing a single
// statement's interior: a statement's shape is fully determined by its own
// grammar, so advance always reads across line boundaries. Line breaks only
// matter between statements, where atStatementEnd compares cur's line with
// prevLine, the line on which the previous token ended.
func (p *Parser) advance() error {
	p.prevLine = p.lex.line
	tok, err := p.lex.eat(true)
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) expect(kind TokenKind, what string) (Token, error) {
	if p.cur.Kind != kind {
		return Token{}, p.errf("expected %s, found %q", what, p.cur.Lexeme)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// atStatementEnd reports whether the previous token was the last one on its
// physical line (cur starts on a later line, or is EOF or '}') — used to
// confirm a statement actually ends where its grammar says it should, rather
// than trailing garbage on the same line.
func (p *Parser) atStatementEnd() (bool, error) {
	if p.cur.Kind == EOF || p.cur.Kind == CloseCurly {
		return true, nil
	}
	return p.cur.Loc.Line > p.prevLine, nil
}

func (p *Parser) finishStatement() error {
	end, err := p.atStatementEnd()
	if err != nil {
		return err
	}
	if !end {
		return p.errf("unexpected token %q after statement", p.cur.Lexeme)
	}
	return nil
}

// ParseProgram parses an entire source file into an ordered statement list,
// along with any non-fatal parser warnings (spec.md §4.2, duplicate
// function definitions).
func ParseProgram(lex *Lexer) ([]Stmt, []*ParseError, error) {
	p, err := NewParser(lex)
	if err != nil {
		return nil, nil, err
	}
	var stmts []Stmt
	for p.cur.Kind != EOF {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, p.Warnings, err
		}
		stmts = append(stmts, stmt)
		if err := p.finishStatement(); err != nil {
			return nil, p.Warnings, err
		}
	}
	return stmts, p.Warnings, nil
}

// parseBlock parses either `{ stmt... }` or, when requiresCurly is false, a
// single statement — spec.md §4.2's block-or-single-statement body rule
// used for `if`/`loop` (single-statement, no curly required) and `fn`
// bodies (curly required). A fresh parserScope backs every block.
func (p *Parser) parseBlock(requiresCurly bool) ([]Stmt, error) {
	outer := p.scope
	p.scope = newParserScope(outer)
	defer func() { p.scope = outer }()

	if p.cur.Kind == OpenCurly {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var stmts []Stmt
		for p.cur.Kind != CloseCurly {
			if p.cur.Kind == EOF {
				return nil, p.errf("missing closing '}'")
			}
			stmt, err := p.parseStmt()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
			if err := p.finishStatement(); err != nil {
				return nil, err
			}
		}
		if err := p.advance(); err != nil { // consume '}'
			return nil, err
		}
		return stmts, nil
	}

	if requiresCurly {
		return nil, p.errf("expected '{'")
	}

	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if err := p.finishStatement(); err != nil {
		return nil, err
	}
	return []Stmt{stmt}, nil
}

// parseStmt dispatches on the current token kind per spec.md §4.2. A `let`
// prefix always introduces a declaration; a bare leading identifier is
// resolved as an assignment, an indexed assignment, or a call statement.
func (p *Parser) parseStmt() (Stmt, error) {
	switch p.cur.Kind {
	case KwLet:
		return p.parseVariableInit()
	case Ident:
		return p.parseVariableStmt()
	case KwIf:
		return p.parseConditional()
	case KwElif, KwElse:
		return nil, p.errf("'%s' without a preceding 'if'", p.cur.Lexeme)
	case KwLoop:
		return p.parseLoop()
	case KwFn:
		return p.parseFunction()
	case KwReturn:
		return p.parseReturn()
	default:
		return nil, p.errf("expected a statement, found %q", p.cur.Lexeme)
	}
}

func isTypeKeyword(k TokenKind) bool {
	return k == TypeBool || k == TypeInt || k == TypeFloat || k == TypeStr
}

// parseVariableInit parses `let name type ([dim])* (= expr)?`.
func (p *Parser) parseVariableInit() (Stmt, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil { // consume 'let'
		return nil, err
	}
	nameTok, err := p.expect(Ident, "a variable name")
	if err != nil {
		return nil, err
	}
	if !isTypeKeyword(p.cur.Kind) {
		return nil, p.errf("expected a type after 'let %s'", nameTok.Lexeme)
	}
	declType := p.cur.Kind
	if err := p.advance(); err != nil {
		return nil, err
	}

	var dims []Expr
	for p.cur.Kind == OpenSquare {
		if len(dims) >= 255 {
			return nil, p.errf("array has too many dimensions (max 255)")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		dim, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(CloseSquare, "']'"); err != nil {
			return nil, err
		}
		dims = append(dims, dim)
	}

	var init Expr
	if p.cur.Kind == Assign && p.cur.Lexeme == "=" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	p.scope.declare(nameTok.Lexeme, declType)
	return &VariableInit{Loc_: loc, Name: nameTok.Lexeme, DeclType: declType, Dims: dims, Init: init}, nil
}

// parseVariableStmt handles the identifier-led forms: compound assignment,
// indexed assignment, and call-as-statement (spec.md §4.2).
func (p *Parser) parseVariableStmt() (Stmt, error) {
	nameTok := p.cur
	loc := nameTok.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	switch {
	case p.cur.Kind == Assign:
		op := assignOp(p.cur.Lexeme)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, declared := p.scope.resolve(nameTok.Lexeme); !declared {
			return nil, &ParseError{Loc: loc, Msg: fmt.Sprintf("undeclared variable %q", nameTok.Lexeme)}
		}
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &VariableAssign{Loc_: loc, Name: nameTok.Lexeme, Op: op, Right: right}, nil

	case p.cur.Kind == OpenSquare:
		if _, declared := p.scope.resolve(nameTok.Lexeme); !declared {
			return nil, &ParseError{Loc: loc, Msg: fmt.Sprintf("undeclared variable %q", nameTok.Lexeme)}
		}
		var subs []Expr
		for p.cur.Kind == OpenSquare {
			if err := p.advance(); err != nil {
				return nil, err
			}
			sub, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(CloseSquare, "']'"); err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		if p.cur.Kind != Assign || p.cur.Lexeme != "=" {
			return nil, p.errf("expected '=' after indexed target")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &IndexedAssign{Loc_: loc, Name: nameTok.Lexeme, Subscripts: subs, Value: val}, nil

	case p.cur.Kind == OpenBracket:
		call, err := p.parseCallTail(nameTok.Lexeme, loc)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Loc_: loc, Call: call}, nil

	default:
		return nil, p.errf("unexpected token %q after %q", p.cur.Lexeme, nameTok.Lexeme)
	}
}

func assignOp(lexeme string) string {
	switch lexeme {
	case "+=":
		return "+"
	case "-=":
		return "-"
	case "*=":
		return "*"
	case "/=":
		return "/"
	case "%=":
		return "%"
	default:
		return ""
	}
}

// parseConditional parses the `if`/`elif`*/`else`? chain.
func (p *Parser) parseConditional() (Stmt, error) {
	loc := p.cur.Loc
	var branches []CondBranch

	if err := p.advance(); err != nil { // consume 'if'
		return nil, err
	}
	cond, body, err := p.parseCondAndBody()
	if err != nil {
		return nil, err
	}
	branches = append(branches, CondBranch{Cond: cond, Body: body})

	for p.cur.Kind == KwElif {
		if err := p.advance(); err != nil {
			return nil, err
		}
		cond, body, err := p.parseCondAndBody()
		if err != nil {
			return nil, err
		}
		branches = append(branches, CondBranch{Cond: cond, Body: body})
	}

	if p.cur.Kind == KwElse {
		if err := p.advance(); err != nil {
			return nil, err
		}
		body, err := p.parseBlock(false)
		if err != nil {
			return nil, err
		}
		branches = append(branches, CondBranch{Cond: nil, Body: body})
	}

	return &Conditional{Loc_: loc, Branches: branches}, nil
}

func (p *Parser) parseCondAndBody() (Expr, []Stmt, error) {
	if _, err := p.expect(OpenBracket, "'('"); err != nil {
		return nil, nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(CloseBracket, "')'"); err != nil {
		return nil, nil, err
	}
	body, err := p.parseBlock(false)
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

// parseLoop parses `loop (cond) body`, `loop (let i int = i0; cond; incr)
// body`, or `loop (i : range-or-array-or-string) body` (spec.md §4.2/§4.3): a
// `let` immediately after the '(' marks the three-clause for-loop form; a
// bare identifier followed by ':' marks the range-loop form.
func (p *Parser) parseLoop() (Stmt, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil { // consume 'loop'
		return nil, err
	}
	if _, err := p.expect(OpenBracket, "'('"); err != nil {
		return nil, err
	}

	if p.cur.Kind == Ident {
		next, err := p.lex.peek(true)
		if err != nil {
			return nil, err
		}
		if next.Kind == Colon {
			return p.parseRangeLoop(loc)
		}
	}

	if p.cur.Kind == KwLet {
		outer := p.scope
		p.scope = newParserScope(outer)

		initStmt, err := p.parseVariableInit()
		if err != nil {
			p.scope = outer
			return nil, err
		}
		if _, err := p.expect(Semicolon, "';'"); err != nil {
			p.scope = outer
			return nil, err
		}
		cond, err := p.parseExpr()
		if err != nil {
			p.scope = outer
			return nil, err
		}
		if _, err := p.expect(Semicolon, "';'"); err != nil {
			p.scope = outer
			return nil, err
		}
		incr, err := p.parseAssignClause()
		if err != nil {
			p.scope = outer
			return nil, err
		}
		if _, err := p.expect(CloseBracket, "')'"); err != nil {
			p.scope = outer
			return nil, err
		}
		body, err := p.parseBlock(false)
		p.scope = outer
		if err != nil {
			return nil, err
		}
		return &ForStmt{Loc_: loc, Init: initStmt.(*VariableInit), Cond: cond, Incr: incr, Body: body}, nil
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(CloseBracket, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(false)
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Loc_: loc, Cond: cond, Body: body}, nil
}

// parseRangeLoop parses `loop (i : source) body`, where source is a range
// (`a..b`), an array, or a string (spec.md §4.3): the iterator is rebound
// each iteration to successive ints/elements/one-character strings. The
// iterator's declared type can't be known until source is evaluated, so it
// is declared as TypeInt purely to satisfy the parser's undeclared-name
// check — the parser's type tracking is documentation only (spec.md §4.2).
func (p *Parser) parseRangeLoop(loc Location) (Stmt, error) {
	nameTok, err := p.expect(Ident, "a loop variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Colon, "':'"); err != nil {
		return nil, err
	}

	outer := p.scope
	p.scope = newParserScope(outer)
	p.scope.declare(nameTok.Lexeme, TypeInt)

	source, err := p.parseExpr()
	if err != nil {
		p.scope = outer
		return nil, err
	}
	if _, err := p.expect(CloseBracket, "')'"); err != nil {
		p.scope = outer
		return nil, err
	}
	body, err := p.parseBlock(false)
	p.scope = outer
	if err != nil {
		return nil, err
	}
	return &RangeLoopStmt{Loc_: loc, VarName: nameTok.Lexeme, Source: source, Body: body}, nil
}

// parseAssignClause parses a bare `name op= expr` clause used as a for-loop
// increment; it does not require statement-end, since it is followed by ')'.
func (p *Parser) parseAssignClause() (Stmt, error) {
	nameTok, err := p.expect(Ident, "a variable name")
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != Assign {
		return nil, p.errf("expected an assignment operator")
	}
	op := assignOp(p.cur.Lexeme)
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &VariableAssign{Loc_: nameTok.Loc, Name: nameTok.Lexeme, Op: op, Right: right}, nil
}

// parseFunction parses `fn name (p1 t1, p2 t2, ...) rtype { body }`.
func (p *Parser) parseFunction() (Stmt, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil { // consume 'fn'
		return nil, err
	}
	nameTok, err := p.expect(Ident, "a function name")
	if err != nil {
		return nil, err
	}
	if p.funcs[nameTok.Lexeme] {
		p.Warnings = append(p.Warnings, &ParseError{Loc: loc, Msg: fmt.Sprintf("function %q is already defined", nameTok.Lexeme)})
	}
	p.funcs[nameTok.Lexeme] = true

	if _, err := p.expect(OpenBracket, "'('"); err != nil {
		return nil, err
	}

	bodyScope := newParserScope(p.scope)

	var params []Param
	for p.cur.Kind != CloseBracket {
		pnameTok, err := p.expect(Ident, "a parameter name")
		if err != nil {
			return nil, err
		}
		if !isTypeKeyword(p.cur.Kind) {
			return nil, p.errf("expected a type for parameter %q", pnameTok.Lexeme)
		}
		ptype := p.cur.Kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		bodyScope.declare(pnameTok.Lexeme, ptype)
		params = append(params, Param{Name: pnameTok.Lexeme, Type: ptype})
		if p.cur.Kind == Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(CloseBracket, "')'"); err != nil {
		return nil, err
	}

	if !isTypeKeyword(p.cur.Kind) {
		return nil, p.errf("expected a return type")
	}
	retType := p.cur.Kind
	if err := p.advance(); err != nil {
		return nil, err
	}

	outer := p.scope
	p.scope = bodyScope
	body, err := p.parseBlock(true)
	p.scope = outer
	if err != nil {
		return nil, err
	}

	return &FunctionStmt{Loc_: loc, Name: nameTok.Lexeme, Params: params, RetType: retType, Body: body}, nil
}

// parseReturn parses `return expr?`.
func (p *Parser) parseReturn() (Stmt, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	end, err := p.atStatementEnd()
	if err != nil {
		return nil, err
	}
	if end {
		return &ReturnStmt{Loc_: loc}, nil
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ReturnStmt{Loc_: loc, Value: val}, nil
}

// ---------------------------------------------------------------------------
// Expressions: precedence-climbing over binPrec, with a postfix loop for
// the highest-precedence "." / "[]" operators and a prefix rule for unary
// "-"/"!" (spec.md §4.2).
// ---------------------------------------------------------------------------

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseBinExpr(1)
}

func (p *Parser) parseBinExpr(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		lexeme, prec, ok := p.currentBinOp()
		if !ok || prec < minPrec {
			return left, nil
		}
		loc := p.cur.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseBinExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		if lexeme == ".." {
			left = &RangeExpr{Loc_: loc, Start: left, End: right}
		} else {
			left = &BinaryExpr{Loc_: loc, Op: lexeme, Left: left, Right: right}
		}
	}
}

// currentBinOp reports the lexeme/precedence of the current token if it is
// usable as a binary operator here; "." is excluded, since it is handled by
// the postfix loop as a method call, not as a left-associative binary chain.
func (p *Parser) currentBinOp() (string, int, bool) {
	if p.cur.Kind != BinaryOp {
		return "", 0, false
	}
	if p.cur.Lexeme == "." {
		return "", 0, false
	}
	prec, ok := binPrec[p.cur.Lexeme]
	return p.cur.Lexeme, prec, ok
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.cur.Kind == UnaryOp || (p.cur.Kind == BinaryOp && p.cur.Lexeme == "-") {
		op := p.cur.Lexeme
		loc := p.cur.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Loc_: loc, Op: op, Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (Expr, error) {
	prim, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur.Kind == OpenSquare:
			loc := p.cur.Loc
			if err := p.advance(); err != nil {
				return nil, err
			}
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(CloseSquare, "']'"); err != nil {
				return nil, err
			}
			prim = &BinaryExpr{Loc_: loc, Op: "[]", Left: prim, Right: idx}

		case p.cur.Kind == BinaryOp && p.cur.Lexeme == ".":
			loc := p.cur.Loc
			if err := p.advance(); err != nil {
				return nil, err
			}
			nameTok, err := p.expect(Ident, "a method name")
			if err != nil {
				return nil, err
			}
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			prim = &BinaryExpr{Loc_: loc, Op: ".", Left: prim, Right: &MethodCallExpr{Loc_: nameTok.Loc, Name: nameTok.Lexeme, Args: args}}

		default:
			return prim, nil
		}
	}
}

func (p *Parser) parseCallArgs() ([]Expr, error) {
	if _, err := p.expect(OpenBracket, "'('"); err != nil {
		return nil, err
	}
	var args []Expr
	for p.cur.Kind != CloseBracket {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Kind == Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(CloseBracket, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseCallTail(name string, loc Location) (Expr, error) {
	if !builtinNames[name] && !p.funcs[name] {
		return nil, &ParseError{Loc: loc, Msg: fmt.Sprintf("call to undeclared function %q", name)}
	}
	args, err := p.parseCallArgs()
	if err != nil {
		return nil, err
	}
	return &CallExpr{Loc_: loc, Name: name, Args: args}, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.cur
	switch tok.Kind {
	case BoolLit:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &LiteralExpr{Loc_: tok.Loc, Kind: LitBool, Value: tok.Lexeme == "true"}, nil

	case IntLit:
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, convErr := parseInt(tok.Lexeme)
		if convErr != nil {
			return nil, &ParseError{Loc: tok.Loc, Msg: convErr.Error()}
		}
		return &LiteralExpr{Loc_: tok.Loc, Kind: LitInt, Value: v}, nil

	case FloatLit:
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, convErr := parseFloat(tok.Lexeme)
		if convErr != nil {
			return nil, &ParseError{Loc: tok.Loc, Msg: convErr.Error()}
		}
		return &LiteralExpr{Loc_: tok.Loc, Kind: LitFloat, Value: v}, nil

	case StrLit:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &LiteralExpr{Loc_: tok.Loc, Kind: LitStr, Value: tok.Lexeme}, nil

	case Ident:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind == OpenBracket {
			return p.parseCallTail(tok.Lexeme, tok.Loc)
		}
		if _, declared := p.scope.resolve(tok.Lexeme); !declared {
			return nil, &ParseError{Loc: tok.Loc, Msg: fmt.Sprintf("undeclared variable %q", tok.Lexeme)}
		}
		return &VarExpr{Loc_: tok.Loc, Name: tok.Lexeme}, nil

	case TypeInt, TypeFloat, TypeStr:
		// The int/float/str built-ins share their names with type keywords.
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind != OpenBracket {
			return nil, &ParseError{Loc: tok.Loc, Msg: fmt.Sprintf("expected '(' after %q", tok.Lexeme)}
		}
		return p.parseCallTail(tok.Lexeme, tok.Loc)

	case OpenBracket:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(CloseBracket, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	case OpenSquare:
		loc := tok.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		var elems []Expr
		for p.cur.Kind != CloseSquare {
			el, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
			if p.cur.Kind == Comma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if _, err := p.expect(CloseSquare, "']'"); err != nil {
			return nil, err
		}
		return &ArrayLitExpr{Loc_: loc, Elems: elems}, nil

	default:
		return nil, p.errf("expected an expression, found %q", tok.Lexeme)
	}
}
