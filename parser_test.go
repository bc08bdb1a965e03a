package night

import "testing"

func parseSrc(t *testing.T, src string) []Stmt {
	t.Helper()
	lex := NewLexer("test", src)
	stmts, _, err := ParseProgram(lex)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return stmts
}

func parseSrcErr(t *testing.T, src string) error {
	t.Helper()
	lex := NewLexer("test", src)
	_, _, err := ParseProgram(lex)
	return err
}

func TestParser_VariableDeclaration(t *testing.T) {
	stmts := parseSrc(t, "let x int = 3\n")
	if len(stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(stmts))
	}
	decl, ok := stmts[0].(*VariableInit)
	if !ok {
		t.Fatalf("want *VariableInit, got %T", stmts[0])
	}
	if decl.Name != "x" || decl.DeclType != TypeInt {
		t.Fatalf("unexpected decl: %+v", decl)
	}
}

func TestParser_UndeclaredVariableIsParseError(t *testing.T) {
	err := parseSrcErr(t, "x = 3\n")
	if err == nil {
		t.Fatalf("expected a parse error referencing an undeclared variable")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("want *ParseError, got %T", err)
	}
}

func TestParser_CompoundAssignment(t *testing.T) {
	stmts := parseSrc(t, "let x int = 1\nx += 2\n")
	assign, ok := stmts[1].(*VariableAssign)
	if !ok {
		t.Fatalf("want *VariableAssign, got %T", stmts[1])
	}
	if assign.Op != "+" {
		t.Fatalf("want op '+', got %q", assign.Op)
	}
}

func TestParser_IfElifElse(t *testing.T) {
	stmts := parseSrc(t, "let x int = 1\nif (x == 1) {\n  x = 2\n} elif (x == 2) {\n  x = 3\n} else {\n  x = 4\n}\n")
	cond, ok := stmts[1].(*Conditional)
	if !ok {
		t.Fatalf("want *Conditional, got %T", stmts[1])
	}
	if len(cond.Branches) != 3 {
		t.Fatalf("want 3 branches, got %d", len(cond.Branches))
	}
	if cond.Branches[2].Cond != nil {
		t.Fatalf("want nil cond on else branch, got %+v", cond.Branches[2].Cond)
	}
}

func TestParser_ElifWithoutIfIsFatal(t *testing.T) {
	err := parseSrcErr(t, "elif (true) {\n}\n")
	if err == nil {
		t.Fatalf("expected a parse error for elif without if")
	}
}

func TestParser_WhileLoop(t *testing.T) {
	stmts := parseSrc(t, "let x bool = true\nloop (x) {\n  x = false\n}\n")
	_, ok := stmts[1].(*WhileStmt)
	if !ok {
		t.Fatalf("want *WhileStmt, got %T", stmts[1])
	}
}

func TestParser_ForLoop(t *testing.T) {
	stmts := parseSrc(t, "loop (let i int = 0; i < 10; i += 1) {\n  print(i)\n}\n")
	forStmt, ok := stmts[0].(*ForStmt)
	if !ok {
		t.Fatalf("want *ForStmt, got %T", stmts[0])
	}
	if forStmt.Init.Name != "i" {
		t.Fatalf("want init name 'i', got %q", forStmt.Init.Name)
	}
}

func TestParser_FunctionDefinitionAndCall(t *testing.T) {
	stmts := parseSrc(t, "fn add(a int, b int) int {\n  return a + b\n}\nprint(add(1, 2))\n")
	fn, ok := stmts[0].(*FunctionStmt)
	if !ok {
		t.Fatalf("want *FunctionStmt, got %T", stmts[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function: %+v", fn)
	}
}

func TestParser_DuplicateFunctionIsWarningNotError(t *testing.T) {
	lex := NewLexer("test", "fn f() int {\n  return 1\n}\nfn f() int {\n  return 2\n}\n")
	_, warnings, err := ParseProgram(lex)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("want 1 warning for the redefinition, got %d", len(warnings))
	}
}

func TestParser_CallToUndeclaredFunctionIsFatal(t *testing.T) {
	err := parseSrcErr(t, "print(missing())\n")
	if err == nil {
		t.Fatalf("expected a parse error for an undeclared function call")
	}
}

func TestParser_OperatorPrecedence(t *testing.T) {
	stmts := parseSrc(t, "let x int = 1 + 2 * 3\n")
	decl := stmts[0].(*VariableInit)
	bin, ok := decl.Init.(*BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("want top-level '+', got %+v", decl.Init)
	}
	rhs, ok := bin.Right.(*BinaryExpr)
	if !ok || rhs.Op != "*" {
		t.Fatalf("want '*' nested on the right of '+', got %+v", bin.Right)
	}
}

func TestParser_RangeInArrayLiteral(t *testing.T) {
	stmts := parseSrc(t, "let xs int[3] = [1..4]\n")
	decl := stmts[0].(*VariableInit)
	lit, ok := decl.Init.(*ArrayLitExpr)
	if !ok || len(lit.Elems) != 1 {
		t.Fatalf("want a single-element array literal, got %+v", decl.Init)
	}
	if _, ok := lit.Elems[0].(*RangeExpr); !ok {
		t.Fatalf("want a RangeExpr element, got %T", lit.Elems[0])
	}
}

func TestParser_MethodCallAndSubscript(t *testing.T) {
	stmts := parseSrc(t, "let xs int[3] = [1, 2, 3]\nlet n int = xs.len()\nlet first int = xs[0]\n")
	lenDecl := stmts[1].(*VariableInit)
	bin, ok := lenDecl.Init.(*BinaryExpr)
	if !ok || bin.Op != "." {
		t.Fatalf("want '.' method-call binary, got %+v", lenDecl.Init)
	}
	if _, ok := bin.Right.(*MethodCallExpr); !ok {
		t.Fatalf("want a MethodCallExpr on the right, got %T", bin.Right)
	}

	idxDecl := stmts[2].(*VariableInit)
	idxBin, ok := idxDecl.Init.(*BinaryExpr)
	if !ok || idxBin.Op != "[]" {
		t.Fatalf("want '[]' subscript binary, got %+v", idxDecl.Init)
	}
}

func TestParser_ArrayDimensionCap(t *testing.T) {
	src := "let x int"
	for i := 0; i < 256; i++ {
		src += "[1]"
	}
	src += "\n"
	err := parseSrcErr(t, src)
	if err == nil {
		t.Fatalf("expected a parse error for exceeding the 255-dimension cap")
	}
}
