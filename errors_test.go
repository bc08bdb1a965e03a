package night

import (
	"strings"
	"testing"
)

func TestWrapErrorWithSource_LexError(t *testing.T) {
	src := "let x int = \"unterminated\nlet y int = 1\n"
	err := &LexError{Loc: Location{Line: 1, Col: 13}, Msg: "string was never closed"}
	wrapped := WrapErrorWithSource(err, src)
	text := wrapped.Error()
	if !strings.Contains(text, "LEXICAL ERROR") {
		t.Fatalf("want a LEXICAL ERROR header, got %q", text)
	}
	if !strings.Contains(text, "^") {
		t.Fatalf("want a caret in the snippet, got %q", text)
	}
}

func TestWrapErrorWithSource_ParseError(t *testing.T) {
	src := "let x int = (1 + 2\n"
	err := &ParseError{Loc: Location{Line: 1, Col: 20}, Msg: "expected ')'"}
	wrapped := WrapErrorWithSource(err, src)
	if !strings.Contains(wrapped.Error(), "PARSE ERROR") {
		t.Fatalf("want a PARSE ERROR header, got %q", wrapped.Error())
	}
}

func TestWrapErrorWithSource_RuntimeErrorWithSecondary(t *testing.T) {
	src := "let x int = 1 / 0\n"
	err := &RuntimeError{Loc: Location{Line: 1, Col: 17}, Msg: "division by zero", Secondary: "in top-level code"}
	wrapped := WrapErrorWithSource(err, src)
	text := wrapped.Error()
	if !strings.Contains(text, "RUNTIME ERROR") || !strings.Contains(text, "hint: in top-level code") {
		t.Fatalf("want header and hint line, got %q", text)
	}
}

func TestWrapErrorWithSource_PassesThroughOtherErrors(t *testing.T) {
	err := &PreprocessError{Path: "missing.night"}
	wrapped := WrapErrorWithSource(err, "")
	if wrapped != error(err) {
		t.Fatalf("want PreprocessError returned unchanged")
	}
}

func TestWrapErrorWithSource_ClampsOutOfRangeLocation(t *testing.T) {
	src := "let x int = 1\n"
	err := &ParseError{Loc: Location{Line: 99, Col: 99}, Msg: "out of range"}
	wrapped := WrapErrorWithSource(err, src)
	if wrapped.Error() == "" {
		t.Fatalf("expected a rendered snippet even for an out-of-range location")
	}
}
