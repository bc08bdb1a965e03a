// errors.go: user-facing error wrapping and caret-snippet rendering.
//
// WrapErrorWithSource turns a *LexError/*ParseError/*RuntimeError into a
// readable, caret-annotated snippet of the offending source line:
//
//	PARSE ERROR at 3:12: unexpected token ')'
//
//	   2 | let x int = (1 + 2
//	   3 |            )
//	     |            ^
//	   4 | print(x)
//
// Grounded on daios-ai-msg/errors.go's WrapErrorWithSource/
// prettyErrorStringLabeled, adapted to Night's Location-carrying error types.
package night

import (
	"fmt"
	"strings"
)

// RuntimeError is raised while evaluating a parsed program: a type
// mismatch, an out-of-bounds index, division by zero, or a failed runtime
// assertion (spec.md §7.3). Secondary carries supplementary detail shown on
// its own line, the way the original interpreter reports a primary message
// plus context (e.g. "in call to f()").
type RuntimeError struct {
	Loc       Location
	Msg       string
	Secondary string
}

func (e *RuntimeError) Error() string {
	if e.Secondary != "" {
		return fmt.Sprintf("runtime error at %s: %s (%s)", e.Loc, e.Msg, e.Secondary)
	}
	return fmt.Sprintf("runtime error at %s: %s", e.Loc, e.Msg)
}

// WrapErrorWithSource augments err with a caret-annotated snippet of src
// when err is a *LexError, *ParseError, or *RuntimeError. Any other error
// (including *PreprocessError, which carries no Location) is returned
// unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with an explicit source name
// shown in the header (used by the REPL, where there is no backing file).
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "LEXICAL ERROR", srcName, e.Loc, e.Msg, e.Hint))
	case *ParseError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "PARSE ERROR", srcName, e.Loc, e.Msg, ""))
	case *RuntimeError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "RUNTIME ERROR", srcName, e.Loc, e.Msg, e.Secondary))
	default:
		return err
	}
}

// prettyErrorStringLabeled builds a snippet with a header and a caret,
// showing at most one line of context before and after. Line/Col are
// 1-based and clamped to the source bounds so rendering never panics.
func prettyErrorStringLabeled(src, header, name string, loc Location, msg, extra string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	line, col := loc.Line, loc.Col
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	if extra != "" {
		fmt.Fprintf(&b, "\nhint: %s\n", extra)
	}
	return b.String()
}
