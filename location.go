package night

import "fmt"

// Location pinpoints a position in a source file. It is carried by every
// token, AST node, and error so diagnostics can always point at source.
type Location struct {
	File string
	Line int // 1-based
	Col  int // 1-based
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Col)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// IsZero reports whether the location carries no position information.
func (l Location) IsZero() bool {
	return l.Line == 0 && l.Col == 0
}
