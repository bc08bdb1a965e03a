package night

// funcTable is the global name-to-definition table populated by top-level
// `fn` statements before the program body runs (spec.md §4.2/§4.3). A
// duplicate name overwrites the earlier entry — the parser already recorded
// a non-fatal warning for this case (SPEC_FULL.md item 8).
type funcTable map[string]*FunctionStmt

const maxRecursionDepth = 1000

// recursionTracker mirrors the original interpreter's single mutable
// (name, depth) pair (interpreter.cpp:153-330, SPEC_FULL.md item 2): Night
// does not keep a per-function-name call count, only the depth of the
// currently active named call chain. Calling a different function resets
// the tracker to that function at depth 1; returning pops the depth back
// down, and when depth reaches 0 the tracker is cleared.
type recursionTracker struct {
	name  string
	depth int
}

// enter records a call to name, returning a RuntimeError if doing so would
// exceed maxRecursionDepth.
func (rt *recursionTracker) enter(name string, loc Location) error {
	if rt.name != name {
		rt.name = name
		rt.depth = 0
	}
	rt.depth++
	if rt.depth > maxRecursionDepth {
		return &RuntimeError{Loc: loc, Msg: "maximum recursion depth exceeded in " + name + "()"}
	}
	return nil
}

// leave pops one level off the tracker after a call to name returns.
func (rt *recursionTracker) leave(name string) {
	if rt.name != name {
		return
	}
	rt.depth--
	if rt.depth <= 0 {
		rt.name = ""
		rt.depth = 0
	}
}
