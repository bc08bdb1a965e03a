package night

// Scope is a runtime variable environment: a name-to-value map plus a
// parent pointer, terminating at the global scope whose parent is nil
// (spec.md §4.3). Night has no closures over definition-site environment
// (see SPEC_FULL.md Non-goals), so a function call's scope always chains to
// the global scope directly, never to its caller's scope.
type Scope struct {
	vars   map[string]*Value
	parent *Scope
}

func newScope(parent *Scope) *Scope {
	return &Scope{vars: map[string]*Value{}, parent: parent}
}

// define introduces name in this scope (spec.md VariableInit), shadowing any
// outer declaration of the same name.
func (s *Scope) define(name string, v Value) {
	s.vars[name] = &v
}

// lookup walks the parent chain for name, returning the live *Value so
// callers can mutate in place (array element/indexed assignment).
func (s *Scope) lookup(name string) (*Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// assign overwrites the nearest enclosing binding of name with v. The
// parser already guarantees name was declared before any assignment
// reaches here (spec.md §4.2), so the slot is always found.
func (s *Scope) assign(name string, v Value) {
	if slot, ok := s.lookup(name); ok {
		*slot = v
	}
}
