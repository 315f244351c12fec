package typecheck

import "github.com/seantiz/rooc/internal/kinds"

// scope is one lexical frame: a name-to-kind map plus the frame it was
// pushed over. Iteration sets and block-scoped functions each push a
// frame for their bound pattern names; a frame is popped once its body
// has been checked.
type scope struct {
	vars   map[string]kinds.Kind
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: map[string]kinds.Kind{}, parent: parent}
}

func (s *scope) declare(name string, k kinds.Kind) {
	s.vars[name] = k
}

func (s *scope) lookup(name string) (kinds.Kind, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if k, ok := cur.vars[name]; ok {
			return k, true
		}
	}
	return nil, false
}
