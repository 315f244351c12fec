package transform

import "github.com/seantiz/rooc/internal/kinds"

// sink is the reserved name that silently discards declarations,
// updates and removals (spec.md section 4.3).
const sink = "_"

// Frame is one lexical scope: a name-to-value map.
type Frame struct {
	vars map[string]kinds.Value
}

func newFrame() *Frame { return &Frame{vars: map[string]kinds.Value{}} }

func frameFromConstants(constants map[string]kinds.Value) *Frame {
	if constants == nil {
		constants = map[string]kinds.Value{}
	}
	return &Frame{vars: constants}
}

func (f *Frame) get(name string) (kinds.Value, bool) {
	v, ok := f.vars[name]
	return v, ok
}

func (f *Frame) has(name string) bool {
	_, ok := f.vars[name]
	return ok
}

func (f *Frame) declare(name string, v kinds.Value) error {
	if f.has(name) {
		return alreadyExisting(name)
	}
	f.vars[name] = v
	return nil
}

func (f *Frame) update(name string, v kinds.Value) error {
	if !f.has(name) {
		return missingVariable(name)
	}
	f.vars[name] = v
	return nil
}

func (f *Frame) drop(name string) (kinds.Value, error) {
	v, ok := f.vars[name]
	if !ok {
		return nil, missingVariable(name)
	}
	delete(f.vars, name)
	return v, nil
}

// Context owns the LIFO stack of value frames the transformer threads
// through every expansion. It is never shared across a compile (spec.md
// section 5: no shared mutable state).
type Context struct {
	frames []*Frame

	// strictVariables forces a bare Variable reference to resolve only
	// against a bound frame value instead of passing through as a
	// decision variable. Set only while transforming an objective that
	// has no conditions and no domain declarations anywhere to latch
	// onto — a problem that never constrains a name never declares it.
	strictVariables bool
}

// NewContext seeds a Context with the root frame of declared constants.
func NewContext(constants map[string]kinds.Value) *Context {
	return &Context{frames: []*Frame{frameFromConstants(constants)}}
}

// AddScope pushes an empty frame.
func (c *Context) AddScope() { c.frames = append(c.frames, newFrame()) }

// AddPopulatedScope pushes an already-populated frame (used when a
// block's bindings are built up before the push, e.g. a tuple-pattern
// spread).
func (c *Context) AddPopulatedScope(f *Frame) { c.frames = append(c.frames, f) }

// PopScope pops the innermost frame, failing if only the root frame
// remains.
func (c *Context) PopScope() (*Frame, error) {
	if len(c.frames) <= 1 {
		return nil, other("no frame to pop")
	}
	f := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	return f, nil
}

// GetValue looks up name from the innermost frame outward.
func (c *Context) GetValue(name string) (kinds.Value, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if v, ok := c.frames[i].get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// ExistsVariable reports whether name is bound: strict searches every
// frame, non-strict only the innermost (the check declare_variable(...,
// strict) uses before shadowing).
func (c *Context) ExistsVariable(name string, strict bool) bool {
	if strict {
		_, ok := c.GetValue(name)
		return ok
	}
	if len(c.frames) == 0 {
		return false
	}
	return c.frames[len(c.frames)-1].has(name)
}

// DeclareVariable binds name in the innermost frame. When strict,
// shadowing any outer binding is an AlreadyExistingVariable error. The
// sink name "_" silently discards.
func (c *Context) DeclareVariable(name string, v kinds.Value, strict bool) error {
	if name == sink {
		return nil
	}
	if strict && c.ExistsVariable(name, true) {
		return alreadyExisting(name)
	}
	return c.frames[len(c.frames)-1].declare(name, v)
}

// UpdateVariable mutates the innermost frame carrying name, walking
// outward. The sink name silently discards.
func (c *Context) UpdateVariable(name string, v kinds.Value) error {
	if name == sink {
		return nil
	}
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].has(name) {
			return c.frames[i].update(name, v)
		}
	}
	return missingVariable(name)
}

// RemoveVariable drops name from whichever frame carries it, walking
// outward. The sink name returns Undefined without error.
func (c *Context) RemoveVariable(name string) (kinds.Value, error) {
	if name == sink {
		return kinds.Undef(), nil
	}
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].has(name) {
			return c.frames[i].drop(name)
		}
	}
	return nil, missingVariable(name)
}

// FlattenVariableName renders a compound-variable index-name list to its
// name-safe joined string (spec.md section 4.3): every name must already
// be bound to a Number, String, or GraphNode.
func (c *Context) FlattenVariableName(names []string) (string, error) {
	parts := make([]string, len(names))
	for i, name := range names {
		v, ok := c.GetValue(name)
		if !ok {
			return "", missingVariable(name)
		}
		s, err := kinds.NameFor(v)
		if err != nil {
			return "", wrongArgument(err.Error())
		}
		parts[i] = s
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "_"
		}
		out += p
	}
	return out, nil
}

// FlattenCompoundVariable joins a stem and its flattened index names
// into the final decision-variable identifier `stem_v1_v2_..._vk`.
func (c *Context) FlattenCompoundVariable(stem string, indexes []string) (string, error) {
	names, err := c.FlattenVariableName(indexes)
	if err != nil {
		return "", err
	}
	return stem + "_" + names, nil
}

// GetNumericalConstant looks up name and coerces it to a float64.
func (c *Context) GetNumericalConstant(name string) (float64, error) {
	v, ok := c.GetValue(name)
	if !ok {
		return 0, missingVariable(name)
	}
	return kinds.AsNumber(v)
}
