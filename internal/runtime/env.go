package runtime

// Env is one lexical scope frame: one per procedure invocation, shared by
// every nested if/while/for/try block inside it (spec §4.5: Wenyan has no
// block scoping). Set walks the parent chain to find an existing binding
// and falls back to defining in the root frame when none exists, which is
// exactly the spec's definition of a "global" assignment — the scope
// analyzer's computed Globals/Nonlocals sets are therefore informational
// metadata on graph.ProcDef, not consulted here.
type Env struct {
	Parent *Env
	vars   map[string]Value
}

func NewEnv(parent *Env) *Env {
	return &Env{Parent: parent, vars: map[string]Value{}}
}

// DefineLocal binds name in this frame unconditionally, shadowing any
// outer binding (used for parameters and 吾有/今有 declarations).
func (e *Env) DefineLocal(name string, v Value) {
	e.vars[name] = v
}

// Get resolves name by walking outward from e, returning ok=false if
// unbound anywhere in the chain.
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.Parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Set writes to the frame that already binds name, searching outward; if
// no frame binds it, it is defined fresh in the outermost (root) frame.
func (e *Env) Set(name string, v Value) {
	root := e
	for f := e; f != nil; f = f.Parent {
		if _, ok := f.vars[name]; ok {
			f.vars[name] = v
			return
		}
		root = f
	}
	root.vars[name] = v
}

// Root walks to the outermost frame.
func (e *Env) Root() *Env {
	f := e
	for f.Parent != nil {
		f = f.Parent
	}
	return f
}
