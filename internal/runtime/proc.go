package runtime

import "github.com/tcztzy/wenyan-go/internal/graph"

// Proc is a Wenyan procedure value: the lowered body plus the closure
// environment it was defined in, and (when Partial is non-empty) the
// already-applied leading arguments of an in-progress curried call (spec
// §4.6 "Procedures": "a new wrapper closed over the partial args").
type Proc struct {
	Name       string
	ParamNames []string
	RestName   string
	ParamCount int
	TakesRest  bool
	Body       []graph.Stmt
	Env        *Env
	Partial    []Value
}

// Invoke implements __invoke(f, *args) (spec §4.6 "Invocation"): partial
// application when too few arguments are supplied, a direct call when the
// count matches exactly, and curried right-chaining (call with the first
// ParamCount args, then invoke the result with the remainder) when too
// many are supplied and the procedure doesn't take a rest parameter.
func (rt *Machine) Invoke(callee Value, args []Value) (Value, error) {
	if callee.Kind != KindProc {
		if len(args) == 0 {
			return callee, nil
		}
		return Value{}, &WenyanFault{Name: "不可施之值", Msg: "所施之值非術"}
	}
	proc := callee.Proc
	total := make([]Value, 0, len(proc.Partial)+len(args))
	total = append(total, proc.Partial...)
	total = append(total, args...)

	if proc.TakesRest {
		if len(total) < proc.ParamCount {
			return ProcVal(curried(proc, total)), nil
		}
		return rt.callProc(proc, total[:proc.ParamCount], total[proc.ParamCount:])
	}

	switch {
	case len(total) == proc.ParamCount:
		return rt.callProc(proc, total, nil)
	case len(total) < proc.ParamCount:
		return ProcVal(curried(proc, total)), nil
	default:
		result, err := rt.callProc(proc, total[:proc.ParamCount], nil)
		if err != nil {
			return Value{}, err
		}
		return rt.Invoke(result, total[proc.ParamCount:])
	}
}

func curried(proc *Proc, partial []Value) *Proc {
	return &Proc{
		Name: proc.Name, ParamNames: proc.ParamNames, RestName: proc.RestName,
		ParamCount: proc.ParamCount, TakesRest: proc.TakesRest, Body: proc.Body,
		Env: proc.Env, Partial: partial,
	}
}

// callProc binds positional and rest arguments in a fresh frame closed
// over proc's defining environment, runs the body with a fresh __stack
// (spec §3: "Procedure entry saves and hides caller's __stack"), and
// returns its result (Null if the body falls off the end without an
// explicit Return).
func (rt *Machine) callProc(proc *Proc, positional, rest []Value) (Value, error) {
	env := NewEnv(proc.Env)
	for i, name := range proc.ParamNames {
		env.DefineLocal(name, positional[i])
	}
	if proc.RestName != "" {
		env.DefineLocal(proc.RestName, ListVal(&List{Items: append([]Value{}, rest...)}))
	}
	callerStack := rt.Stack
	rt.Stack = NewStack()
	defer func() { rt.Stack = callerStack }()

	result, sig, err := rt.execStmts(proc.Body, env)
	if err != nil {
		return Value{}, err
	}
	if sig == sigReturn {
		return result, nil
	}
	return Null, nil
}
