package runtime

import (
	"math/big"

	"github.com/tcztzy/wenyan-go/internal/graph"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// stringCollator backs ordering comparisons (大於/小於/不小於/不大於) between
// two strings, matching go-dws's builtins_strings_compare.go pairing of
// collate with language.Und for locale-aware string ordering.
var stringCollator = collate.New(language.Und)

// signal is the control-flow outcome of running a statement list: the
// go-dws interpreter tracks break/continue/exit as separate bool fields on
// the Interpreter (see interp.Interpreter); a lowered Wenyan body only
// ever needs one active signal at a time; an enum says so directly.
type signal int

const (
	sigNone signal = iota
	sigReturn
	sigBreak
	sigContinue
)

// execStmts runs stmts in env, stopping early on the first non-sigNone
// signal (Return/Break/Continue) or error.
func (rt *Machine) execStmts(stmts []graph.Stmt, env *Env) (Value, signal, error) {
	for _, s := range stmts {
		v, sig, err := rt.execStmt(s, env)
		if err != nil || sig != sigNone {
			return v, sig, err
		}
	}
	return Null, sigNone, nil
}

func (rt *Machine) execStmt(s graph.Stmt, env *Env) (Value, signal, error) {
	switch n := s.(type) {
	case *graph.Push:
		v, err := rt.evalExpr(n.Value, env)
		if err != nil {
			return Value{}, sigNone, err
		}
		rt.Stack.Push(v)
		return Null, sigNone, nil

	case *graph.Call:
		callee, err := rt.evalExpr(n.Callee, env)
		if err != nil {
			return Value{}, sigNone, err
		}
		args := make([]Value, len(n.Args))
		for i, a := range n.Args {
			v, err := rt.evalExpr(a, env)
			if err != nil {
				return Value{}, sigNone, err
			}
			args[i] = v
		}
		result, err := rt.Invoke(callee, args)
		if err != nil {
			return Value{}, sigNone, err
		}
		rt.Stack.Push(result)
		return Null, sigNone, nil

	case *graph.PipeCall:
		callee, err := rt.evalExpr(n.Callee, env)
		if err != nil {
			return Value{}, sigNone, err
		}
		var args []Value
		if n.TakeRest {
			args = rt.Stack.PopRest()
		} else {
			popped, ok := rt.Stack.PopN(n.TakeCount)
			if !ok {
				return Value{}, sigNone, emptyStackFault()
			}
			args = popped
		}
		result, err := rt.Invoke(callee, args)
		if err != nil {
			return Value{}, sigNone, err
		}
		rt.Stack.Push(result)
		return Null, sigNone, nil

	case *graph.Declare:
		return Null, sigNone, rt.execDeclare(n, env)

	case *graph.Assign:
		popped, ok := rt.Stack.PopN(len(n.Names))
		if !ok {
			return Value{}, sigNone, emptyStackFault()
		}
		for i, name := range n.Names {
			env.DefineLocal(name, popped[i])
		}
		return Null, sigNone, nil

	case *graph.Store:
		return Null, sigNone, rt.execStore(n, env)

	case *graph.ProcDef:
		proc := &Proc{
			Name: n.Name, ParamNames: n.ParamNames, RestName: n.RestName,
			ParamCount: n.ParamCount, TakesRest: n.TakesRest, Body: n.Body, Env: env,
		}
		env.DefineLocal(n.Name, ProcVal(proc))
		return Null, sigNone, nil

	case *graph.Return:
		if n.Empty {
			return Null, sigReturn, nil
		}
		if n.PopStack {
			v, ok := rt.Stack.Pop()
			if !ok {
				return Value{}, sigNone, emptyStackFault()
			}
			return v, sigReturn, nil
		}
		v, err := rt.evalExpr(n.Value, env)
		if err != nil {
			return Value{}, sigNone, err
		}
		return v, sigReturn, nil

	case *graph.Append:
		return Null, sigNone, rt.execAppend(n, env)

	case *graph.Concat:
		return Null, sigNone, rt.execConcat(n, env)

	case *graph.ObjectDef:
		d := NewDict()
		for _, prop := range n.Props {
			v, err := rt.evalExpr(prop.Value, env)
			if err != nil {
				return Value{}, sigNone, err
			}
			d.Set(prop.Key, v)
		}
		env.DefineLocal(n.Name, DictVal(d))
		return Null, sigNone, nil

	case *graph.Print:
		rest := rt.Stack.PopRest()
		if _, err := rt.Output.Write([]byte(rt.Format(rest))); err != nil {
			return Value{}, sigNone, err
		}
		return Null, sigNone, nil

	case *graph.Clear:
		rt.Stack.Clear()
		return Null, sigNone, nil

	case *graph.If:
		return rt.execIf(n, env)

	case *graph.While:
		for {
			v, sig, err := rt.execStmts(n.Body, env)
			if err != nil {
				return Value{}, sigNone, err
			}
			switch sig {
			case sigBreak:
				return Null, sigNone, nil
			case sigReturn:
				return v, sigReturn, nil
			}
		}

	case *graph.For:
		countVal, err := rt.evalExpr(n.Count, env)
		if err != nil {
			return Value{}, sigNone, err
		}
		count, ok := indexInt(countVal)
		if !ok {
			return Value{}, sigNone, &WenyanFault{Name: "索引非法", Msg: "遍數非整數"}
		}
		for i := 0; i < count; i++ {
			v, sig, err := rt.execStmts(n.Body, env)
			if err != nil {
				return Value{}, sigNone, err
			}
			switch sig {
			case sigBreak:
				return Null, sigNone, nil
			case sigReturn:
				return v, sigReturn, nil
			}
		}
		return Null, sigNone, nil

	case *graph.Foreach:
		containerVal, err := rt.evalExpr(n.Container, env)
		if err != nil {
			return Value{}, sigNone, err
		}
		items, err := rt.iterable(containerVal)
		if err != nil {
			return Value{}, sigNone, err
		}
		for _, item := range items {
			env.DefineLocal(n.Var, item)
			v, sig, err := rt.execStmts(n.Body, env)
			if err != nil {
				return Value{}, sigNone, err
			}
			switch sig {
			case sigBreak:
				return Null, sigNone, nil
			case sigReturn:
				return v, sigReturn, nil
			}
		}
		return Null, sigNone, nil

	case *graph.Break:
		return Null, sigBreak, nil

	case *graph.Continue:
		return Null, sigContinue, nil

	case *graph.Try:
		return rt.execTry(n, env)

	case *graph.Raise:
		nameVal, err := rt.evalExpr(n.Name, env)
		if err != nil {
			return Value{}, sigNone, err
		}
		msg := ""
		if n.Msg != nil {
			msgVal, err := rt.evalExpr(n.Msg, env)
			if err != nil {
				return Value{}, sigNone, err
			}
			msg = msgVal.Str
		}
		return Value{}, sigNone, &WenyanFault{Name: nameVal.Str, Msg: msg}
	}
	panic("runtime: unhandled statement node")
}

func (rt *Machine) execDeclare(n *graph.Declare, env *Env) error {
	for i, name := range n.Names {
		var v Value
		switch {
		case i < len(n.Inits):
			ev, err := rt.evalExpr(n.Inits[i], env)
			if err != nil {
				return err
			}
			v = ev
		default:
			v = zeroValue(n.TypeTag)
		}
		env.DefineLocal(name, v)
	}
	return nil
}

// zeroValue is the value a declared-but-uninitialized binding of the
// given type tag takes on (spec §3 Declare: a bare 吾有 count 術 without
// 曰 still needs a placeholder).
func zeroValue(typeTag string) Value {
	switch typeTag {
	case "數":
		return Num(new(big.Rat))
	case "言":
		return Str("")
	case "爻":
		return Bool(false)
	case "列":
		return ListVal(&List{})
	case "物":
		return DictVal(NewDict())
	default:
		return Null
	}
}

func (rt *Machine) execStore(n *graph.Store, env *Env) error {
	if n.LhsIdx == nil {
		if n.Delete {
			env.Set(n.Name, Null)
			return nil
		}
		v, err := rt.evalExpr(n.Rhs, env)
		if err != nil {
			return err
		}
		env.Set(n.Name, v)
		return nil
	}
	container, ok := env.Get(n.Name)
	if !ok {
		return unboundNameFault(n.Name)
	}
	idxVal, err := rt.evalExpr(n.LhsIdx, env)
	if err != nil {
		return err
	}
	if n.Delete {
		return rt.Delete(container, idxVal)
	}
	var rhs Value
	if n.RhsIdx != nil {
		rhsContainer, err := rt.evalExpr(n.Rhs, env)
		if err != nil {
			return err
		}
		rhsIdx, err := rt.evalExpr(n.RhsIdx, env)
		if err != nil {
			return err
		}
		rhs, err = rt.Index(rhsContainer, rhsIdx)
		if err != nil {
			return err
		}
	} else {
		rhs, err = rt.evalExpr(n.Rhs, env)
		if err != nil {
			return err
		}
	}
	return rt.Store(container, idxVal, rhs)
}

func (rt *Machine) execAppend(n *graph.Append, env *Env) error {
	targetVal, err := rt.evalExpr(n.Target, env)
	if err != nil {
		return err
	}
	if targetVal.Kind != KindList {
		return &WenyanFault{Name: "充需以值", Msg: "充之目標非列"}
	}
	for _, ve := range n.Values {
		v, err := rt.evalExpr(ve, env)
		if err != nil {
			return err
		}
		targetVal.List.Items = append(targetVal.List.Items, v)
	}
	return nil
}

func (rt *Machine) execConcat(n *graph.Concat, env *Env) error {
	targetVal, err := rt.evalExpr(n.Target, env)
	if err != nil {
		return err
	}
	if targetVal.Kind != KindList {
		return &WenyanFault{Name: "銜需以列", Msg: "銜之目標非列"}
	}
	for _, le := range n.Lists {
		lv, err := rt.evalExpr(le, env)
		if err != nil {
			return err
		}
		if lv.Kind != KindList {
			return &WenyanFault{Name: "銜需以列", Msg: "所銜之值非列"}
		}
		targetVal.List.Items = append(targetVal.List.Items, lv.List.Items...)
	}
	return nil
}

func (rt *Machine) execIf(n *graph.If, env *Env) (Value, signal, error) {
	ok, err := rt.evalCond(n.Cond, env)
	if err != nil {
		return Value{}, sigNone, err
	}
	if n.Invert {
		ok = !ok
	}
	if ok {
		return rt.execStmts(n.Then, env)
	}
	for _, elif := range n.Elifs {
		ok, err := rt.evalCond(elif.Cond, env)
		if err != nil {
			return Value{}, sigNone, err
		}
		if ok {
			return rt.execStmts(elif.Body, env)
		}
	}
	return rt.execStmts(n.Else, env)
}

func (rt *Machine) execTry(n *graph.Try, env *Env) (Value, signal, error) {
	v, sig, err := rt.execStmts(n.Body, env)
	if err == nil {
		return v, sig, nil
	}
	fault, ok := err.(*WenyanFault)
	if !ok {
		return Value{}, sigNone, err
	}
	for _, h := range n.Handlers {
		matched := h.CatchAll
		if !matched && h.Name != nil {
			nameVal, nerr := rt.evalExpr(h.Name, env)
			if nerr != nil {
				return Value{}, sigNone, nerr
			}
			matched = nameVal.Str == fault.Name
		}
		if !matched {
			continue
		}
		if h.VarName != "" {
			env.DefineLocal(h.VarName, fault.Value())
		}
		return rt.execStmts(h.Body, env)
	}
	return Value{}, sigNone, err
}

func (rt *Machine) iterable(v Value) ([]Value, error) {
	switch v.Kind {
	case KindList:
		return v.List.Items, nil
	case KindDict:
		items := make([]Value, len(v.Dict.Keys))
		for i, k := range v.Dict.Keys {
			items[i] = Str(k)
		}
		return items, nil
	case KindStr:
		runes := []rune(v.Str)
		items := make([]Value, len(runes))
		for i, r := range runes {
			items[i] = Str(string(r))
		}
		return items, nil
	default:
		return nil, &WenyanFault{Name: "索引非法", Msg: "凡需以列物言"}
	}
}

// evalExpr evaluates a graph.Expr node to a Value. Expr nodes never push
// or pop __stack themselves (spec §4.6 "Stack discipline": that is the
// lowering pass's job via Push), except Self, which is the destructive
// read 其 itself implements, and RestValue, which drains the stack as 其餘.
func (rt *Machine) evalExpr(e graph.Expr, env *Env) (Value, error) {
	switch n := e.(type) {
	case *graph.Name:
		v, ok := env.Get(n.Ident)
		if !ok {
			return Value{}, unboundNameFault(n.Ident)
		}
		return v, nil

	case *graph.String:
		return Str(n.Value), nil

	case *graph.Number:
		return Num(n.Value), nil

	case *graph.Bool:
		return Bool(n.Value), nil

	case *graph.Self:
		v, ok := rt.Stack.TopAndClear()
		if !ok {
			return Value{}, emptyStackFault()
		}
		return v, nil

	case *graph.RestValue:
		return ListVal(&List{Items: rt.Stack.PopRest()}), nil

	case *graph.BinOp:
		lhs, err := rt.evalExpr(n.Lhs, env)
		if err != nil {
			return Value{}, err
		}
		rhs, err := rt.evalExpr(n.Rhs, env)
		if err != nil {
			return Value{}, err
		}
		return rt.binOp(n.Op, lhs, rhs)

	case *graph.Not:
		v, err := rt.evalExpr(n.Value, env)
		if err != nil {
			return Value{}, err
		}
		return Bool(!v.Truthy()), nil

	case *graph.Index:
		container, err := rt.evalExpr(n.Container, env)
		if err != nil {
			return Value{}, err
		}
		idx, err := rt.evalExpr(n.IndexVal, env)
		if err != nil {
			return Value{}, err
		}
		return rt.Index(container, idx)

	case *graph.Length:
		container, err := rt.evalExpr(n.Container, env)
		if err != nil {
			return Value{}, err
		}
		return rt.Length(container), nil

	case *graph.Membership:
		container, err := rt.evalExpr(n.Container, env)
		if err != nil {
			return Value{}, err
		}
		item, err := rt.evalExpr(n.Item, env)
		if err != nil {
			return Value{}, err
		}
		has, err := rt.contains(container, item)
		if err != nil {
			return Value{}, err
		}
		if n.Negate {
			has = !has
		}
		return Bool(has), nil

	case *graph.Call:
		callee, err := rt.evalExpr(n.Callee, env)
		if err != nil {
			return Value{}, err
		}
		args := make([]Value, len(n.Args))
		for i, a := range n.Args {
			v, err := rt.evalExpr(a, env)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		return rt.Invoke(callee, args)
	}
	panic("runtime: unhandled expression node")
}

func (rt *Machine) contains(container, item Value) (bool, error) {
	switch container.Kind {
	case KindList:
		for _, it := range container.List.Items {
			if it.Equal(item) {
				return true, nil
			}
		}
		return false, nil
	case KindDict:
		if item.Kind != KindStr {
			return false, nil
		}
		_, ok := container.Dict.Get(item.Str)
		return ok, nil
	case KindStr:
		if item.Kind != KindStr {
			return false, nil
		}
		return containsSubstring(container.Str, item.Str), nil
	default:
		return false, &WenyanFault{Name: "索引非法", Msg: "中有需以列物言"}
	}
}

func containsSubstring(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	hr, nr := []rune(haystack), []rune(needle)
	if len(nr) > len(hr) {
		return false
	}
	for i := 0; i+len(nr) <= len(hr); i++ {
		match := true
		for j := range nr {
			if hr[i+j] != nr[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func (rt *Machine) binOp(op string, lhs, rhs Value) (Value, error) {
	if lhs.Kind != KindNum || rhs.Kind != KindNum {
		return Value{}, &WenyanFault{Name: "算術句介詞非法", Msg: "加減乘除需以數"}
	}
	result := new(big.Rat)
	switch op {
	case "+":
		result.Add(lhs.Num, rhs.Num)
	case "-":
		result.Sub(lhs.Num, rhs.Num)
	case "*":
		result.Mul(lhs.Num, rhs.Num)
	case "/":
		if rhs.Num.Sign() == 0 {
			return Value{}, &WenyanFault{Name: "算術句介詞非法", Msg: "除數不可為零"}
		}
		result.Quo(lhs.Num, rhs.Num)
	default:
		panic("runtime: unknown binary operator " + op)
	}
	return Num(result), nil
}

// evalCond evaluates a condition expression (spec §3 "Condition
// expression"): CondAtom applies an optional index/length projection
// before the truthy/compare test runs.
func (rt *Machine) evalCond(c graph.CondExpr, env *Env) (bool, error) {
	switch n := c.(type) {
	case *graph.CondAtom:
		v, err := rt.evalAtom(n, env)
		if err != nil {
			return false, err
		}
		return v.Truthy(), nil
	case *graph.CondCompare:
		left, err := rt.evalAtom(n.Left, env)
		if err != nil {
			return false, err
		}
		right, err := rt.evalAtom(n.Right, env)
		if err != nil {
			return false, err
		}
		return rt.compare(n.Op, left, right)
	case *graph.CondLogic:
		left, err := rt.evalCond(n.Left, env)
		if err != nil {
			return false, err
		}
		if n.Op == "&&" && !left {
			return false, nil
		}
		if n.Op == "||" && left {
			return true, nil
		}
		return rt.evalCond(n.Right, env)
	}
	panic("runtime: unhandled condition node")
}

func (rt *Machine) evalAtom(a *graph.CondAtom, env *Env) (Value, error) {
	v, err := rt.evalExpr(a.Value, env)
	if err != nil {
		return Value{}, err
	}
	if a.IsLength {
		return rt.Length(v), nil
	}
	if a.Index != nil {
		idx, err := rt.evalExpr(a.Index, env)
		if err != nil {
			return Value{}, err
		}
		return rt.Index(v, idx)
	}
	return v, nil
}

func (rt *Machine) compare(op string, lhs, rhs Value) (bool, error) {
	if op == "==" {
		return lhs.Equal(rhs), nil
	}
	if op == "!=" {
		return !lhs.Equal(rhs), nil
	}
	var c int
	switch {
	case lhs.Kind == KindNum && rhs.Kind == KindNum:
		c = lhs.Num.Cmp(rhs.Num)
	case lhs.Kind == KindStr && rhs.Kind == KindStr:
		c = stringCollator.CompareString(lhs.Str, rhs.Str)
	default:
		return false, &WenyanFault{Name: "算術句介詞非法", Msg: "比較需以數或以言"}
	}
	switch op {
	case "<":
		return c < 0, nil
	case ">":
		return c > 0, nil
	case "<=":
		return c <= 0, nil
	case ">=":
		return c >= 0, nil
	}
	panic("runtime: unknown comparison operator " + op)
}
