// Package runtime is the Wenyan execution engine (spec §3 "Runtime
// program graph", §4.6 "Lowering and runtime semantics"): the tagged value
// representation, the stack/environment machinery the lowered program
// graph is built around, and the tree-walking executor that drives it.
package runtime

import (
	"math/big"
)

// Kind tags a Value's active field, mirroring go-dws's interp.Value
// discriminated-union approach rather than a Go interface per type: Wenyan
// values cross stack/indexing/equality boundaries constantly, and a single
// concrete struct keeps those paths allocation-free.
type Kind int

const (
	KindNum Kind = iota
	KindStr
	KindBool
	KindList
	KindDict
	KindProc
	KindNull
)

// Value is any runtime datum: a number, string, boolean, list, dict,
// procedure, or the null placeholder 空 produces.
type Value struct {
	Kind Kind
	Num  *big.Rat
	Str  string
	Bool bool
	List *List
	Dict *Dict
	Proc *Proc
}

func Num(r *big.Rat) Value  { return Value{Kind: KindNum, Num: r} }
func Str(s string) Value    { return Value{Kind: KindStr, Str: s} }
func Bool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func ListVal(l *List) Value { return Value{Kind: KindList, List: l} }
func DictVal(d *Dict) Value { return Value{Kind: KindDict, Dict: d} }
func ProcVal(p *Proc) Value { return Value{Kind: KindProc, Proc: p} }

// Null is the empty-return placeholder (spec §3 "乃歸空無").
var Null = Value{Kind: KindNull}

// Truthy implements Wenyan's condition-expression coercion (spec §4.2
// "Condition expressions"): booleans test directly, numbers test
// non-zero, everything else (strings, lists, dicts, procedures) is true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNum:
		return v.Num.Sign() != 0
	case KindNull:
		return false
	default:
		return true
	}
}

// Equal implements 等於/不等於: numeric equality compares values, strings
// compare by content, booleans by value; other kinds compare by identity
// (lists/dicts/procs are reference types in Wenyan, same as go-dws's
// Environment-by-pointer comparison).
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNum:
		return v.Num.Cmp(o.Num) == 0
	case KindStr:
		return v.Str == o.Str
	case KindBool:
		return v.Bool == o.Bool
	case KindNull:
		return true
	case KindList:
		return v.List == o.List
	case KindDict:
		return v.Dict == o.Dict
	case KindProc:
		return v.Proc == o.Proc
	}
	return false
}

// List is a Wenyan 列, a mutable, 1-based/negative-indexed sequence.
type List struct {
	Items []Value
}

// Dict is a Wenyan object literal instance: an insertion-ordered map
// (spec §3 "物"), since print/iteration order must match declaration
// order and a plain Go map wouldn't preserve it.
type Dict struct {
	Keys []string
	Vals map[string]Value
}

func NewDict() *Dict { return &Dict{Vals: map[string]Value{}} }

func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.Vals[key]
	return v, ok
}

func (d *Dict) Set(key string, v Value) {
	if _, ok := d.Vals[key]; !ok {
		d.Keys = append(d.Keys, key)
	}
	d.Vals[key] = v
}
