// Package graph defines the host-agnostic program graph that lowering
// emits and the runtime executes (spec §3 "Runtime program graph"). Nodes
// are a flattened, execution-oriented cousin of the ast package: Take and
// PipeCall have already been merged, Import/Comment/Macro are gone (the
// preprocessor and parser fully resolve them before lowering runs), and
// Number carries a parsed *big.Rat rather than a decimal string.
package graph

import "math/big"

// Expr is any node that produces a value when evaluated.
type Expr interface {
	exprNode()
}

// Stmt is any node that executes for effect.
type Stmt interface {
	stmtNode()
}

// Name references a bound identifier, resolved lexically at runtime.
type Name struct{ Ident string }

func (*Name) exprNode() {}

// String is a string literal.
type String struct{ Value string }

func (*String) exprNode() {}

// Number is a decoded numeral, kept as an exact rational.
type Number struct{ Value *big.Rat }

func (*Number) exprNode() {}

// Bool is a boolean literal.
type Bool struct{ Value bool }

func (*Bool) exprNode() {}

// Self is the destructive top-of-stack read (spec §4.6 "__top_and_clear").
type Self struct{}

func (*Self) exprNode() {}

// RestValue is 其餘 used as a plain value (outside the Take/PipeCall
// protocol, e.g. as a 充/銜 operand): it drains the current __stack into a
// list, the same underlying primitive a rest-Take uses to gather its
// arguments.
type RestValue struct{}

func (*RestValue) exprNode() {}

// BinOp is 加/減/乘/除.
type BinOp struct {
	Op       string
	Lhs, Rhs Expr
}

func (*BinOp) exprNode() {}

// Not is boolean negation.
type Not struct{ Value Expr }

func (*Not) exprNode() {}

// Index reads Container at Index (1-based; spec §4.6 "Indexing").
type Index struct{ Container, IndexVal Expr }

func (*Index) exprNode() {}

// Length is 之長.
type Length struct{ Container Expr }

func (*Length) exprNode() {}

// Membership is 夫…中有陽乎/中無陰乎.
type Membership struct {
	Container, Item Expr
	Negate          bool
}

func (*Membership) exprNode() {}

// Call invokes Callee with Args, pushing the result (spec §4.6 "Invocation").
type Call struct {
	Callee Expr
	Args   []Expr
}

func (*Call) exprNode() {}
func (*Call) stmtNode() {}

// PipeCall is the fused Take+以施 form: calls __invoke(Callee, *popped) where
// popped is __pop_n(TakeCount) or __pop_rest(__stack) when TakeRest is set.
type PipeCall struct {
	Callee    Expr
	TakeCount int
	TakeRest  bool
}

func (*PipeCall) stmtNode() {}

// CondExpr is a condition expression (spec §3 "Condition expression").
type CondExpr interface {
	condNode()
}

// CondAtom is a value with an optional index or length marker.
type CondAtom struct {
	Value    Expr
	Index    Expr
	IsLength bool
}

func (*CondAtom) condNode() {}

// CondCompare compares two atoms.
type CondCompare struct {
	Op          string
	Left, Right *CondAtom
}

func (*CondCompare) condNode() {}

// CondLogic combines two sub-expressions with && or ||.
type CondLogic struct {
	Op          string
	Left, Right CondExpr
}

func (*CondLogic) condNode() {}

// Declare is 吾有/今有: declares Count variables of TypeTag with optional
// inits/names (spec §3 Declare).
type Declare struct {
	Count   int
	TypeTag string
	Inits   []Expr
	Names   []string
	Public  bool
}

func (*Declare) stmtNode() {}

// Assign pops len(Names) values off the stack right-to-left.
type Assign struct{ Names []string }

func (*Assign) stmtNode() {}

// ProcDef is a lowered procedure: the wrapper metadata (ParamCount,
// TakesRest) plus the scope sets the analyzer computed (spec §4.5, §4.6
// "Procedures").
type ProcDef struct {
	Name       string
	ParamNames []string
	RestName   string // "" if no rest parameter
	ParamCount int
	TakesRest  bool
	Body       []Stmt
	Globals    []string
	Nonlocals  []string
	Public     bool
}

func (*ProcDef) stmtNode() {}

// Return is 乃得/乃得矣/乃歸空無.
type Return struct {
	Value    Expr // nil unless an explicit value follows 乃得
	PopStack bool
	Empty    bool
}

func (*Return) stmtNode() {}

// Append is 充: push Values onto Target.
type Append struct {
	Target Expr
	Values []Expr
}

func (*Append) stmtNode() {}

// Concat is 銜: concatenate Lists onto Target.
type Concat struct {
	Target Expr
	Lists  []Expr
}

func (*Concat) stmtNode() {}

// ObjectProp is one key/value pair of an ObjectDef.
type ObjectProp struct {
	Key   string
	Value Expr
}

// ObjectDef declares an object literal.
type ObjectDef struct {
	Name  string
	Props []ObjectProp
}

func (*ObjectDef) stmtNode() {}

// Print formats and prints the current stack, then clears it.
type Print struct{}

func (*Print) stmtNode() {}

// Clear discards the current stack without printing.
type Clear struct{}

func (*Clear) stmtNode() {}

// Push evaluates Value and appends it to __stack (spec §4.6 "Stack
// discipline"): the universal lowering of any Value-as-expression that
// isn't consumed in place.
type Push struct{ Value Expr }

func (*Push) stmtNode() {}

// Store is 昔之「X」[之idx]者 今 (rhs[之idx] | 不復存矣) (spec §4.4
// "Assignment").
type Store struct {
	Name   string
	LhsIdx Expr // nil if no left index
	Rhs    Expr // nil when Delete is true
	RhsIdx Expr // nil if no right index
	Delete bool
}

func (*Store) stmtNode() {}

// Elif is one 或若 <cond> 者 … arm.
type Elif struct {
	Cond CondExpr
	Body []Stmt
}

// If is 若/若其然者/若其不然者 … 或若…若非….
type If struct {
	Cond   CondExpr
	Invert bool
	Then   []Stmt
	Elifs  []Elif
	Else   []Stmt
}

func (*If) stmtNode() {}

// While is 恆為是 ….
type While struct{ Body []Stmt }

func (*While) stmtNode() {}

// For is 為是 <n> 遍 ….
type For struct {
	Count Expr
	Body  []Stmt
}

func (*For) stmtNode() {}

// Foreach is 凡 <container> 中之 <var> ….
type Foreach struct {
	Container Expr
	Var       string
	Body      []Stmt
}

func (*Foreach) stmtNode() {}

// Break is 乃止.
type Break struct{}

func (*Break) stmtNode() {}

// Continue is 乃止是遍.
type Continue struct{}

func (*Continue) stmtNode() {}

// Handler is one 豈 <name> 之禍歟 clause, or the catch-all 不知何禍歟
// (CatchAll true, Name nil).
type Handler struct {
	Name     Expr
	CatchAll bool
	VarName  string
	Body     []Stmt
}

// Try is 姑妄行此 … 如事不諧 … 乃作罷.
type Try struct {
	Body     []Stmt
	Handlers []Handler
}

func (*Try) stmtNode() {}

// Raise is 嗚呼 <name> 之禍 [曰 <msg>].
type Raise struct {
	Name Expr
	Msg  Expr
}

func (*Raise) stmtNode() {}

// Program is the top-level lowered unit: statements to run in the root
// scope, prelude bindings implied by the runtime package rather than
// materialized here (spec §3 "Prelude bindings").
type Program struct {
	Statements []Stmt
}
