package ast

import "github.com/tcztzy/wenyan-go/internal/lexer"

// Declare is 吾有/今有: declares Count variables of TypeTag, optionally
// initialized and named in one statement (spec §3 Declare).
type Declare struct {
	base
	Count   string // decoded numeral, e.g. "1"
	TypeTag string
	Inits   []Value
	Names   []string
	Public  bool
}

func NewDeclare(span lexer.Span, count, typeTag string, inits []Value, names []string, public bool) *Declare {
	return &Declare{NewBase(span), count, typeTag, inits, names, public}
}
func (*Declare) stmtNode() {}

// Init is 曰 inside a Declare/ProcDef parameter group: one value, with an
// optional immediate name (曰「name」).
type Init struct {
	base
	TypeTag string
	Value   Value
	Name    string // "" if unnamed
}

func NewInit(span lexer.Span, typeTag string, value Value, name string) *Init {
	return &Init{NewBase(span), typeTag, value, name}
}
func (*Init) stmtNode() {}

// Assign pops len(Names) values off the stack, right-to-left (spec §3
// Assign, §4.6 "Assign(names)").
type Assign struct {
	base
	Names []string
}

func NewAssign(span lexer.Span, names []string) *Assign { return &Assign{NewBase(span), names} }
func (*Assign) stmtNode()                                {}

// Import is 吾嘗觀 "<module>" 之書, optionally re-exposing names via 方悟.
type Import struct {
	base
	Module   string
	Exposed  []string
}

func NewImport(span lexer.Span, module string, exposed []string) *Import {
	return &Import{NewBase(span), module, exposed}
}
func (*Import) stmtNode() {}

// ProcDef is a named procedure definition (spec §4.4 "Procedure-definition
// detection").
type ProcDef struct {
	base
	Name   string
	Params []Param
	Rest   *Param // nil if no variadic tail
	Body   []Stmt
	Public bool
}

// Param is one declared parameter: a type tag and a name.
type Param struct {
	TypeTag string
	Name    string
}

func NewProcDef(span lexer.Span, name string, params []Param, rest *Param, body []Stmt, public bool) *ProcDef {
	return &ProcDef{NewBase(span), name, params, rest, body, public}
}
func (*ProcDef) stmtNode() {}

// Call invokes Callee with Args (spec §3 Call).
type Call struct {
	base
	Callee Value
	Args   []Value
}

func NewCall(span lexer.Span, callee Value, args []Value) *Call {
	return &Call{NewBase(span), callee, args}
}
func (*Call) stmtNode() {}

// PipeCall is 以施 <callee>: consumes the pending take (spec §4.4 "Pending
// take").
type PipeCall struct {
	base
	Callee Value
}

func NewPipeCall(span lexer.Span, callee Value) *PipeCall { return &PipeCall{NewBase(span), callee} }
func (*PipeCall) stmtNode()                                {}

// Take is 取 <n> / 取其餘: sets the pending-take flag.
type Take struct {
	base
	Count *int // nil when Rest is true
	Rest  bool
}

func NewTake(span lexer.Span, count *int, rest bool) *Take { return &Take{NewBase(span), count, rest} }
func (*Take) stmtNode()                                     {}

// Return is 乃得/乃得矣/乃歸空無.
type Return struct {
	base
	Value    Value // nil unless an explicit value follows 乃得
	PopStack bool  // 乃得矣: pop the current stack top as the return value
	Empty    bool  // 乃歸空無: return no value (null)
}

func NewReturn(span lexer.Span, value Value, popStack, empty bool) *Return {
	return &Return{NewBase(span), value, popStack, empty}
}
func (*Return) stmtNode() {}

// Append is 充: push Values onto the Target list.
type Append struct {
	base
	Target Value
	Values []Value
}

func NewAppend(span lexer.Span, target Value, values []Value) *Append {
	return &Append{NewBase(span), target, values}
}
func (*Append) stmtNode() {}

// Concat is 銜: concatenate Lists onto Target.
type Concat struct {
	base
	Target Value
	Lists  []Value
}

func NewConcat(span lexer.Span, target Value, lists []Value) *Concat {
	return &Concat{NewBase(span), target, lists}
}
func (*Concat) stmtNode() {}

// ObjectDef declares an object literal bound to Name with Props (string
// key, value expression) pairs.
type ObjectDef struct {
	base
	Name  string
	Props []ObjectProp
}

// ObjectProp is one key/value pair of an ObjectDef.
type ObjectProp struct {
	Key   string
	Value Value
}

func NewObjectDef(span lexer.Span, name string, props []ObjectProp) *ObjectDef {
	return &ObjectDef{NewBase(span), name, props}
}
func (*ObjectDef) stmtNode() {}

// Print is 書之: format and print the current stack, then clear it.
type Print struct{ base }

func NewPrint(span lexer.Span) *Print { return &Print{NewBase(span)} }
func (*Print) stmtNode()              {}

// Clear is 噫: discard the current stack contents without printing.
type Clear struct{ base }

func NewClear(span lexer.Span) *Clear { return &Clear{NewBase(span)} }
func (*Clear) stmtNode()              {}

// BinOp is an arithmetic expression: 加/減/乘/除.
type BinOp struct {
	base
	Op       string
	Lhs, Rhs Value
}

func NewBinOp(span lexer.Span, op string, lhs, rhs Value) *BinOp {
	return &BinOp{NewBase(span), op, lhs, rhs}
}
func (*BinOp) stmtNode()  {}
func (*BinOp) valueNode() {}

// Not is a boolean negation expression.
type Not struct {
	base
	Value Value
}

func NewNot(span lexer.Span, v Value) *Not { return &Not{NewBase(span), v} }
func (*Not) stmtNode()                      {}
func (*Not) valueNode()                     {}

// Push is 夫 <value>: push a plain value expression.
type Push struct {
	base
	Value Value
}

func NewPush(span lexer.Span, v Value) *Push { return &Push{NewBase(span), v} }
func (*Push) stmtNode()                       {}

// Index reads Container at Index (1-based; nonpositive via the negative
// side table, spec §4.6 "Indexing").
type Index struct {
	base
	Container Value
	IndexVal  Value
}

func NewIndex(span lexer.Span, container, index Value) *Index {
	return &Index{NewBase(span), container, index}
}
func (*Index) stmtNode()  {}
func (*Index) valueNode() {}

// Length is 之長: push the length of Container.
type Length struct {
	base
	Container Value
}

func NewLength(span lexer.Span, container Value) *Length {
	return &Length{NewBase(span), container}
}
func (*Length) stmtNode()  {}
func (*Length) valueNode() {}

// Store is 昔之「X」[之idx]者 今 (rhs[之idx] (是矣|是也) | 不復存矣) (spec §4.4
// "Assignment"). Delete is true for 不復存矣.
type Store struct {
	base
	Name   string
	LhsIdx Value // nil if no left index
	Rhs    Value // nil when Delete is true
	RhsIdx Value // nil if no right index
	Delete bool
}

func NewStore(span lexer.Span, name string, lhsIdx, rhs, rhsIdx Value, del bool) *Store {
	return &Store{NewBase(span), name, lhsIdx, rhs, rhsIdx, del}
}
func (*Store) stmtNode() {}

// Comment is a 批曰 source comment: retained in the tree so tooling that
// walks statements (e.g. a --wyast dump) can see it, but lowering skips it.
type Comment struct {
	base
	Text string
}

func NewComment(span lexer.Span, text string) *Comment { return &Comment{NewBase(span), text} }
func (*Comment) stmtNode()                              {}

// Macro is a 或云/蓋謂 pattern/replacement definition consumed by the
// preprocessor before parsing; retained here only for --wyast introspection
// of already-expanded sources.
type Macro struct {
	base
	Pattern     string
	Replacement string
}

func NewMacro(span lexer.Span, pattern, replacement string) *Macro {
	return &Macro{NewBase(span), pattern, replacement}
}
func (*Macro) stmtNode() {}
