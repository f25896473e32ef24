package solast

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Block is `{ ... }` or `unchecked { ... }`.
type Block struct {
	Span
	Unchecked bool
	Stmts     []Stmt
}

// IfStmt is an if statement. A dangling else associates with the nearest
// unmatched if, which the recursive structure here encodes for free.
type IfStmt struct {
	Span
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

// WhileStmt is a while loop.
type WhileStmt struct {
	Span
	Cond Expr
	Body Stmt
}

// DoWhileStmt is a do/while loop.
type DoWhileStmt struct {
	Span
	Body Stmt
	Cond Expr
}

// ForStmt is a for loop. All three clauses are independently optional;
// `for (;;) {}` is legal.
type ForStmt struct {
	Span
	Init Stmt // *VarDeclStmt or *ExprStmt, nil when absent
	Cond Expr // nil when absent
	Post Expr // nil when absent
	Body Stmt
}

// CatchClause is one catch in a try statement. Params is nil for a bare
// `catch {}`; Ident is the identifier before the parameter list
// (Error, Panic, or empty) when present.
type CatchClause struct {
	Span
	Ident  int // NoToken for `catch (...)` and bare `catch`
	Params []*Param
	Body   *Block
}

// TryStmt is a try statement: one try clause, then catch clauses in source
// order. At most one bare catch may appear and only in last position.
type TryStmt struct {
	Span
	Expr    Expr
	Returns []*Param
	Body    *Block
	Catches []*CatchClause
}

// ReturnStmt is `return;` or `return expr;`.
type ReturnStmt struct {
	Span
	Value Expr // nil when absent
}

// EmitStmt is `emit Event(args);`.
type EmitStmt struct {
	Span
	Call Expr
}

// RevertStmt is `revert;`, `revert();`, or `revert Error(args);`.
type RevertStmt struct {
	Span
	Call Expr // nil for the bare form
}

// BreakStmt is `break;`.
type BreakStmt struct {
	Span
}

// ContinueStmt is `continue;`.
type ContinueStmt struct {
	Span
}

// AssemblyStmt is `assembly [dialect] [(flags)] { ... }`. The Yul body is not
// parsed into the host grammar: BodyFirst/BodyLast delimit the opaque
// brace-balanced token run, braces included.
type AssemblyStmt struct {
	Span
	Dialect   int // TokString index of e.g. "evmasm", or NoToken
	Flags     []int
	BodyFirst int
	BodyLast  int
}

// ExprStmt is a bare expression statement.
type ExprStmt struct {
	Span
	E Expr
}

// VarDecl is one declared variable inside a VarDeclStmt.
type VarDecl struct {
	Span
	Type     TypeName
	Location int // NoToken when absent
	Name     int
}

// VarDeclStmt declares one or more variables, optionally tuple-destructured:
//
//	uint a = 1;
//	(uint a, , uint b) = f();
//
// Nil entries in Decls represent empty tuple slots.
type VarDeclStmt struct {
	Span
	Tuple bool
	Decls []*VarDecl
	Value Expr // nil when uninitialized
}

func (*Block) stmtNode()        {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*DoWhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()      {}
func (*TryStmt) stmtNode()      {}
func (*ReturnStmt) stmtNode()   {}
func (*EmitStmt) stmtNode()     {}
func (*RevertStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*AssemblyStmt) stmtNode() {}
func (*ExprStmt) stmtNode()     {}
func (*VarDeclStmt) stmtNode()  {}
