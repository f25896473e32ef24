package solast

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// IdentExpr is a plain identifier reference.
type IdentExpr struct {
	Span
	Tok int
}

// LiteralKind classifies literal expressions.
type LiteralKind uint8

const (
	LitNumber LiteralKind = iota
	LitString
	LitHexString
	LitUnicodeString
	LitBool
)

// LiteralExpr is a literal. The token spelling is authoritative: digit
// separators, quote characters, and exponent case are preserved there.
// Unit is the token index of a denomination suffix (wei, ether, days, ...)
// or NoToken.
type LiteralExpr struct {
	Span
	Kind LiteralKind
	Tok  int
	Unit int
}

// ElementaryTypeExpr wraps an elementary type used in expression position,
// as in `uint(8)`, `address(0)`, or `payable(x)`.
type ElementaryTypeExpr struct {
	Span
	Type *ElementaryType
}

// BinaryExpr covers binary operators and assignments; Op is the operator
// token index. Exponentiation and assignments associate to the right.
type BinaryExpr struct {
	Span
	Left  Expr
	Op    int
	Right Expr
}

// UnaryExpr is a prefix or postfix unary operation.
type UnaryExpr struct {
	Span
	Op      int
	Operand Expr
	Prefix  bool
}

// TernaryExpr is `cond ? a : b`.
type TernaryExpr struct {
	Span
	Cond Expr
	Then Expr
	Else Expr
}

// CallExpr is a positional call `f(a, b)`.
type CallExpr struct {
	Span
	Callee Expr
	Args   []Expr
}

// NamedArg is one `name: value` pair.
type NamedArg struct {
	Span
	Name  int
	Value Expr
}

// NamedCallExpr is a named-argument call `f({a: 1, b: 2})`.
// Arguments keep declaration order; they are never sorted.
type NamedCallExpr struct {
	Span
	Callee Expr
	Args   []*NamedArg
}

// CallOptionsExpr is the `f{value: 1, gas: g}` options block preceding a
// call's argument list.
type CallOptionsExpr struct {
	Span
	Callee  Expr
	Options []*NamedArg
}

// IndexExpr is `base[index]`; Index is nil for the bare `base[]` form that
// appears in type-like expression contexts.
type IndexExpr struct {
	Span
	Base  Expr
	Index Expr
}

// IndexRangeExpr is `base[start:end]`; either bound may be nil.
type IndexRangeExpr struct {
	Span
	Base  Expr
	Start Expr
	End   Expr
}

// MemberExpr is `base.member`.
type MemberExpr struct {
	Span
	Base   Expr
	Member int
}

// TupleExpr is a parenthesized tuple `(a, , b)` or an inline array `[a, b]`.
// Nil elements represent empty slots (tuple form only).
type TupleExpr struct {
	Span
	Array bool
	Elems []Expr
}

// NewExpr is `new T`.
type NewExpr struct {
	Span
	Type TypeName
}

func (*IdentExpr) exprNode()          {}
func (*LiteralExpr) exprNode()        {}
func (*ElementaryTypeExpr) exprNode() {}
func (*BinaryExpr) exprNode()         {}
func (*UnaryExpr) exprNode()          {}
func (*TernaryExpr) exprNode()        {}
func (*CallExpr) exprNode()           {}
func (*NamedCallExpr) exprNode()      {}
func (*CallOptionsExpr) exprNode()    {}
func (*IndexExpr) exprNode()          {}
func (*IndexRangeExpr) exprNode()     {}
func (*MemberExpr) exprNode()         {}
func (*TupleExpr) exprNode()          {}
func (*NewExpr) exprNode()            {}
