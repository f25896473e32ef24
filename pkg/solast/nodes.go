package solast

// Node is implemented by every parse tree node. Nodes reference the token
// stream by index and never own source text, so the tree carries no copies
// of input bytes.
type Node interface {
	// FirstTok returns the index of the node's first token.
	FirstTok() int
	// LastTok returns the index of the node's last token.
	LastTok() int
}

// Decl is implemented by source-unit and contract-level declarations.
type Decl interface {
	Node
	declNode()
}

// Span holds the first and last token index of a node. Embedded by every
// concrete node type.
type Span struct {
	First int
	Last  int
}

// FirstTok returns the index of the node's first token.
func (s Span) FirstTok() int { return s.First }

// LastTok returns the index of the node's last token.
func (s Span) LastTok() int { return s.Last }

// NoToken marks an absent optional token slot.
const NoToken = -1

// SourceUnit is the root node: an ordered list of top-level declarations.
type SourceUnit struct {
	Span
	Items []Decl
}

// PragmaDirective is `pragma <name> <value>;`.
// Value is the index of a single TokPragmaText token holding everything
// between the pragma name and the semicolon, spelled exactly as written.
type PragmaDirective struct {
	Span
	Name  int
	Value int // NoToken when the pragma has no value
}

// ImportSymbol is one `A` or `A as B` entry in a symbol import.
type ImportSymbol struct {
	Name  int
	Alias int // NoToken when not aliased
}

// ImportDirective covers all import forms:
//
//	import "path";
//	import "path" as Alias;
//	import * as Alias from "path";
//	import {A, B as C} from "path";
type ImportDirective struct {
	Span
	Path    int // TokString token of the path
	Alias   int // NoToken unless `as Alias` / `* as Alias`
	Star    bool
	Symbols []ImportSymbol
	HasFrom bool
}

// ContractKind distinguishes contract-like declarations.
type ContractKind uint8

const (
	KindContract ContractKind = iota
	KindInterface
	KindLibrary
)

// InheritanceSpecifier is one base in a `contract X is A, B(1, 2)` list.
type InheritanceSpecifier struct {
	Span
	Name      *IdentPath
	Args      []Expr
	HasParens bool
}

// ContractDef is a contract, interface, or library declaration.
type ContractDef struct {
	Span
	Kind     ContractKind
	Abstract bool
	Name     int
	Bases    []*InheritanceSpecifier
	Members  []Decl
}

// UsingFor is `using A for B;`, `using {f, g} for B global;`, or
// `using A for *;`.
type UsingFor struct {
	Span
	Library   *IdentPath   // nil when the brace-list form is used
	Functions []*IdentPath // brace-list form
	Target    TypeName     // nil for `*`
	Global    bool
}

// StateVarDecl is a contract-level variable declaration.
// Attributes holds visibility/mutability/override tokens in source order.
type StateVarDecl struct {
	Span
	Type       TypeName
	Attributes []VarAttribute
	Name       int
	Value      Expr // nil when uninitialized
}

// VarAttribute is a single attribute on a state variable, e.g. `public`,
// `constant`, `immutable`, or `override(A, B)`.
type VarAttribute struct {
	Span
	Keyword int
	Args    []*IdentPath // only for override(...)
}

// ParamLocation mirrors the optional data-location keyword on a parameter.
type Param struct {
	Span
	Type     TypeName
	Location int // TokKeyword index of memory/storage/calldata, or NoToken
	Indexed  bool
	Name     int // NoToken for unnamed parameters
}

// FunctionKind distinguishes function-like declarations.
type FunctionKind uint8

const (
	KindFunction FunctionKind = iota
	KindConstructor
	KindFallback
	KindReceive
	KindModifier
)

// FuncAttrKind classifies one attribute in a function header.
type FuncAttrKind uint8

const (
	// AttrKeyword is a bare keyword: visibility, mutability, virtual.
	AttrKeyword FuncAttrKind = iota
	// AttrOverride is `override` or `override(A, B)`.
	AttrOverride
	// AttrModifier is a modifier invocation, with or without arguments.
	AttrModifier
)

// FuncAttr is one attribute in a function header, in source order.
type FuncAttr struct {
	Span
	Kind    FuncAttrKind
	Keyword int          // AttrKeyword/AttrOverride keyword token
	Name    *IdentPath   // AttrModifier name
	Args    []Expr       // AttrModifier arguments; nil when call-less
	Paths   []*IdentPath // AttrOverride list
	Called  bool         // AttrModifier had parentheses
}

// FunctionDef is a function, constructor, fallback, receive, or modifier.
type FunctionDef struct {
	Span
	Kind       FunctionKind
	Name       int // NoToken for constructor/fallback/receive
	Params     []*Param
	Attributes []*FuncAttr
	Returns    []*Param
	Body       *Block // nil when declared with a semicolon
}

// StructField is one field inside a struct declaration.
type StructField struct {
	Span
	Type TypeName
	Name int
}

// StructDef is a struct declaration.
type StructDef struct {
	Span
	Name   int
	Fields []*StructField
}

// EnumDef is an enum declaration; members are identifier token indices.
type EnumDef struct {
	Span
	Name    int
	Members []int
}

// ErrorDef is a custom error declaration.
type ErrorDef struct {
	Span
	Name   int
	Params []*Param
}

// EventDef is an event declaration.
type EventDef struct {
	Span
	Name      int
	Params    []*Param
	Anonymous bool
}

// TypeDef is a user-defined value type: `type Price is uint128;`.
type TypeDef struct {
	Span
	Name       int
	Underlying TypeName
}

func (*PragmaDirective) declNode() {}
func (*ImportDirective) declNode() {}
func (*ContractDef) declNode()     {}
func (*UsingFor) declNode()        {}
func (*StateVarDecl) declNode()    {}
func (*FunctionDef) declNode()     {}
func (*StructDef) declNode()       {}
func (*EnumDef) declNode()         {}
func (*ErrorDef) declNode()        {}
func (*EventDef) declNode()        {}
func (*TypeDef) declNode()         {}

// TypeName is implemented by all type syntax nodes.
type TypeName interface {
	Node
	typeNode()
}

// ElementaryType is a builtin type like uint256, address, or bytes32.
// Payable is set for `address payable`.
type ElementaryType struct {
	Span
	Tok     int
	Payable bool
}

// UserType is a possibly-dotted user-defined type reference.
type UserType struct {
	Span
	Path *IdentPath
}

// MappingType is `mapping(Key [name] => Value [name])`.
type MappingType struct {
	Span
	Key       TypeName
	KeyName   int // NoToken unless the key is named
	Value     TypeName
	ValueName int
}

// ArrayType is `Base[]` or `Base[len]`.
type ArrayType struct {
	Span
	Base TypeName
	Len  Expr // nil for dynamic arrays
}

// FunctionType is a function type: `function(...) attrs returns (...)`.
type FunctionType struct {
	Span
	Params     []*Param
	Attributes []*FuncAttr
	Returns    []*Param
}

func (*ElementaryType) typeNode() {}
func (*UserType) typeNode()       {}
func (*MappingType) typeNode()    {}
func (*ArrayType) typeNode()      {}
func (*FunctionType) typeNode()   {}

// IdentPath is a dot-separated identifier path; Toks holds the identifier
// token indices only, dots are implied between consecutive entries.
type IdentPath struct {
	Span
	Toks []int
}
