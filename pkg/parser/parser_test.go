package parser_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/solfmt/pkg/parser"
	"github.com/yaklabco/solfmt/pkg/solast"
)

func parse(t *testing.T, src string) *solast.FileSnapshot {
	t.Helper()
	snap, err := parser.Parse("test.sol", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return snap
}

func TestParse_PragmaAndImports(t *testing.T) {
	t.Parallel()

	src := `pragma solidity ^0.8.0;
import "lib/Token.sol";
import "lib/Token.sol" as Tok;
import * as utils from "lib/utils.sol";
import {IERC20, SafeERC20 as Safe} from "lib/interfaces.sol";
`
	snap := parse(t, src)

	if len(snap.Root.Items) != 5 {
		t.Fatalf("got %d items, want 5", len(snap.Root.Items))
	}

	pragma, ok := snap.Root.Items[0].(*solast.PragmaDirective)
	if !ok {
		t.Fatalf("item 0 is %T, want pragma", snap.Root.Items[0])
	}
	if snap.TokenText(pragma.Name) != "solidity" || snap.TokenText(pragma.Value) != "^0.8.0" {
		t.Errorf("pragma = %s %s", snap.TokenText(pragma.Name), snap.TokenText(pragma.Value))
	}

	plain := snap.Root.Items[1].(*solast.ImportDirective)
	if plain.Star || len(plain.Symbols) != 0 || plain.Alias != solast.NoToken {
		t.Errorf("plain import parsed as %+v", plain)
	}

	aliased := snap.Root.Items[2].(*solast.ImportDirective)
	if snap.TokenText(aliased.Alias) != "Tok" {
		t.Errorf("aliased import alias = %q", snap.TokenText(aliased.Alias))
	}

	star := snap.Root.Items[3].(*solast.ImportDirective)
	if !star.Star || snap.TokenText(star.Alias) != "utils" {
		t.Errorf("star import parsed as %+v", star)
	}

	syms := snap.Root.Items[4].(*solast.ImportDirective)
	if len(syms.Symbols) != 2 {
		t.Fatalf("got %d symbols, want 2", len(syms.Symbols))
	}
	if snap.TokenText(syms.Symbols[1].Name) != "SafeERC20" || snap.TokenText(syms.Symbols[1].Alias) != "Safe" {
		t.Errorf("aliased symbol = %+v", syms.Symbols[1])
	}
}

func TestParse_ContractShape(t *testing.T) {
	t.Parallel()

	src := `abstract contract Token is ERC20("n", "s"), Ownable {
    uint256 public supply;
    mapping(address => uint256) internal balances;

    event Transfer(address indexed from, address indexed to, uint256 value);
    error Insufficient(uint256 got);

    struct Checkpoint {
        uint64 block;
        uint192 value;
    }

    enum Phase { Open, Closed }
}
`
	snap := parse(t, src)

	contract, ok := snap.Root.Items[0].(*solast.ContractDef)
	if !ok {
		t.Fatalf("item 0 is %T, want contract", snap.Root.Items[0])
	}
	if !contract.Abstract || contract.Kind != solast.KindContract {
		t.Errorf("contract flags = abstract %v kind %v", contract.Abstract, contract.Kind)
	}
	if snap.TokenText(contract.Name) != "Token" {
		t.Errorf("name = %q", snap.TokenText(contract.Name))
	}

	if len(contract.Bases) != 2 {
		t.Fatalf("got %d bases, want 2", len(contract.Bases))
	}
	if !contract.Bases[0].HasParens || len(contract.Bases[0].Args) != 2 {
		t.Errorf("first base args = %+v", contract.Bases[0])
	}
	if contract.Bases[1].HasParens {
		t.Error("second base should have no parens")
	}

	wantMembers := []string{
		"*solast.StateVarDecl",
		"*solast.StateVarDecl",
		"*solast.EventDef",
		"*solast.ErrorDef",
		"*solast.StructDef",
		"*solast.EnumDef",
	}
	if len(contract.Members) != len(wantMembers) {
		t.Fatalf("got %d members, want %d", len(contract.Members), len(wantMembers))
	}
}

func TestParse_InterfaceAndLibrary(t *testing.T) {
	t.Parallel()

	snap := parse(t, "interface IThing { function f() external; }\nlibrary Lib {}\n")

	iface := snap.Root.Items[0].(*solast.ContractDef)
	if iface.Kind != solast.KindInterface {
		t.Errorf("kind = %v, want interface", iface.Kind)
	}
	fn := iface.Members[0].(*solast.FunctionDef)
	if fn.Body != nil {
		t.Error("interface function should have no body")
	}

	lib := snap.Root.Items[1].(*solast.ContractDef)
	if lib.Kind != solast.KindLibrary {
		t.Errorf("kind = %v, want library", lib.Kind)
	}
}

func TestParse_FunctionHeader(t *testing.T) {
	t.Parallel()

	src := `contract C {
    function swap(uint256 amountIn, address to) external payable onlyOwner returns (uint256 out, bool ok) {
        return (amountIn, true);
    }
}
`
	snap := parse(t, src)
	fn := snap.Root.Items[0].(*solast.ContractDef).Members[0].(*solast.FunctionDef)

	if fn.Kind != solast.KindFunction || snap.TokenText(fn.Name) != "swap" {
		t.Fatalf("fn = kind %v name %q", fn.Kind, snap.TokenText(fn.Name))
	}
	if len(fn.Params) != 2 || len(fn.Returns) != 2 {
		t.Errorf("params %d returns %d, want 2 and 2", len(fn.Params), len(fn.Returns))
	}
	if len(fn.Attributes) != 3 {
		t.Fatalf("got %d attributes, want 3", len(fn.Attributes))
	}
	if fn.Attributes[0].Kind != solast.AttrKeyword || fn.Attributes[2].Kind != solast.AttrModifier {
		t.Errorf("attribute kinds = %v %v %v",
			fn.Attributes[0].Kind, fn.Attributes[1].Kind, fn.Attributes[2].Kind)
	}
	if fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Error("body not parsed")
	}
}

func TestParse_SpecialFunctions(t *testing.T) {
	t.Parallel()

	src := `contract C {
    constructor(uint256 x) {}
    receive() external payable {}
    fallback() external {}
    modifier onlyOwner {
        _;
        }
}
`
	snap := parse(t, src)
	members := snap.Root.Items[0].(*solast.ContractDef).Members

	kinds := []solast.FunctionKind{
		solast.KindConstructor,
		solast.KindReceive,
		solast.KindFallback,
		solast.KindModifier,
	}
	for i, want := range kinds {
		fn, ok := members[i].(*solast.FunctionDef)
		if !ok {
			t.Fatalf("member %d is %T, want function", i, members[i])
		}
		if fn.Kind != want {
			t.Errorf("member %d kind = %v, want %v", i, fn.Kind, want)
		}
	}
}

func TestParse_Statements(t *testing.T) {
	t.Parallel()

	src := `contract C {
    function f(uint256 n) public returns (uint256) {
        uint256 total = 0;
        (uint256 a, , uint256 b) = (1, 2, 3);
        for (uint256 i = 0; i < n; i++) {
            if (i == 0) {
                continue;
            } else {
                break;
            }
        }
        while (total > 0) {
            total--;
        }
        do {
            total++;
        } while (total < 3);
        unchecked {
            total += 1;
        }
        try thing.call() returns (bool ok) {
            emit Done(ok);
        } catch Error(string memory reason) {
            revert Bad(reason);
        } catch {
            revert;
        }
        assembly {
            total := add(total, 1)
        }
        return total;
    }
}
`
	snap := parse(t, src)
	fn := snap.Root.Items[0].(*solast.ContractDef).Members[0].(*solast.FunctionDef)

	wantTypes := []any{
		&solast.VarDeclStmt{},
		&solast.VarDeclStmt{},
		&solast.ForStmt{},
		&solast.WhileStmt{},
		&solast.DoWhileStmt{},
		&solast.Block{},
		&solast.TryStmt{},
		&solast.AssemblyStmt{},
		&solast.ReturnStmt{},
	}
	if len(fn.Body.Stmts) != len(wantTypes) {
		t.Fatalf("got %d statements, want %d", len(fn.Body.Stmts), len(wantTypes))
	}

	tuple := fn.Body.Stmts[1].(*solast.VarDeclStmt)
	if !tuple.Tuple || len(tuple.Decls) != 3 || tuple.Decls[1] != nil {
		t.Errorf("tuple decl = %+v", tuple)
	}

	unchecked := fn.Body.Stmts[5].(*solast.Block)
	if !unchecked.Unchecked {
		t.Error("unchecked block not flagged")
	}

	try := fn.Body.Stmts[6].(*solast.TryStmt)
	if len(try.Catches) != 2 || len(try.Returns) != 1 {
		t.Errorf("try = %d catches, %d returns", len(try.Catches), len(try.Returns))
	}
	if snap.TokenText(try.Catches[0].Ident) != "Error" {
		t.Errorf("first catch ident = %q", snap.TokenText(try.Catches[0].Ident))
	}

	ifStmt := fn.Body.Stmts[2].(*solast.ForStmt).Body.(*solast.Block).Stmts[0].(*solast.IfStmt)
	if ifStmt.Else == nil {
		t.Error("else branch missing")
	}
}

func TestParse_ExpressionPrecedence(t *testing.T) {
	t.Parallel()

	src := "contract C { function f(uint256 a, uint256 b, uint256 c) public { uint256 x = a + b * c; } }"
	snap := parse(t, src)

	fn := snap.Root.Items[0].(*solast.ContractDef).Members[0].(*solast.FunctionDef)
	decl := fn.Body.Stmts[0].(*solast.VarDeclStmt)

	sum, ok := decl.Value.(*solast.BinaryExpr)
	if !ok {
		t.Fatalf("value is %T, want binary", decl.Value)
	}
	if snap.TokenText(sum.Op) != "+" {
		t.Fatalf("top operator = %q, want +", snap.TokenText(sum.Op))
	}
	prod, ok := sum.Right.(*solast.BinaryExpr)
	if !ok || snap.TokenText(prod.Op) != "*" {
		t.Errorf("right operand is %T, want the * expression", sum.Right)
	}
}

func TestParse_ExpressionForms(t *testing.T) {
	t.Parallel()

	src := `contract C {
    function f() public {
        x = cond ? left : right;
        y = arr[1][2:3];
        z = obj.method{value: 1, gas: 2}(a, b);
        w = new Thing(1);
        v = Payment({to: who, amount: 3});
        u = -delta + !flag ? 1 wei : 2 ether;
        del = uint8(n);
    }
}
`
	snap := parse(t, src)
	fn := snap.Root.Items[0].(*solast.ContractDef).Members[0].(*solast.FunctionDef)

	assign := func(i int) *solast.BinaryExpr {
		t.Helper()
		return fn.Body.Stmts[i].(*solast.ExprStmt).E.(*solast.BinaryExpr)
	}

	if _, ok := assign(0).Right.(*solast.TernaryExpr); !ok {
		t.Errorf("stmt 0 rhs is %T, want ternary", assign(0).Right)
	}
	if _, ok := assign(1).Right.(*solast.IndexRangeExpr); !ok {
		t.Errorf("stmt 1 rhs is %T, want index range", assign(1).Right)
	}

	call, ok := assign(2).Right.(*solast.CallExpr)
	if !ok {
		t.Fatalf("stmt 2 rhs is %T, want call", assign(2).Right)
	}
	if _, ok := call.Callee.(*solast.CallOptionsExpr); !ok {
		t.Errorf("callee is %T, want call options", call.Callee)
	}

	newCall, ok := assign(3).Right.(*solast.CallExpr)
	if !ok {
		t.Fatalf("stmt 3 rhs is %T, want call", assign(3).Right)
	}
	if _, ok := newCall.Callee.(*solast.NewExpr); !ok {
		t.Errorf("callee is %T, want new expression", newCall.Callee)
	}

	if _, ok := assign(4).Right.(*solast.NamedCallExpr); !ok {
		t.Errorf("stmt 4 rhs is %T, want named call", assign(4).Right)
	}
}

func TestParse_Types(t *testing.T) {
	t.Parallel()

	src := `contract C {
    mapping(address owner => mapping(uint256 => bool)) public nested;
    uint256[] internal dyn;
    bytes32[4] internal fixedArr;
    function(uint256) external returns (bool) internal fptr;
}
`
	snap := parse(t, src)
	members := snap.Root.Items[0].(*solast.ContractDef).Members

	m := members[0].(*solast.StateVarDecl)
	mt, ok := m.Type.(*solast.MappingType)
	if !ok {
		t.Fatalf("type is %T, want mapping", m.Type)
	}
	if snap.TokenText(mt.KeyName) != "owner" {
		t.Errorf("mapping key name = %q", snap.TokenText(mt.KeyName))
	}
	if _, ok := mt.Value.(*solast.MappingType); !ok {
		t.Errorf("nested mapping value is %T", mt.Value)
	}

	dyn := members[1].(*solast.StateVarDecl).Type.(*solast.ArrayType)
	if dyn.Len != nil {
		t.Error("dynamic array has a length")
	}
	sized := members[2].(*solast.StateVarDecl).Type.(*solast.ArrayType)
	if sized.Len == nil {
		t.Error("sized array lost its length")
	}
	if _, ok := members[3].(*solast.StateVarDecl).Type.(*solast.FunctionType); !ok {
		t.Errorf("member 3 type is %T, want function type", members[3].(*solast.StateVarDecl).Type)
	}
}

func TestParse_ContextualKeywordsAsNames(t *testing.T) {
	t.Parallel()

	// `from` and `global` carry meaning only in import and using-for
	// position; everywhere else they are ordinary identifiers.
	src := `using SafeCast for uint256 global;

contract C {
    function(uint256) internal pure fptr;

    function transferFrom(address from, address to, uint256 amount) external returns (bool) {
        uint256 global = amount;
        balances[from] -= global;
        balances[to] += global;
        return true;
    }
}
`
	snap := parse(t, src)

	using := snap.Root.Items[0].(*solast.UsingFor)
	if !using.Global {
		t.Error("using-for lost its global flag")
	}

	members := snap.Root.Items[1].(*solast.ContractDef).Members
	fptr := members[0].(*solast.StateVarDecl)
	if _, ok := fptr.Type.(*solast.FunctionType); !ok {
		t.Errorf("member 0 type is %T, want function type", fptr.Type)
	}
	if snap.TokenText(fptr.Name) != "fptr" {
		t.Errorf("member 0 name = %q", snap.TokenText(fptr.Name))
	}

	fn := members[1].(*solast.FunctionDef)
	if len(fn.Params) != 3 {
		t.Fatalf("got %d params, want 3", len(fn.Params))
	}
	if snap.TokenText(fn.Params[0].Name) != "from" || snap.TokenText(fn.Params[1].Name) != "to" {
		t.Errorf("param names = %q, %q", snap.TokenText(fn.Params[0].Name), snap.TokenText(fn.Params[1].Name))
	}
	if len(fn.Body.Stmts) != 4 {
		t.Errorf("got %d body statements, want 4", len(fn.Body.Stmts))
	}
}

func TestParse_FreeDeclarations(t *testing.T) {
	t.Parallel()

	src := `uint256 constant LIMIT = 100;
error Unauthorized();
type Price is uint128;
using SafeMath for uint256;
function freeHelper(uint256 x) pure returns (uint256) {
    return x + 1;
}
`
	snap := parse(t, src)

	wantTypes := []string{"constant", "error", "type", "using", "function"}
	if len(snap.Root.Items) != len(wantTypes) {
		t.Fatalf("got %d items, want %d", len(snap.Root.Items), len(wantTypes))
	}
	if _, ok := snap.Root.Items[0].(*solast.StateVarDecl); !ok {
		t.Errorf("item 0 is %T", snap.Root.Items[0])
	}
	if _, ok := snap.Root.Items[2].(*solast.TypeDef); !ok {
		t.Errorf("item 2 is %T", snap.Root.Items[2])
	}
	if _, ok := snap.Root.Items[4].(*solast.FunctionDef); !ok {
		t.Errorf("item 4 is %T", snap.Root.Items[4])
	}
}

func TestParse_ErrorReporting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"missing contract name", "contract { }"},
		{"missing semicolon", "contract C { uint256 x }"},
		{"unclosed brace", "contract C { function f() public {"},
		{"stray token", "contract C {} ]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parser.Parse("bad.sol", []byte(tt.src))
			if err == nil {
				t.Fatal("expected parse error")
			}
			var parseErr *parser.ParseError
			var lexErr *parser.LexError
			if !errors.As(err, &parseErr) && !errors.As(err, &lexErr) {
				t.Errorf("error type = %T", err)
			}
		})
	}
}

func TestParse_ErrorOffset(t *testing.T) {
	t.Parallel()

	src := "contract C {\n    uint256 x\n}\n"
	_, err := parser.Parse("bad.sol", []byte(src))
	var parseErr *parser.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	// The parser trips on the closing brace where the semicolon belonged.
	if parseErr.Offset <= 0 || parseErr.Offset > len(src) {
		t.Errorf("Offset = %d out of range", parseErr.Offset)
	}
}
