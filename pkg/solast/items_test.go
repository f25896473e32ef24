package solast_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/solfmt/pkg/parser"
	"github.com/yaklabco/solfmt/pkg/solast"
)

const walkSource = `pragma solidity ^0.8.0;

contract Token {
    uint256 internal supply;

    function mint(uint256 amount) public {
        if (amount > 0) {
            supply += amount;
        }
    }
}
`

func parseSnap(t *testing.T, src string) *solast.FileSnapshot {
	t.Helper()
	snap, err := parser.Parse("t.sol", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return snap
}

func TestWalkItems_SourceOrderParentsFirst(t *testing.T) {
	t.Parallel()

	snap := parseSnap(t, walkSource)

	var kinds []string
	solast.WalkItems(snap.Root, func(n solast.Node) bool {
		switch n.(type) {
		case *solast.PragmaDirective:
			kinds = append(kinds, "pragma")
		case *solast.ContractDef:
			kinds = append(kinds, "contract")
		case *solast.StateVarDecl:
			kinds = append(kinds, "statevar")
		case *solast.FunctionDef:
			kinds = append(kinds, "function")
		case *solast.Block:
			kinds = append(kinds, "block")
		case *solast.IfStmt:
			kinds = append(kinds, "if")
		case *solast.ExprStmt:
			kinds = append(kinds, "expr")
		default:
			kinds = append(kinds, "other")
		}
		return true
	})

	want := []string{"pragma", "contract", "statevar", "function", "block", "if", "block", "expr"}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visited %v, want %v", kinds, want)
		}
	}
}

func TestWalkItems_StopsEarly(t *testing.T) {
	t.Parallel()

	snap := parseSnap(t, walkSource)

	count := 0
	solast.WalkItems(snap.Root, func(solast.Node) bool {
		count++
		return count < 3
	})
	if count != 3 {
		t.Errorf("visited %d items after stop, want 3", count)
	}
}

func TestWalkItems_NilRoot(t *testing.T) {
	t.Parallel()

	called := false
	solast.WalkItems(nil, func(solast.Node) bool {
		called = true
		return true
	})
	if called {
		t.Error("callback invoked for nil root")
	}
}

func TestFindItemAt(t *testing.T) {
	t.Parallel()

	snap := parseSnap(t, walkSource)

	// An offset inside `supply += amount;` resolves to the innermost item,
	// the expression statement.
	offset := strings.Index(walkSource, "supply +=")
	n := solast.FindItemAt(snap, offset)
	if _, ok := n.(*solast.ExprStmt); !ok {
		t.Errorf("item at %d is %T, want expression statement", offset, n)
	}

	// An offset in the pragma resolves to the pragma.
	n = solast.FindItemAt(snap, strings.Index(walkSource, "solidity"))
	if _, ok := n.(*solast.PragmaDirective); !ok {
		t.Errorf("item is %T, want pragma", n)
	}

	// Offsets outside every item find nothing.
	if n := solast.FindItemAt(snap, len(walkSource)-1); n != nil {
		t.Errorf("item past last declaration = %T, want nil", n)
	}
}

func TestNodeRangeAndText(t *testing.T) {
	t.Parallel()

	snap := parseSnap(t, walkSource)

	pragma := snap.Root.Items[0]
	r := snap.NodeRange(pragma)
	if got := string(snap.NodeText(pragma)); got != "pragma solidity ^0.8.0;" {
		t.Errorf("NodeText = %q", got)
	}
	if r.StartOffset != 0 || r.Len() != len("pragma solidity ^0.8.0;") {
		t.Errorf("NodeRange = %+v", r)
	}

	if r := snap.NodeRange(nil); !r.IsEmpty() {
		t.Errorf("nil node range = %+v, want empty", r)
	}
}

func TestCountComments(t *testing.T) {
	t.Parallel()

	src := `// one
contract A {
    uint256 x; // two
    /* three */
    uint256 y;
}
`
	snap := parseSnap(t, src)
	if got := solast.CountComments(snap.Tokens); got != 3 {
		t.Errorf("CountComments = %d, want 3", got)
	}
}
