package format_test

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/yaklabco/solfmt/pkg/config"
	"github.com/yaklabco/solfmt/pkg/format"
)

func fmtSource(t *testing.T, src string, cfg *config.Config) string {
	t.Helper()
	out, err := format.Source("test.sol", []byte(src), cfg)
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}
	return out
}

func TestSource_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := fmtSource(t, "", nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := fmtSource(t, "\n\n", nil); got != "" {
		t.Errorf("whitespace-only input: got %q, want empty", got)
	}
}

func TestSource_CanonicalInputIsStable(t *testing.T) {
	t.Parallel()

	src := "pragma solidity ^0.8.0;\ncontract A {}\n"
	if got := fmtSource(t, src, nil); got != src {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestSource_NormalizesSpacing(t *testing.T) {
	t.Parallel()

	src := "pragma    solidity   ^0.8.0;\ncontract A {   }\n"
	want := "pragma solidity ^0.8.0;\ncontract A {}\n"
	if got := fmtSource(t, src, nil); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSource_ContractMembersIndented(t *testing.T) {
	t.Parallel()

	src := "contract A { uint x; }\n"
	want := "contract A {\n    uint256 x;\n}\n"
	if got := fmtSource(t, src, nil); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSource_EnumFlatWhenItFits(t *testing.T) {
	t.Parallel()

	src := "enum Direction {North,South,East,West}\n"
	want := "enum Direction { North, South, East, West }\n"
	if got := fmtSource(t, src, nil); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSource_EnumBreaksWhenNarrow(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LineLength = 20

	src := "enum Direction { North, South, East, West }\n"
	want := "enum Direction {\n    North,\n    South,\n    East,\n    West\n}\n"
	if got := fmtSource(t, src, cfg); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSource_FunctionSignatureFlat(t *testing.T) {
	t.Parallel()

	src := "contract A { function f( uint a ) public returns ( uint ) { return a; } }\n"
	want := "contract A {\n" +
		"    function f(uint256 a) public returns (uint256) {\n" +
		"        return a;\n" +
		"    }\n" +
		"}\n"
	if got := fmtSource(t, src, nil); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSource_LongSignatureBreaks(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LineLength = 40

	src := "contract A { function f(uint256 a) public returns (uint256) { return a; } }\n"
	got := fmtSource(t, src, cfg)

	if !strings.Contains(got, "\n        public\n") {
		t.Errorf("attributes not broken onto their own lines:\n%s", got)
	}
	if !strings.Contains(got, "\n        returns (uint256)\n") {
		t.Errorf("returns clause not broken onto its own line:\n%s", got)
	}
	if !strings.Contains(got, "\n    {\n") {
		t.Errorf("opening brace not dropped to its own line:\n%s", got)
	}
	assertWidth(t, got, cfg.LineLength)
}

func TestSource_IntTypeNormalization(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.IntTypes = config.IntTypesShort

	src := "contract A { uint256 x; int256 y; uint8 z; }\n"
	got := fmtSource(t, src, cfg)

	for _, want := range []string{"uint x;", "int y;", "uint8 z;"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSource_QuoteNormalization(t *testing.T) {
	t.Parallel()

	src := "import 'lib/Token.sol';\n"
	want := "import \"lib/Token.sol\";\n"
	if got := fmtSource(t, src, nil); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSource_NumberUnderscoreThousands(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.NumberUnderscore = config.UnderscoreThousands

	src := "uint256 constant SUPPLY = 1000000;\n"
	want := "uint256 constant SUPPLY = 1_000_000;\n"
	if got := fmtSource(t, src, cfg); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSource_BracketSpacing(t *testing.T) {
	t.Parallel()

	src := "import {A, B} from \"x.sol\";\n"

	if got := fmtSource(t, src, nil); !strings.Contains(got, "{A, B}") {
		t.Errorf("default spacing: got %q", got)
	}

	cfg := config.Default()
	cfg.BracketSpacing = true
	if got := fmtSource(t, src, cfg); !strings.Contains(got, "{ A, B }") {
		t.Errorf("bracket_spacing on: got %q", got)
	}
}

func TestSource_CommentsPreserved(t *testing.T) {
	t.Parallel()

	src := `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.0;

/* The main token. */
contract Token {
    uint256 x; // slot zero
}
`
	got := fmtSource(t, src, nil)

	for _, want := range []string{
		"// SPDX-License-Identifier: MIT",
		"/* The main token. */",
		"uint256 x; // slot zero",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSource_BlankLinesCollapse(t *testing.T) {
	t.Parallel()

	src := "pragma solidity ^0.8.0;\n\n\n\ncontract A {}\n"
	want := "pragma solidity ^0.8.0;\n\ncontract A {}\n"
	if got := fmtSource(t, src, nil); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSource_DisableNextLineKeepsBytes(t *testing.T) {
	t.Parallel()

	src := "// forgefmt: disable-next-line\npragma   solidity    ^0.8.0;\ncontract A {}\n"
	got := fmtSource(t, src, nil)

	if !strings.Contains(got, "// forgefmt: disable-next-line") {
		t.Errorf("directive comment dropped:\n%s", got)
	}
	if !strings.Contains(got, "pragma   solidity    ^0.8.0;") {
		t.Errorf("disabled line was reformatted:\n%s", got)
	}
}

func TestSource_DisableRegionKeepsBytes(t *testing.T) {
	t.Parallel()

	src := `contract A {
    function f(uint256 x) public {
        // forgefmt: disable-start
        do { x -- ; } while( x > 0 ) ;
        // forgefmt: disable-end
        x = x + 1;
    }
}
`
	got := fmtSource(t, src, nil)

	if !strings.Contains(got, "do { x -- ; } while( x > 0 ) ;") {
		t.Errorf("disabled statement was reformatted:\n%s", got)
	}
	if !strings.Contains(got, "x = x + 1;") {
		t.Errorf("statement after the region not formatted:\n%s", got)
	}
}

func TestSource_DisabledMemberKeepsBytesFollowingIsFormatted(t *testing.T) {
	t.Parallel()

	src := `contract A {
    // forgefmt: disable-start
    uint256  constant   WEIRD = 1 ;
    // forgefmt: disable-end
    uint x;
}
`
	got := fmtSource(t, src, nil)

	if !strings.Contains(got, "uint256  constant   WEIRD = 1 ;") {
		t.Errorf("disabled member was reformatted:\n%s", got)
	}
	if !strings.Contains(got, "uint256 x;") {
		t.Errorf("member after the region not formatted:\n%s", got)
	}
}

func TestSource_UnterminatedDisableStartRunsToEOF(t *testing.T) {
	t.Parallel()

	src := "pragma solidity ^0.8.0;\n// forgefmt: disable-start\ncontract   Weird{uint x ;}\n"
	got := fmtSource(t, src, nil)

	if !strings.Contains(got, "contract   Weird{uint x ;}") {
		t.Errorf("code after unterminated disable-start was reformatted:\n%s", got)
	}
}

func TestSource_DisabledHeaderLineMakesFunctionVerbatim(t *testing.T) {
	t.Parallel()

	// The target line is part of the signature, outside any statement
	// list, so the whole function is reproduced from the input bytes.
	src := `contract C {
    function transfer(
        // forgefmt: disable-next-line
        address   to,
        uint256 amount
    ) external {
        emit Moved(to, amount);
    }
}
`
	got := fmtSource(t, src, nil)

	if got != src {
		t.Errorf("got:\n%s\nwant input unchanged:\n%s", got, src)
	}
	if n := strings.Count(got, "address   to"); n != 1 {
		t.Errorf("disabled line appears %d times, want 1:\n%s", n, got)
	}
}

func TestSource_DisabledConditionLineMakesStatementVerbatim(t *testing.T) {
	t.Parallel()

	src := `contract C {
    function f(uint256 x) public pure returns (uint256) {
        if (
            // forgefmt: disable-next-line
            x  ==  1
        ) {
            return 2;
        }
        return x;
    }
}
`
	got := fmtSource(t, src, nil)

	if got != src {
		t.Errorf("got:\n%s\nwant input unchanged:\n%s", got, src)
	}
	if n := strings.Count(got, "x  ==  1"); n != 1 {
		t.Errorf("disabled line appears %d times, want 1:\n%s", n, got)
	}
}

func TestSource_StructAndEnumCommentsPreserved(t *testing.T) {
	t.Parallel()

	src := `contract C {
    struct Position {
        // size in wei
        uint256 size;
        uint256 margin; // trailing
    }

    enum Phase {
        // first
        Open,
        Closed // last
    }
}
`
	if got := fmtSource(t, src, nil); got != src {
		t.Errorf("got:\n%s\nwant input unchanged:\n%s", got, src)
	}
}

func TestSource_ExpressionCommentMovesAboveStatement(t *testing.T) {
	t.Parallel()

	src := `contract C {
    function f(uint256 a, uint256 b) public pure returns (uint256) {
        return a + // carry
            b;
    }
}
`
	want := `contract C {
    function f(uint256 a, uint256 b) public pure returns (uint256) {
        // carry
        return a + b;
    }
}
`
	if got := fmtSource(t, src, nil); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSource_AssemblyBodyNotReformatted(t *testing.T) {
	t.Parallel()

	src := `contract A {
    function f() public pure returns (uint256 r) {
        assembly {
            r := add(1,   2)
        }
    }
}
`
	got := fmtSource(t, src, nil)

	if !strings.Contains(got, "r := add(1,   2)") {
		t.Errorf("assembly body was reformatted:\n%s", got)
	}
}

func TestSource_ParseErrorHasPosition(t *testing.T) {
	t.Parallel()

	_, err := format.Source("bad.sol", []byte("contract {\n"), nil)
	if err == nil {
		t.Fatal("expected error for invalid input")
	}

	var fe *format.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FormatError", err)
	}
	if fe.Path != "bad.sol" {
		t.Errorf("Path = %q, want bad.sol", fe.Path)
	}
	if fe.Line != 1 || fe.Col < 1 {
		t.Errorf("position = %d:%d, want line 1", fe.Line, fe.Col)
	}
	if !strings.HasPrefix(fe.Error(), "bad.sol:1:") {
		t.Errorf("Error() = %q", fe.Error())
	}
}

func TestSource_EndsWithSingleNewline(t *testing.T) {
	t.Parallel()

	sources := []string{
		"contract A {}",
		"contract A {}\n",
		"contract A {}\n\n\n",
	}
	for _, src := range sources {
		got := fmtSource(t, src, nil)
		if !strings.HasSuffix(got, "\n") || strings.HasSuffix(got, "\n\n") {
			t.Errorf("input %q: output %q does not end in exactly one newline", src, got)
		}
	}
}

// idempotenceSources is a spread of language constructs used to check that
// formatting its own output changes nothing.
var idempotenceSources = map[string]string{
	"pragma and imports": `pragma solidity ^0.8.0;
import "lib/Token.sol";
import {IERC20, SafeERC20} from "lib/interfaces.sol";
import * as utils from "lib/utils.sol";
`,
	"contract with inheritance": `abstract contract Token is ERC20("name", "sym"), Ownable {
    uint256 internal supply;
}
`,
	"functions and modifiers": `contract Vault {
    modifier onlyOwner() {
        require(msg.sender == owner, "not owner");
        _;
    }

    function deposit(uint256 amount) external payable onlyOwner returns (bool) {
        balances[msg.sender] += amount;
        return true;
    }

    receive() external payable {}
}
`,
	"statements": `contract C {
    function f(uint256 n) public returns (uint256) {
        uint256 total = 0;
        for (uint256 i = 0; i < n; i++) {
            if (i % 2 == 0) {
                total += i;
            } else if (i > 10) {
                break;
            } else {
                continue;
            }
        }
        while (total > 100) {
            total -= 7;
        }
        do {
            total++;
        } while (total < 10);
        return total;
    }
}
`,
	"types and structs": `contract C {
    struct Position {
        uint256 size;
        int256 funding;
        address owner;
    }

    enum Phase { Open, Locked, Settled }

    mapping(address => mapping(uint256 => Position)) internal positions;
    uint256[] internal ids;
    event Opened(address indexed who, uint256 size);
    error TooSmall(uint256 got, uint256 min);
}
`,
	"comments and directives": `// top comment
pragma solidity ^0.8.0;

contract C {
    // forgefmt: disable-next-line
    uint256   constant  ODD = 1;
    uint256 constant EVEN = 2; // trailing
}
`,
	"expressions": `contract C {
    function g(uint256 a, uint256 b) public pure returns (uint256) {
        uint256 x = a > b ? a - b : b - a;
        (uint256 lo, uint256 hi) = (x / 2, x * 2);
        return lo + hi + uint256(keccak256(abi.encode(a, b))) % 10;
    }
}
`,
}

func TestSource_Idempotent(t *testing.T) {
	t.Parallel()

	for name, src := range idempotenceSources {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			once := fmtSource(t, src, nil)
			twice := fmtSource(t, once, nil)
			if once != twice {
				t.Errorf("second pass changed the output:\nfirst:\n%s\nsecond:\n%s", once, twice)
			}
		})
	}
}

func TestSource_RespectsWidth(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LineLength = 60

	src := `contract Vault {
    function transferFrom(address sender, address recipient, uint256 amount, bytes calldata data) external returns (bool success) {
        emit Transfer(sender, recipient, amount, data, block.timestamp);
        return registry.checkAndRecord(sender, recipient, amount);
    }
}
`
	got := fmtSource(t, src, cfg)
	assertWidth(t, got, cfg.LineLength)
}

// assertWidth fails if any output line exceeds the width limit.
func assertWidth(t *testing.T, out string, width int) {
	t.Helper()
	for i, line := range strings.Split(out, "\n") {
		if utf8.RuneCountInString(line) > width {
			t.Errorf("line %d exceeds width %d: %q", i+1, width, line)
		}
	}
}
