// Package parser turns Solidity source bytes into solast trees.
// It contains the trivia-preserving lexer and a recursive-descent parser
// covering the full surface grammar. Neither performs any semantic checking:
// the only question answered here is whether the input parses.
package parser

import "fmt"

// LexError reports a fatal lexing failure, such as an unterminated string or
// block comment. Offset is the exact byte position of the problem.
type LexError struct {
	Offset  int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Message)
}

// ParseError reports an unexpected token or end of file. The parser does not
// attempt recovery; callers skip the whole file on error.
type ParseError struct {
	Offset   int
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: expected %s, found %s", e.Offset, e.Expected, e.Found)
}
