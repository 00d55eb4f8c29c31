// Package token defines the terminal vocabulary produced by the lexer.
package token

import (
	"math/big"

	"mavn/core"
)

// Kind is a closed tagged variant: one entry per DFA final state maps
// directly to one of these, plus the two sentinels (EOF, ERROR) that the
// lexer produces outside the transition table.
type Kind int

const (
	INVALID Kind = iota

	IDENT  // plain identifier
	MEMID  // m<digits>
	REGID  // r<digits>
	NUM    // integer literal

	MEM  // _mem
	REG  // _reg
	FUNC // _func

	ADD
	ADDI
	SUB
	LA
	LI
	LW
	SW
	BLTZ
	B
	NOP
	AND
	OR
	NOT
	BNE

	COMMA
	LPAREN
	RPAREN
	COLON
	SEMI

	COMMENT
	WHITESPACE

	EOF
	ERROR
)

var names = map[Kind]string{
	INVALID:    "invalid",
	IDENT:      "ident",
	MEMID:      "mem-id",
	REGID:      "reg-id",
	NUM:        "num",
	MEM:        "_mem",
	REG:        "_reg",
	FUNC:       "_func",
	ADD:        "add",
	ADDI:       "addi",
	SUB:        "sub",
	LA:         "la",
	LI:         "li",
	LW:         "lw",
	SW:         "sw",
	BLTZ:       "bltz",
	B:          "b",
	NOP:        "nop",
	AND:        "and",
	OR:         "or",
	NOT:        "not",
	BNE:        "bne",
	COMMA:      ",",
	LPAREN:     "(",
	RPAREN:     ")",
	COLON:      ":",
	SEMI:       ";",
	COMMENT:    "comment",
	WHITESPACE: "whitespace",
	EOF:        "eof",
	ERROR:      "error",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// Token is a single lexeme: its kind, the exact text it was spelled with,
// the source range it spans, and (for NUM/MEMID/REGID) the parsed integer
// value.
type Token struct {
	Kind  Kind
	Text  string
	Range *core.Range
	Value *big.Int
}

func (t *Token) String() string {
	return t.Kind.String() + " " + t.Text
}
