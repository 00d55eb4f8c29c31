// Package lexer implements the table-driven DFA scanner described by the
// mavn dialect: a 53-state machine over a 47-character alphabet, walked by
// maximal munch.
package lexer

import (
	"math/big"

	"mavn/core"
	et "mavn/core/errorkind"
	sv "mavn/core/severity"
	"mavn/token"
)

// Lexer scans one source file. Pos is the cursor's byte offset and
// Line/Col its current source position; Word is the token currently
// selected and Peeked the one-token lookahead, if any.
type Lexer struct {
	File  string
	Input string

	Pos, Line, Col int

	Word   *token.Token
	Peeked *token.Token
}

func NewLexer(filename, src string) *Lexer {
	return &Lexer{File: filename, Input: src}
}

func NewLexerError(l *Lexer, t et.ErrorKind, message string, rng *core.Range) *core.Error {
	return &core.Error{
		Code:     t,
		Severity: sv.Error,
		Location: &core.Location{File: l.File, Range: rng},
		Message:  message,
	}
}

// Next advances to the next non-whitespace token, skipping WHITESPACE
// tokens the way every caller is expected to.
func (l *Lexer) Next() *core.Error {
	if l.Peeked != nil {
		l.Word = l.Peeked
		l.Peeked = nil
		return nil
	}
	for {
		tok, err := l.scan()
		if err != nil {
			return err
		}
		if tok.Kind == token.WHITESPACE {
			continue
		}
		l.Word = tok
		return nil
	}
}

// Peek returns the next non-whitespace token without consuming it.
func (l *Lexer) Peek() (*token.Token, *core.Error) {
	if l.Peeked != nil {
		return l.Peeked, nil
	}
	for {
		tok, err := l.scan()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.WHITESPACE {
			continue
		}
		l.Peeked = tok
		return tok, nil
	}
}

func (l *Lexer) ReadAll() ([]*token.Token, *core.Error) {
	out := []*token.Token{}
	err := l.Next()
	if err != nil {
		return nil, err
	}
	for l.Word.Kind != token.EOF {
		out = append(out, l.Word)
		err = l.Next()
		if err != nil {
			return nil, err
		}
	}
	out = append(out, l.Word) // EOF itself
	return out, nil
}

// scan implements the maximal-munch contract: walk the DFA from the start
// state remembering the last accepting state and position; on no further
// legal transition, commit to that last accepting token (or emit a
// one-byte ERROR token if none was ever reached).
func (l *Lexer) scan() (*token.Token, *core.Error) {
	beginLine, beginCol := l.Line, l.Col
	beginPos := l.Pos

	if beginPos >= len(l.Input) {
		return l.finish(token.EOF, beginPos, beginPos, beginLine, beginCol, beginLine, beginCol), nil
	}

	state := startState
	acceptState := idleState
	acceptPos := beginPos
	acceptLine, acceptCol := beginLine, beginCol

	pos, line, col := beginPos, beginLine, beginCol
	for pos < len(l.Input) {
		ch := l.Input[pos]
		c := classify(ch)
		next := deadState
		if c >= 0 {
			next = delta[state][c]
		}
		if next == deadState {
			break
		}
		// guard against the pathological case of re-entering the start
		// state mid-scan: the table never does this by construction, but
		// a corrupted table should fail loudly rather than loop forever.
		if next == startState && state == startState {
			break
		}
		pos++
		if ch == '\n' {
			line++
			col = 0
		} else {
			col++
		}
		state = next
		if stateToToken[state] != token.INVALID {
			acceptState = state
			acceptPos = pos
			acceptLine, acceptCol = line, col
		}
	}

	if acceptState != idleState {
		return l.finish(stateToToken[acceptState], beginPos, acceptPos, beginLine, beginCol, acceptLine, acceptCol), nil
	}

	// no accepting prefix: emit ERROR, consuming exactly one byte.
	errPos := beginPos + 1
	errLine, errCol := beginLine, beginCol
	if l.Input[beginPos] == '\n' {
		errLine++
		errCol = 0
	} else {
		errCol++
	}
	tok := l.finish(token.ERROR, beginPos, errPos, beginLine, beginCol, errLine, errCol)
	return tok, NewLexerError(l, et.LexInvalidSymbol,
		"invalid symbol: "+tok.Text, tok.Range)
}

func (l *Lexer) finish(kind token.Kind, beginPos, endPos, beginLine, beginCol, endLine, endCol int) *token.Token {
	l.Pos, l.Line, l.Col = endPos, endLine, endCol
	text := l.Input[beginPos:endPos]
	tok := &token.Token{
		Kind: kind,
		Text: text,
		Range: &core.Range{
			Begin: core.Position{Line: beginLine, Column: beginCol},
			End:   core.Position{Line: endLine, Column: endCol},
		},
	}
	switch kind {
	case token.NUM:
		tok.Value, _ = new(big.Int).SetString(text, 10)
	case token.MEMID, token.REGID:
		tok.Value, _ = new(big.Int).SetString(text[1:], 10)
	}
	return tok
}
