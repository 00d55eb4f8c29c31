package lexer

import "mavn/token"

// The DFA has a fixed 47-character input alphabet (state 0 is idle, state
// 1 is start), and -1 marks "no legal transition" (the invalid state).
// The exact state count falls out of the keyword list below rather than
// being a literal; it lands at 53 for the current mnemonic set. The table
// itself is otherwise exactly the contract described for the dialect: a
// transition matrix walked by maximal munch. stateToToken[state] gives
// the token kind a state accepts as, or
// token.INVALID if the state is not final. delta[state][col] gives the
// next state for the column produced by classify. Both tables are built
// once at package init from the keyword list below and never mutated
// again; Lexer.scan only ever reads them.
const (
	idleState  = 0
	startState = 1
	deadState  = -1

	numCols = 47
)

var stateToToken []token.Kind
var delta [][numCols]int
var numStates int

// classify maps a raw input byte to its column in the transition table, or
// -1 if the byte has no column (triggers the invalid state).
func classify(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'z':
		return 10 + int(b-'a')
	case b == '_':
		return 36
	case b == ',':
		return 37
	case b == '(':
		return 38
	case b == ')':
		return 39
	case b == ':':
		return 40
	case b == ';':
		return 41
	case b == '#':
		return 42
	case b == ' ':
		return 43
	case b == '\t':
		return 44
	case b == '\n':
		return 45
	case b == '-':
		return 46
	}
	return -1
}

const colNewline = 45
const colMinus = 46

func isIdentCol(col int) bool {
	return col >= 0 && (col <= 9 || (col >= 10 && col <= 35) || col == 36)
}

func isDigitCol(col int) bool {
	return col >= 0 && col <= 9
}

func isWhitespaceCol(col int) bool {
	return col == 43 || col == 44 || col == 45
}

// builder grows the state table one node at a time. It exists only at
// package init time; Lexer.scan never sees it.
type builder struct {
	trans [][numCols]int
	kind  []token.Kind
}

func (b *builder) newState(k token.Kind) int {
	var row [numCols]int
	for i := range row {
		row[i] = deadState
	}
	b.trans = append(b.trans, row)
	b.kind = append(b.kind, k)
	return len(b.trans) - 1
}

func (b *builder) setEdge(from, col, to int) {
	b.trans[from][col] = to
}

// keywords lists every reserved word in the dialect. The declaration
// keywords carry their underscore per the literal token spelling confirmed
// against the seed programs; instruction mnemonics do not.
var keywords = []struct {
	word string
	kind token.Kind
}{
	{"_mem", token.MEM},
	{"_reg", token.REG},
	{"_func", token.FUNC},
	{"add", token.ADD},
	{"addi", token.ADDI},
	{"sub", token.SUB},
	{"la", token.LA},
	{"li", token.LI},
	{"lw", token.LW},
	{"sw", token.SW},
	{"bltz", token.BLTZ},
	{"b", token.B},
	{"nop", token.NOP},
	{"and", token.AND},
	{"or", token.OR},
	{"not", token.NOT},
	{"bne", token.BNE},
}

func build() {
	b := &builder{}

	b.newState(token.INVALID) // idle, state 0
	start := b.newState(token.INVALID)

	identCont := b.newState(token.IDENT)
	digitRun := b.newState(token.NUM)
	afterM := b.newState(token.IDENT)
	memIDRun := b.newState(token.MEMID)
	afterR := b.newState(token.IDENT)
	regIDRun := b.newState(token.REGID)

	comma := b.newState(token.COMMA)
	lparen := b.newState(token.LPAREN)
	rparen := b.newState(token.RPAREN)
	colon := b.newState(token.COLON)
	semi := b.newState(token.SEMI)

	comment := b.newState(token.COMMENT)
	whitespace := b.newState(token.WHITESPACE)
	negative := b.newState(token.INVALID) // seen '-', not yet a digit

	fixed := map[int]bool{
		identCont: true, digitRun: true, memIDRun: true,
		regIDRun: true, comma: true, lparen: true,
		rparen: true, colon: true, semi: true, comment: true,
		whitespace: true, negative: true,
	}

	// keyword trie, grown edge-by-edge from start, built before start or
	// identCont carry any default or self-loop edge. While start's row is
	// still every-column-dead, the only way b.trans[cur][col] can be
	// non-dead below is a shared keyword prefix (e.g. "add"/"addi",
	// "nop"/"not" reusing the same intermediate node), so every first
	// branch off start is a freshly allocated trie state, never a
	// fallback edge installed for some other purpose.
	for _, kw := range keywords {
		cur := start
		for i := 0; i < len(kw.word); i++ {
			col := classify(kw.word[i])
			next := b.trans[cur][col]
			if next == deadState {
				next = b.newState(token.IDENT)
				b.setEdge(cur, col, next)
			}
			cur = next
		}
		b.kind[cur] = kw.kind
	}

	// self-loops for the run states
	for col := 0; col < numCols; col++ {
		if isIdentCol(col) {
			b.setEdge(identCont, col, identCont)
		}
		if isDigitCol(col) {
			b.setEdge(digitRun, col, digitRun)
			b.setEdge(memIDRun, col, memIDRun)
			b.setEdge(regIDRun, col, regIDRun)
			b.setEdge(afterM, col, memIDRun)
			b.setEdge(afterR, col, regIDRun)
		}
		if isWhitespaceCol(col) {
			b.setEdge(whitespace, col, whitespace)
		}
		if col != colNewline {
			b.setEdge(comment, col, comment)
		}
	}

	// start-state overrides that the trie never claims: no keyword begins
	// with 'm', 'r', or any of the punctuation/comment/negative-sign
	// columns, so these are safe to set unconditionally.
	b.setEdge(start, classify('m'), afterM)
	b.setEdge(start, classify('r'), afterR)
	b.setEdge(start, classify(','), comma)
	b.setEdge(start, classify('('), lparen)
	b.setEdge(start, classify(')'), rparen)
	b.setEdge(start, classify(':'), colon)
	b.setEdge(start, classify(';'), semi)
	b.setEdge(start, classify('#'), comment)
	b.setEdge(start, classify('-'), negative)
	for col := 0; col < numCols; col++ {
		if isDigitCol(col) {
			b.setEdge(negative, col, digitRun)
		}
	}

	// start-state defaults: any identifier-leading or digit-leading
	// column the trie and the overrides above left dead is a plain
	// identifier or number start. Filling only dead columns keeps every
	// keyword's own first-character edge intact.
	for col := 0; col < numCols; col++ {
		if b.trans[start][col] != deadState {
			continue
		}
		switch {
		case isDigitCol(col):
			b.setEdge(start, col, digitRun)
		case isIdentCol(col):
			b.setEdge(start, col, identCont)
		case isWhitespaceCol(col):
			b.setEdge(start, col, whitespace)
		}
	}

	// Any trie node reading a further identifier character that isn't a
	// defined keyword continuation is spelling out a longer plain
	// identifier, not that keyword: "addition" must not stop at "add".
	// The same rule applies to afterM/afterR once they've seen a second
	// character that isn't a digit: "main" keeps going as a plain
	// identifier instead of dead-ending after "m". Route those edges to
	// identCont.
	for s := start + 1; s < len(b.trans); s++ {
		if fixed[s] {
			continue
		}
		for col := 0; col < numCols; col++ {
			if isIdentCol(col) && b.trans[s][col] == deadState {
				b.setEdge(s, col, identCont)
			}
		}
	}

	numStates = len(b.trans)
	stateToToken = make([]token.Kind, numStates)
	delta = make([][numCols]int, numStates)
	copy(stateToToken, b.kind)
	copy(delta, b.trans)
}

func init() {
	build()
}
