// Package parser is a recursive-descent parser that builds the IR
// directly: the grammar is already flat (one statement list, no nested
// expressions), so there is no intermediate AST to walk afterward.
package parser

import (
	"mavn/core"
	et "mavn/core/errorkind"
	sv "mavn/core/severity"
	"mavn/ir"
	"mavn/lexer"
	"mavn/token"
)

func Parse(filename, src string) (*ir.Program, *core.Error) {
	lx := lexer.NewLexer(filename, src)
	if err := lx.Next(); err != nil {
		return nil, err
	}
	prog := ir.NewProgram()

	for lx.Word.Kind != token.EOF {
		if lx.Word.Kind == token.COMMENT {
			if err := lx.Next(); err != nil {
				return nil, err
			}
			continue
		}
		instr, err := statement(lx, prog)
		if err != nil {
			return nil, err
		}
		if _, err := expect(lx, token.SEMI); err != nil {
			return nil, err
		}
		if instr != nil {
			prog.AddInstr(instr)
		}
	}

	if name, ok := prog.AllLabelsDefined(); !ok {
		return nil, parseErr(lx, et.ParseLabelDoesntExist, "label doesn't exist: "+name)
	}
	if len(prog.Instrs) == 0 || prog.Instrs[0].Op != ir.FUNCENTRY {
		return nil, parseErr(lx, et.ParseNoMainFunc, "program has no entry function")
	}
	return prog, nil
}

// statement parses one S production. It returns a nil instruction for
// mem/reg declarations, which only populate symbol tables.
func statement(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	switch s.Word.Kind {
	case token.MEM:
		return nil, memDecl(s, p)
	case token.REG:
		return nil, regDecl(s, p)
	case token.FUNC:
		return funcDecl(s, p)
	case token.IDENT:
		return labeledStatement(s, p)
	default:
		return expr(s, p)
	}
}

// S := '_mem' memId intLit.
func memDecl(s *lexer.Lexer, p *ir.Program) *core.Error {
	if _, err := expect(s, token.MEM); err != nil {
		return err
	}
	id, err := expect(s, token.MEMID)
	if err != nil {
		return err
	}
	if _, exists := p.LookupMem(id.Text); exists {
		return tokenErr(id, et.ParseMemoryVarExists, "memory variable already declared: "+id.Text)
	}
	lit, err := expect(s, token.NUM)
	if err != nil {
		return err
	}
	p.DeclareMem(id.Text, lit.Value.Int64())
	return nil
}

// S := '_reg' regId.
func regDecl(s *lexer.Lexer, p *ir.Program) *core.Error {
	if _, err := expect(s, token.REG); err != nil {
		return err
	}
	id, err := expect(s, token.REGID)
	if err != nil {
		return err
	}
	if _, exists := p.LookupReg(id.Text); exists {
		return tokenErr(id, et.ParseRegisterVarExists, "register variable already declared: "+id.Text)
	}
	p.DeclareReg(id.Text)
	return nil
}

// S := '_func' id.
func funcDecl(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	kw := s.Word
	if _, err := expect(s, token.FUNC); err != nil {
		return nil, err
	}
	if p.EntryLabel != nil {
		return nil, tokenErr(kw, et.ParseTooManyFuncs, "more than one function declared")
	}
	id, err := expect(s, token.IDENT)
	if err != nil {
		return nil, err
	}
	lbl, wasDefined := p.DefineLabel(id.Text)
	if wasDefined {
		return nil, tokenErr(id, et.ParseLabelExists, "label already defined: "+id.Text)
	}
	p.EntryLabel = lbl
	return &ir.Instruction{Op: ir.FUNCENTRY, Label: lbl}, nil
}

// S := id ':' E.
func labeledStatement(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	id := s.Word
	peeked, err := peekAfterIdent(s)
	if err != nil {
		return nil, err
	}
	if peeked.Kind != token.COLON {
		return expr(s, p)
	}
	if _, err := expect(s, token.IDENT); err != nil {
		return nil, err
	}
	if _, err := expect(s, token.COLON); err != nil {
		return nil, err
	}
	lbl, wasDefined := p.DefineLabel(id.Text)
	if wasDefined {
		return nil, tokenErr(id, et.ParseLabelExists, "label already defined: "+id.Text)
	}
	instr, err := expr(s, p)
	if err != nil {
		return nil, err
	}
	instr.Label = lbl
	return instr, nil
}

// peekAfterIdent looks one token past the current IDENT through the
// lexer's one-token Peek slot; the next call to Next hands that token back
// from the slot instead of scanning it again.
func peekAfterIdent(s *lexer.Lexer) (*token.Token, *core.Error) {
	return s.Peek()
}

// E := opcode operands.
func expr(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	switch s.Word.Kind {
	case token.ADD, token.SUB, token.AND, token.OR:
		return threeReg(s, p, opcodeFor(s.Word.Kind))
	case token.ADDI:
		return regRegImm(s, p)
	case token.NOT:
		return twoReg(s, p)
	case token.LA:
		return loadAddr(s, p)
	case token.LI:
		return loadImm(s, p)
	case token.LW:
		return loadWord(s, p)
	case token.SW:
		return storeWord(s, p)
	case token.B:
		return branch(s, p)
	case token.BLTZ:
		return branchCond(s, p)
	case token.BNE:
		return branchNotEqual(s, p)
	case token.NOP:
		if _, err := expect(s, token.NOP); err != nil {
			return nil, err
		}
		return &ir.Instruction{Op: ir.NOP}, nil
	}
	return nil, wrongToken(s, "a statement")
}

func opcodeFor(k token.Kind) ir.Opcode {
	switch k {
	case token.ADD:
		return ir.ADD
	case token.SUB:
		return ir.SUB
	case token.AND:
		return ir.AND
	case token.OR:
		return ir.OR
	}
	panic("unreachable")
}

// add|sub|and|or regId ',' regId ',' regId.
func threeReg(s *lexer.Lexer, p *ir.Program, op ir.Opcode) (*ir.Instruction, *core.Error) {
	if _, err := advance(s); err != nil {
		return nil, err
	}
	dst, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, token.COMMA); err != nil {
		return nil, err
	}
	a, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, token.COMMA); err != nil {
		return nil, err
	}
	b, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	return &ir.Instruction{Op: op, Dest: []*ir.Variable{dst}, Src: []*ir.Variable{a, b}}, nil
}

// addi regId ',' regId ',' intLit.
func regRegImm(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	if _, err := expect(s, token.ADDI); err != nil {
		return nil, err
	}
	dst, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, token.COMMA); err != nil {
		return nil, err
	}
	a, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, token.COMMA); err != nil {
		return nil, err
	}
	lit, err := expect(s, token.NUM)
	if err != nil {
		return nil, err
	}
	c := p.ConstVar(lit.Value.Int64())
	return &ir.Instruction{Op: ir.ADDI, Dest: []*ir.Variable{dst}, Src: []*ir.Variable{a, c}}, nil
}

// not regId ',' regId.
func twoReg(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	if _, err := expect(s, token.NOT); err != nil {
		return nil, err
	}
	dst, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, token.COMMA); err != nil {
		return nil, err
	}
	a, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	return &ir.Instruction{Op: ir.NOT, Dest: []*ir.Variable{dst}, Src: []*ir.Variable{a}}, nil
}

// la regId ',' memId.
func loadAddr(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	if _, err := expect(s, token.LA); err != nil {
		return nil, err
	}
	dst, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, token.COMMA); err != nil {
		return nil, err
	}
	m, err := memRef(s, p)
	if err != nil {
		return nil, err
	}
	return &ir.Instruction{Op: ir.LA, Dest: []*ir.Variable{dst}, Src: []*ir.Variable{m}}, nil
}

// li regId ',' intLit.
func loadImm(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	if _, err := expect(s, token.LI); err != nil {
		return nil, err
	}
	dst, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, token.COMMA); err != nil {
		return nil, err
	}
	lit, err := expect(s, token.NUM)
	if err != nil {
		return nil, err
	}
	c := p.ConstVar(lit.Value.Int64())
	return &ir.Instruction{Op: ir.LI, Dest: []*ir.Variable{dst}, Src: []*ir.Variable{c}}, nil
}

// lw regId ',' intLit '(' regId ')'.
func loadWord(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	if _, err := expect(s, token.LW); err != nil {
		return nil, err
	}
	dst, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	c, base, err := offsetBase(s, p)
	if err != nil {
		return nil, err
	}
	return &ir.Instruction{Op: ir.LW, Dest: []*ir.Variable{dst}, Src: []*ir.Variable{c, base}}, nil
}

// sw regId ',' intLit '(' regId ')'. Both registers are sources; there is
// no destination.
func storeWord(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	if _, err := expect(s, token.SW); err != nil {
		return nil, err
	}
	src, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	c, base, err := offsetBase(s, p)
	if err != nil {
		return nil, err
	}
	return &ir.Instruction{Op: ir.SW, Src: []*ir.Variable{src, c, base}}, nil
}

func offsetBase(s *lexer.Lexer, p *ir.Program) (*ir.Variable, *ir.Variable, *core.Error) {
	if _, err := expect(s, token.COMMA); err != nil {
		return nil, nil, err
	}
	lit, err := expect(s, token.NUM)
	if err != nil {
		return nil, nil, err
	}
	if _, err := expect(s, token.LPAREN); err != nil {
		return nil, nil, err
	}
	base, err := regRef(s, p)
	if err != nil {
		return nil, nil, err
	}
	if _, err := expect(s, token.RPAREN); err != nil {
		return nil, nil, err
	}
	return p.ConstVar(lit.Value.Int64()), base, nil
}

// b id.
func branch(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	if _, err := expect(s, token.B); err != nil {
		return nil, err
	}
	lbl, err := labelRef(s, p)
	if err != nil {
		return nil, err
	}
	return &ir.Instruction{Op: ir.B, Src: []*ir.Variable{lbl}}, nil
}

// bltz regId ',' id.
func branchCond(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	if _, err := expect(s, token.BLTZ); err != nil {
		return nil, err
	}
	r, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, token.COMMA); err != nil {
		return nil, err
	}
	lbl, err := labelRef(s, p)
	if err != nil {
		return nil, err
	}
	return &ir.Instruction{Op: ir.BLTZ, Src: []*ir.Variable{r, lbl}}, nil
}

// bne regId ',' regId ',' id.
func branchNotEqual(s *lexer.Lexer, p *ir.Program) (*ir.Instruction, *core.Error) {
	if _, err := expect(s, token.BNE); err != nil {
		return nil, err
	}
	a, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, token.COMMA); err != nil {
		return nil, err
	}
	b, err := regRef(s, p)
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, token.COMMA); err != nil {
		return nil, err
	}
	lbl, err := labelRef(s, p)
	if err != nil {
		return nil, err
	}
	return &ir.Instruction{Op: ir.BNE, Src: []*ir.Variable{a, b, lbl}}, nil
}

func regRef(s *lexer.Lexer, p *ir.Program) (*ir.Variable, *core.Error) {
	tok, err := expect(s, token.REGID)
	if err != nil {
		return nil, err
	}
	v, ok := p.LookupReg(tok.Text)
	if !ok {
		return nil, tokenErr(tok, et.ParseVariableDoesntExist, "register variable doesn't exist: "+tok.Text)
	}
	return v, nil
}

func memRef(s *lexer.Lexer, p *ir.Program) (*ir.Variable, *core.Error) {
	tok, err := expect(s, token.MEMID)
	if err != nil {
		return nil, err
	}
	v, ok := p.LookupMem(tok.Text)
	if !ok {
		return nil, tokenErr(tok, et.ParseVariableDoesntExist, "memory variable doesn't exist: "+tok.Text)
	}
	return v, nil
}

func labelRef(s *lexer.Lexer, p *ir.Program) (*ir.Variable, *core.Error) {
	tok, err := expect(s, token.IDENT)
	if err != nil {
		return nil, err
	}
	return p.GetOrCreateLabel(tok.Text), nil
}

func advance(s *lexer.Lexer) (*token.Token, *core.Error) {
	tok := s.Word
	if err := s.Next(); err != nil {
		return nil, err
	}
	return tok, nil
}

func expect(s *lexer.Lexer, k token.Kind) (*token.Token, *core.Error) {
	if s.Word.Kind != k {
		return nil, wrongToken(s, k.String())
	}
	return advance(s)
}

func wrongToken(s *lexer.Lexer, expected string) *core.Error {
	return &core.Error{
		Code:     et.ParseWrongToken,
		Severity: sv.Error,
		Location: &core.Location{File: s.File, Range: s.Word.Range},
		Message:  "expected " + expected + ", found " + s.Word.String(),
	}
}

func parseErr(s *lexer.Lexer, code et.ErrorKind, msg string) *core.Error {
	return &core.Error{
		Code:     code,
		Severity: sv.Error,
		Location: &core.Location{File: s.File, Range: s.Word.Range},
		Message:  msg,
	}
}

func tokenErr(tok *token.Token, code et.ErrorKind, msg string) *core.Error {
	return &core.Error{
		Code:     code,
		Severity: sv.Error,
		Location: &core.Location{Range: tok.Range},
		Message:  msg,
	}
}
