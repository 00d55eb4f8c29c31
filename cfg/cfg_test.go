package cfg

import (
	"testing"

	"mavn/ir"
	"mavn/parser"
)

func mustParse(t *testing.T, src string) *ir.Program {
	t.Helper()
	p, err := parser.Parse("t.mavn", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.String())
	}
	return p
}

func TestBuildFallthroughChain(t *testing.T) {
	p := mustParse(t, `
_func main;
_reg r1;
li r1, 0;
nop;
`)
	Build(p)
	// FUNCENTRY (0) -> li (1) -> nop (2): FUNCENTRY falls through to the
	// next instruction like any other non-branching instruction, but
	// nothing falls into it.
	assertSucc(t, p, 0, 1)
	assertSucc(t, p, 1, 2)
	if len(p.Instrs[2].Succ) != 0 {
		t.Fatalf("last instruction has successors %v; want none", p.Instrs[2].Succ)
	}
}

func TestBuildBranchHasTwoSuccessors(t *testing.T) {
	p := mustParse(t, `
_func main;
_reg r1;
li r1, -1;
bltz r1, done;
li r1, 0;
done: nop;
`)
	Build(p)
	bltz := p.Instrs[2]
	if len(bltz.Succ) != 2 {
		t.Fatalf("bltz has %d successors; want 2", len(bltz.Succ))
	}
	hasFallthrough := false
	hasTarget := false
	for _, s := range bltz.Succ {
		if s == 3 {
			hasFallthrough = true
		}
		if s == 4 {
			hasTarget = true
		}
	}
	if !hasFallthrough || !hasTarget {
		t.Fatalf("bltz successors = %v; want fall-through (3) and target (4)", bltz.Succ)
	}
}

func TestBuildUnconditionalBranchHasNoFallthrough(t *testing.T) {
	p := mustParse(t, `
_func main;
b done;
_reg r1;
li r1, 0;
done: nop;
`)
	Build(p)
	b := p.Instrs[1]
	if len(b.Succ) != 1 {
		t.Fatalf("b has successors %v; want exactly the label target", b.Succ)
	}
}

func TestReachableCoversEveryInstruction(t *testing.T) {
	p := mustParse(t, `
_func main;
_reg r1;
li r1, -1;
bltz r1, done;
li r1, 0;
done: nop;
`)
	Build(p)
	reachable := Reachable(p)
	for i := range p.Instrs {
		if !reachable[i] {
			t.Fatalf("instruction %d is not reachable from the entry", i)
		}
	}
}

func assertSucc(t *testing.T, p *ir.Program, from, to int) {
	t.Helper()
	for _, s := range p.Instrs[from].Succ {
		if s == to {
			return
		}
	}
	t.Fatalf("instruction %d has successors %v; want %d among them", from, p.Instrs[from].Succ, to)
}
