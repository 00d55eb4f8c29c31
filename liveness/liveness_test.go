package liveness

import (
	"testing"

	"mavn/cfg"
	"mavn/ir"
	"mavn/parser"
	"mavn/report"
)

func mustBuild(t *testing.T, src string) *ir.Program {
	t.Helper()
	p, err := parser.Parse("t.mavn", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.String())
	}
	cfg.Build(p)
	return p
}

func TestAnalyzeSmokeHasEmptyOutAfterNop(t *testing.T) {
	p := mustBuild(t, `
_func main;
_reg r1;
li r1, 0;
nop;
`)
	Analyze(p, report.Noop{})
	r := p.NumRegVars()
	nop := p.Instrs[2]
	if len(nop.OUT.Members(r)) != 0 {
		t.Fatalf("OUT(nop) = %v; want empty", nop.OUT.Members(r))
	}
}

func TestAnalyzeUseDefForThreeRegisterOp(t *testing.T) {
	p := mustBuild(t, `
_func main;
_reg r1;
_reg r2;
_reg r3;
li r1, 1;
li r2, 2;
add r3, r1, r2;
`)
	ComputeUseDef(p)
	addInstr := p.Instrs[3]
	r := p.NumRegVars()
	dst := p.RegVars[2].Position // r3
	a := p.RegVars[0].Position   // r1
	b := p.RegVars[1].Position   // r2
	if !addInstr.DEF.Test(dst) {
		t.Fatalf("DEF(add) missing destination r3")
	}
	if !addInstr.USE.Test(a) || !addInstr.USE.Test(b) {
		t.Fatalf("USE(add) missing a source; USE = %v", addInstr.USE.Members(r))
	}
}

func TestAnalyzeBranchKeepsRegisterLiveOnlyIntoBranch(t *testing.T) {
	p := mustBuild(t, `
_func main;
_reg r1;
li r1, -1;
bltz r1, done;
li r1, 0;
done: nop;
`)
	Analyze(p, report.Noop{})
	r := p.NumRegVars()
	bltz := p.Instrs[2]
	done := p.Instrs[4]
	r1 := p.RegVars[0].Position
	if !bltz.IN.Test(r1) {
		t.Fatalf("IN(bltz) missing r1")
	}
	if done.IN.Test(r1) {
		t.Fatalf("IN(done) unexpectedly has r1 live; IN = %v", done.IN.Members(r))
	}
}

func TestAnalyzeReachesFixpoint(t *testing.T) {
	p := mustBuild(t, `
_func main;
_reg r1;
_reg r2;
li r1, 0;
top: add r2, r1, r1;
bltz r2, top;
nop;
`)
	Analyze(p, report.Noop{})
	// Re-running one more sweep by hand must not change anything: the
	// fixpoint equation IN = USE u (OUT \ DEF) holds for every instr.
	for _, instr := range p.Instrs {
		newOut := ir.NewRegSet(p.NumRegVars())
		for _, s := range instr.Succ {
			newOut.Union(p.Instrs[s].IN)
		}
		if !newOut.Equals(instr.OUT) {
			t.Fatalf("instruction %d: OUT not at fixpoint", instr.Pos)
		}
		newIn := newOut.Clone()
		newIn.Subtract(instr.DEF)
		newIn.Union(instr.USE)
		if !newIn.Equals(instr.IN) {
			t.Fatalf("instruction %d: IN not at fixpoint", instr.Pos)
		}
	}
}
