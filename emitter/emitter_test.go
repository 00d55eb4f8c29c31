package emitter

import (
	"strings"
	"testing"

	"mavn/cfg"
	"mavn/interference"
	"mavn/ir"
	"mavn/liveness"
	"mavn/parser"
	"mavn/regalloc"
	"mavn/report"
)

func mustCompile(t *testing.T, src string) *ir.Program {
	t.Helper()
	p, err := parser.Parse("t.mavn", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err.String())
	}
	cfg.Build(p)
	liveness.Analyze(p, report.Noop{})
	g := interference.Build(p)
	if _, err := regalloc.Allocate(p, g, report.Noop{}); err != nil {
		t.Fatalf("unexpected allocation error: %v", err.String())
	}
	return p
}

func TestEmitSmokeLayout(t *testing.T) {
	p := mustCompile(t, `
_func main;
_reg r1;
li r1, 0;
nop;
`)
	out := Emit(p)
	if !strings.HasPrefix(out, ".globl main\n\n.data\n") {
		t.Fatalf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "main:") {
		t.Fatalf("missing entry label:\n%s", out)
	}
	if !strings.Contains(out, "li $t0, 0") {
		t.Fatalf("missing rendered li instruction:\n%s", out)
	}
	if !strings.Contains(out, "nop") {
		t.Fatalf("missing nop:\n%s", out)
	}
	if !strings.HasSuffix(out, "jr $ra") {
		t.Fatalf("output does not end with jr $ra:\n%s", out)
	}
}

func TestEmitMemoryDeclarations(t *testing.T) {
	p := mustCompile(t, `
_func main;
_mem m1 5;
_reg r1;
la r1, m1;
nop;
`)
	out := Emit(p)
	if !strings.Contains(out, "m1: .word 5") {
		t.Fatalf("missing data declaration:\n%s", out)
	}
	if !strings.Contains(out, "la $t0, m1") {
		t.Fatalf("missing rendered la instruction:\n%s", out)
	}
}

func TestEmitBranchTemplates(t *testing.T) {
	p := mustCompile(t, `
_func main;
_reg r1;
li r1, -1;
bltz r1, done;
li r1, 0;
done: nop;
`)
	out := Emit(p)
	if !strings.Contains(out, "bltz $t0, done") {
		t.Fatalf("missing rendered bltz instruction:\n%s", out)
	}
	if !strings.Contains(out, "done:\tnop") {
		t.Fatalf("missing labeled nop:\n%s", out)
	}
}

func TestEmitBneTemplate(t *testing.T) {
	p := mustCompile(t, `
_func main;
_reg r1;
_reg r2;
li r1, 1;
li r2, 2;
bne r1, r2, away;
nop;
away: nop;
`)
	out := Emit(p)
	if !strings.Contains(out, "bne $t") {
		t.Fatalf("missing rendered bne instruction:\n%s", out)
	}
	if !strings.Contains(out, ", away") {
		t.Fatalf("bne template did not render the label operand:\n%s", out)
	}
}
