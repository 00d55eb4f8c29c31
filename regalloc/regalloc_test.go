package regalloc

import (
	"testing"

	et "mavn/core/errorkind"
	"mavn/cfg"
	"mavn/interference"
	"mavn/ir"
	"mavn/liveness"
	"mavn/parser"
	"mavn/report"
)

func mustBuildGraph(t *testing.T, src string) (*ir.Program, *interference.Graph) {
	t.Helper()
	p, err := parser.Parse("t.mavn", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.String())
	}
	cfg.Build(p)
	liveness.Analyze(p, report.Noop{})
	return p, interference.Build(p)
}

func TestAllocateAssignsDistinctColorsToInterferingVars(t *testing.T) {
	p, g := mustBuildGraph(t, `
_func main;
_reg r1;
_reg r2;
_reg r3;
li r1, 1;
li r2, 2;
li r3, 3;
add r1, r1, r2;
sub r1, r1, r3;
`)
	res, err := Allocate(p, g, report.Noop{})
	if err != nil {
		t.Fatalf("unexpected allocation failure: %v", err.String())
	}
	for i := 0; i < g.R; i++ {
		for j := i + 1; j < g.R; j++ {
			if g.Interferes(i, j) && res.Color[i] == res.Color[j] {
				t.Fatalf("interfering variables %d and %d share color %d", i, j, res.Color[i])
			}
		}
	}
	for _, v := range p.RegVars {
		if v.Physical < 0 || v.Physical >= K {
			t.Fatalf("variable %s got physical %d, out of range", v.Name, v.Physical)
		}
	}
}

func TestAllocateFailsWithFiveSimultaneouslyLiveRegisters(t *testing.T) {
	p, g := mustBuildGraph(t, `
_func main;
_reg r1;
_reg r2;
_reg r3;
_reg r4;
_reg r5;
li r1, 1;
li r2, 2;
li r3, 3;
li r4, 4;
li r5, 5;
add r1, r1, r2;
add r1, r1, r3;
add r1, r1, r4;
add r1, r1, r5;
`)
	_, err := Allocate(p, g, report.Noop{})
	if err == nil {
		t.Fatalf("expected allocation to fail with 5 simultaneously live registers and K=4")
	}
	if err.Code != et.AllocFailed {
		t.Fatalf("got error code %v; want AllocFailed", err.Code)
	}
}

func TestAllocateKWithSmallerBudgetFailsSooner(t *testing.T) {
	p, g := mustBuildGraph(t, `
_func main;
_reg r1;
_reg r2;
li r1, 1;
li r2, 2;
add r1, r1, r2;
`)
	_, err := AllocateK(p, g, 1, report.Noop{})
	if err == nil {
		t.Fatalf("expected a 1-register budget to fail on two simultaneously live registers")
	}
}
