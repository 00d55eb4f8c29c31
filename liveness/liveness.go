// Package liveness computes USE/DEF and the backward liveness fixpoint
// over a Program already annotated with CFG edges.
package liveness

import (
	"mavn/ir"
	"mavn/report"
)

const phase = "liveness"

// diagnosticPassCap is a trip-wire, not a correctness device: the analyzer
// always iterates to true fixpoint. Larger inputs may legitimately need
// more passes; exceeding the cap only earns a warning on the reporter.
const diagnosticPassCap = 10

// ComputeUseDef fills in each instruction's USE and DEF sets: DEF is the
// destination list filtered to register variables, USE is the source
// list filtered to register variables.
func ComputeUseDef(p *ir.Program) {
	r := p.NumRegVars()
	for _, instr := range p.Instrs {
		instr.USE = ir.NewRegSet(r)
		instr.DEF = ir.NewRegSet(r)
		instr.IN = ir.NewRegSet(r)
		instr.OUT = ir.NewRegSet(r)
		for _, d := range instr.Dest {
			if d.IsRegister() {
				instr.DEF.Set(d.Position)
			}
		}
		for _, s := range instr.Src {
			if s.IsRegister() {
				instr.USE.Set(s.Position)
			}
		}
	}
}

// Analyze runs the classical backward dataflow to fixpoint:
//
//	IN(i)  = USE(i) U (OUT(i) \ DEF(i))
//	OUT(i) = union of IN(s) for s in succ(i)
//
// by repeatedly sweeping the instruction list in reverse order until a
// full pass changes nothing. rep may be report.Noop{}.
func Analyze(p *ir.Program, rep report.Reporter) {
	ComputeUseDef(p)
	r := p.NumRegVars()
	instrs := p.Instrs

	rep.PhaseStart(phase)
	pass := 0
	warned := false
	for {
		pass++
		changed := false
		for i := len(instrs) - 1; i >= 0; i-- {
			instr := instrs[i]
			newOut := ir.NewRegSet(r)
			for _, succ := range instr.Succ {
				newOut.Union(instrs[succ].IN)
			}
			newIn := newOut.Clone()
			newIn.Subtract(instr.DEF)
			newIn.Union(instr.USE)

			if !newIn.Equals(instr.IN) || !newOut.Equals(instr.OUT) {
				changed = true
			}
			instr.IN = newIn
			instr.OUT = newOut
		}
		rep.Iteration(phase, pass, p)
		if !changed {
			break
		}
		if pass >= diagnosticPassCap && !warned {
			rep.Warn(phase, "liveness has not reached fixpoint after the diagnostic pass cap; continuing anyway")
			warned = true
		}
	}
	rep.PhaseEnd(phase)
}
