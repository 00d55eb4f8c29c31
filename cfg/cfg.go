// Package cfg annotates a parsed Program with predecessor/successor edges
// between instructions.
package cfg

import "mavn/ir"

// Build walks the instruction list, adding fall-through edges between
// textually adjacent instructions, then target edges for every branch.
// Edges are idempotent sets; ir.AddEdge coalesces duplicates.
func Build(p *ir.Program) {
	instrs := p.Instrs

	labelPos := map[string]int{}
	for i, instr := range instrs {
		if instr.Label != nil {
			labelPos[instr.Label.Name] = i
		}
	}

	for i := 1; i < len(instrs); i++ {
		prev := instrs[i-1]
		curr := instrs[i]
		// A FUNC-ENTRY is never fallen into from a predecessor (function
		// bodies don't run into each other's headers), but it does fall
		// through to whatever comes right after it, same as any other
		// non-branching instruction. An unconditional branch disables
		// fall-through to the textually next instruction.
		if curr.Op != ir.FUNCENTRY && prev.Op != ir.B {
			ir.AddEdge(instrs, i-1, i)
		}
	}

	for i, instr := range instrs {
		switch instr.Op {
		case ir.B, ir.BLTZ, ir.BNE:
			if target := resolveTarget(instr, labelPos, instrs); target >= 0 {
				ir.AddEdge(instrs, i, target)
			}
		}
	}
}

// resolveTarget finds the instruction a branch's label operand points to.
// If that instruction is a FUNC-ENTRY, the branch really targets whatever
// comes right after the function header.
func resolveTarget(instr *ir.Instruction, labelPos map[string]int, instrs []*ir.Instruction) int {
	lbl := instr.Src[len(instr.Src)-1]
	pos, ok := labelPos[lbl.Name]
	if !ok {
		return -1
	}
	if instrs[pos].Op == ir.FUNCENTRY {
		if pos+1 < len(instrs) {
			return pos + 1
		}
		return -1
	}
	return pos
}

// Reachable returns the set of instruction positions reachable from the
// entry instruction, by a plain visited-flag depth-first walk over Succ.
func Reachable(p *ir.Program) map[int]bool {
	seen := map[int]bool{}
	if len(p.Instrs) == 0 {
		return seen
	}
	var visit func(pos int)
	visit = func(pos int) {
		if seen[pos] {
			return
		}
		seen[pos] = true
		for _, s := range p.Instrs[pos].Succ {
			visit(s)
		}
	}
	visit(0)
	return seen
}
