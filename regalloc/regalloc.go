// Package regalloc implements Chaitin's simplification-stack and coloring
// algorithm over the interference graph, with a fixed register budget and
// no spilling: allocation either succeeds outright or fails fatally.
package regalloc

import (
	"mavn/core"
	et "mavn/core/errorkind"
	sv "mavn/core/severity"
	"mavn/interference"
	"mavn/ir"
	"mavn/report"
)

const phase = "regalloc"

// K is the size of the physical register pool (t0..t3).
const K = 4

// stack is an index stack recording simplification order, the same
// append-on-Push/shrink-on-Pop shape the source allocator uses for its
// free-register pools, repurposed here to hold popped graph nodes instead
// of available physical slots.
type stack struct {
	items []int
	top   int
}

func newStack() *stack {
	return &stack{top: -1}
}

func (s *stack) Push(i int) {
	s.top++
	if s.top >= len(s.items) {
		s.items = append(s.items, make([]int, 4)...)
	}
	s.items[s.top] = i
}

func (s *stack) Pop() int {
	item := s.items[s.top]
	s.top--
	return item
}

func (s *stack) HasItems() bool {
	return s.top >= 0
}

// Result carries the 1-based color assigned to every register variable,
// indexed by Variable.Position.
type Result struct {
	Color []int
}

// Allocate runs AllocateK with the fixed K = 4 register budget.
func Allocate(p *ir.Program, g *interference.Graph, rep report.Reporter) (*Result, *core.Error) {
	return AllocateK(p, g, K, rep)
}

// AllocateK runs the simplification and coloring phases over g using a
// k-register budget and writes the chosen physical register back onto
// each of p's register variables. On failure it returns a fatal
// *core.Error and leaves p.RegVars untouched; the caller must not emit.
func AllocateK(p *ir.Program, g *interference.Graph, k int, rep report.Reporter) (*Result, *core.Error) {
	rep.PhaseStart(phase)
	defer rep.PhaseEnd(phase)

	r := g.R
	removed := ir.NewRegSet(r)
	order := newStack()

	for remaining := r; remaining > 0; remaining-- {
		candidate := -1
		candidateDegree := -1
		for v := 0; v < r; v++ {
			if removed.Test(v) {
				continue
			}
			deg := g.Degree(v, removed)
			if deg >= k {
				continue
			}
			if deg > candidateDegree {
				candidate = v
				candidateDegree = deg
			}
		}
		if candidate < 0 {
			return nil, allocError()
		}
		order.Push(candidate)
		removed.Set(candidate)
	}

	colors := make([]int, r)
	colored := ir.NewRegSet(r)

	for order.HasItems() {
		v := order.Pop()
		forbidden := ir.NewRegSet(k + 1)
		for _, u := range g.Neighbors(v).Members(r) {
			if colored.Test(u) {
				forbidden.Set(colors[u])
			}
		}
		chosen := 0
		for c := 1; c <= k; c++ {
			if !forbidden.Test(c) {
				chosen = c
				break
			}
		}
		if chosen == 0 {
			return nil, allocError()
		}
		colors[v] = chosen
		colored.Set(v)
	}

	for _, v := range p.RegVars {
		v.Physical = colors[v.Position] - 1
	}
	return &Result{Color: colors}, nil
}

func allocError() *core.Error {
	return core.NewError(nil, et.AllocFailed, sv.Error,
		"not enough registers: interference graph cannot be colored with the available physical registers")
}
