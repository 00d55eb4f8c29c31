package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mavn/interference"
	"mavn/ir"
	"mavn/regalloc"
	"mavn/token"
)

// PrintTokens renders the token stream as a two-column table: Type left
// aligned, Value right aligned.
func PrintTokens(toks []*token.Token) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Type:", "Value:"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Type:", Align: text.AlignLeft, WidthMin: 20},
		{Name: "Value:", Align: text.AlignRight, WidthMin: 25},
	})
	for _, tok := range toks {
		t.AppendRow(table.Row{tok.Kind.String(), tok.Text})
	}
	fmt.Println(t.Render())
}

// PrintInstructions renders one boxed row per instruction: position,
// opcode, USE, DEF, succ, pred, IN, OUT.
func PrintInstructions(p *ir.Program) {
	r := p.NumRegVars()
	t := table.NewWriter()
	t.AppendHeader(table.Row{"pos", "op", "USE", "DEF", "succ", "pred", "IN", "OUT"})
	for _, instr := range p.Instrs {
		t.AppendRow(table.Row{
			instr.Pos,
			instr.Op.String(),
			regSetString(instr.USE, r),
			regSetString(instr.DEF, r),
			intsString(instr.Succ),
			intsString(instr.Pred),
			regSetString(instr.IN, r),
			regSetString(instr.OUT, r),
		})
	}
	fmt.Println(t.Render())
}

// PrintVariables renders the memory, register, and constant tables, in
// that order.
func PrintVariables(p *ir.Program) {
	mt := table.NewWriter()
	mt.SetTitle("memory")
	mt.AppendHeader(table.Row{"name", "init"})
	names := sortedKeys(p.MemVars())
	for _, name := range names {
		v := p.MemVars()[name]
		mt.AppendRow(table.Row{v.Name, v.Init})
	}
	fmt.Println(mt.Render())

	rt := table.NewWriter()
	rt.SetTitle("register")
	rt.AppendHeader(table.Row{"name", "position", "physical"})
	for _, v := range p.RegVars {
		rt.AppendRow(table.Row{v.Name, v.Position, physicalName(v.Physical)})
	}
	fmt.Println(rt.Render())

	ct := table.NewWriter()
	ct.SetTitle("constant")
	ct.AppendHeader(table.Row{"name", "value"})
	seen := map[*ir.Variable]bool{}
	for _, instr := range p.Instrs {
		for _, v := range instr.Src {
			if v.Kind == ir.ConstantVar && !seen[v] {
				seen[v] = true
				ct.AppendRow(table.Row{v.Name, v.Value})
			}
		}
	}
	fmt.Println(ct.Render())
}

// PrintInterferenceMatrix renders one bracketed row per register
// variable.
func PrintInterferenceMatrix(g *interference.Graph) {
	for i := 0; i < g.R; i++ {
		row := make([]string, g.R)
		for j := 0; j < g.R; j++ {
			if g.Interferes(i, j) {
				row[j] = "1"
			} else {
				row[j] = "0"
			}
		}
		fmt.Println("[" + strings.Join(row, " ") + "]")
	}
}

// PrintAllocation renders the register variables with their assigned
// physical register, after a successful Allocate.
func PrintAllocation(p *ir.Program, res *regalloc.Result) {
	t := table.NewWriter()
	t.SetTitle("allocated registers")
	t.AppendHeader(table.Row{"name", "color", "physical"})
	for _, v := range p.RegVars {
		t.AppendRow(table.Row{v.Name, res.Color[v.Position], physicalName(v.Physical)})
	}
	fmt.Println(t.Render())
}

func physicalName(phys int) string {
	if phys == ir.NoPhysical {
		return "-"
	}
	return fmt.Sprintf("$t%d", phys)
}

func regSetString(s ir.RegSet, r int) string {
	if s == nil {
		return "{}"
	}
	members := s.Members(r)
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = fmt.Sprintf("%d", m)
	}
	return "{" + strings.Join(out, ",") + "}"
}

func intsString(xs []int) string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = fmt.Sprintf("%d", x)
	}
	return "[" + strings.Join(out, ",") + "]"
}

func sortedKeys(m map[string]*ir.Variable) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
