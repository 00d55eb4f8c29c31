// Package emitter renders an allocated Program as MIPS assembly text,
// grouping opcodes by their placeholder template the way the source
// assembler groups mnemonics by operand arity, mirrored in reverse: there
// the arity maps pick a decode path, here they pick a render template.
package emitter

import (
	"sort"
	"strconv"
	"strings"

	"mavn/ir"
)

// templates maps each opcode to a rendering pattern. A placeholder is a
// quote followed by one letter; the letter documents what kind of operand
// belongs there ('d'estination, 's'ource register, 'c'onstant, 'l'abel,
// 'm'emory) but every placeholder is resolved the same way: 'd draws from
// the instruction's Dest list in order, anything else draws from Src.
var templates = map[ir.Opcode]string{
	ir.ADD:  "add 'd, 's, 's",
	ir.SUB:  "sub 'd, 's, 's",
	ir.AND:  "and 'd, 's, 's",
	ir.OR:   "or 'd, 's, 's",
	ir.NOT:  "not 'd, 's",
	ir.ADDI: "addi 'd, 's, 'c",
	ir.LA:   "la 'd, 'm",
	ir.LI:   "li 'd, 'c",
	ir.LW:   "lw 'd, 'c('s)",
	ir.SW:   "sw 's, 'c('s)",
	ir.B:    "b 'l",
	ir.BLTZ: "bltz 's, 'l",
	ir.BNE:  "bne 's, 's, 'l",
	ir.NOP:  "nop",
}

// renderOperand prints one operand per its kind: a register variable
// resolves to its assigned physical register, a constant to its decimal
// value, a memory or label variable to its textual name.
func renderOperand(v *ir.Variable) string {
	switch v.Kind {
	case ir.RegisterVar:
		return "$t" + strconv.Itoa(v.Physical)
	case ir.ConstantVar:
		return strconv.FormatInt(v.Value, 10)
	default:
		return v.Name
	}
}

func renderBody(instr *ir.Instruction) string {
	if instr.Op == ir.FUNCENTRY {
		return ""
	}
	tmpl, ok := templates[instr.Op]
	if !ok {
		return ""
	}
	var sb strings.Builder
	destIdx, srcIdx := 0, 0
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] == '\'' && i+1 < len(tmpl) {
			if tmpl[i+1] == 'd' {
				sb.WriteString(renderOperand(instr.Dest[destIdx]))
				destIdx++
			} else {
				sb.WriteString(renderOperand(instr.Src[srcIdx]))
				srcIdx++
			}
			i++
			continue
		}
		sb.WriteByte(tmpl[i])
	}
	return sb.String()
}

// renderLine prefixes a label definition, if any, ahead of the opcode's
// rendered body. A FUNC-ENTRY contributes only its label, with no tab and
// no instruction body; every other labeled instruction gets a tab between
// the label and its body.
func renderLine(instr *ir.Instruction) string {
	body := renderBody(instr)
	if instr.Label == nil {
		return "\t" + body
	}
	if instr.Op == ir.FUNCENTRY {
		return instr.Label.Name + ":"
	}
	return instr.Label.Name + ":\t" + body
}

// Emit renders the whole program: a .globl/.data/.text layout, one line
// per instruction (FUNC-ENTRY contributes a label line and no body),
// followed by the fixed `jr $ra` epilogue.
func Emit(p *ir.Program) string {
	var sb strings.Builder

	sb.WriteString(".globl ")
	if p.EntryLabel != nil {
		sb.WriteString(p.EntryLabel.Name)
	}
	sb.WriteString("\n\n.data\n")

	// Map iteration order is unspecified; sort by name so two runs over
	// the same input always emit byte-identical output.
	memVars := p.MemVars()
	names := make([]string, 0, len(memVars))
	for name := range memVars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := memVars[name]
		sb.WriteString(v.Name)
		sb.WriteString(": .word ")
		sb.WriteString(strconv.FormatInt(v.Init, 10))
		sb.WriteString("\n")
	}

	sb.WriteString("\n.text\n")
	for _, instr := range p.Instrs {
		sb.WriteString(renderLine(instr))
		sb.WriteString("\n")
	}
	sb.WriteString("\tjr $ra")

	return sb.String()
}
