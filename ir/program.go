package ir

import (
	"sort"
	"strconv"
)

// Program is the arena owning every Variable and Instruction for one
// compilation unit. It lives until the unit is dropped; nothing it hands
// out outlives it. A fresh Program is built for every call into the
// pipeline, so monotonic position counters reset naturally between runs.
type Program struct {
	Instrs []*Instruction

	// RegVars is indexed by Variable.Position: dense [0..R).
	RegVars []*Variable

	memByName   map[string]*Variable
	regByName   map[string]*Variable
	labelByName map[string]*Variable
	constByVal  map[int64]*Variable

	EntryLabel *Variable
}

func NewProgram() *Program {
	return &Program{
		memByName:   map[string]*Variable{},
		regByName:   map[string]*Variable{},
		labelByName: map[string]*Variable{},
		constByVal:  map[int64]*Variable{},
	}
}

// AddInstr appends instr to the instruction arena, assigning its Pos.
func (p *Program) AddInstr(instr *Instruction) int {
	instr.Pos = len(p.Instrs)
	p.Instrs = append(p.Instrs, instr)
	return instr.Pos
}

func (p *Program) NumRegVars() int {
	return len(p.RegVars)
}

// LookupReg returns an existing register variable, if declared.
func (p *Program) LookupReg(name string) (*Variable, bool) {
	v, ok := p.regByName[name]
	return v, ok
}

// DeclareReg creates a new register variable with the next dense
// position. Callers must check LookupReg first to enforce uniqueness.
func (p *Program) DeclareReg(name string) *Variable {
	v := &Variable{
		Kind:     RegisterVar,
		Name:     name,
		Position: len(p.RegVars),
		Physical: NoPhysical,
	}
	p.RegVars = append(p.RegVars, v)
	p.regByName[name] = v
	return v
}

func (p *Program) LookupMem(name string) (*Variable, bool) {
	v, ok := p.memByName[name]
	return v, ok
}

func (p *Program) DeclareMem(name string, init int64) *Variable {
	v := &Variable{Kind: MemoryVar, Name: name, Init: init}
	p.memByName[name] = v
	return v
}

func (p *Program) MemVars() map[string]*Variable { return p.memByName }
func (p *Program) RegByName() map[string]*Variable { return p.regByName }
func (p *Program) Labels() map[string]*Variable { return p.labelByName }

// GetOrCreateLabel returns the label variable for name, creating an
// undefined one (Defined = false) the first time it is referenced.
func (p *Program) GetOrCreateLabel(name string) *Variable {
	if v, ok := p.labelByName[name]; ok {
		return v
	}
	v := &Variable{Kind: LabelVar, Name: name, Defined: false}
	p.labelByName[name] = v
	return v
}

// DefineLabel marks name as defined, creating it if necessary. The second
// return value is true if the label was already defined (a redefinition,
// which callers surface as a fatal parse error).
func (p *Program) DefineLabel(name string) (*Variable, bool) {
	v := p.GetOrCreateLabel(name)
	wasDefined := v.Defined
	v.Defined = true
	return v, wasDefined
}

// ConstVar interns the constant variable for n, so two source occurrences
// of the same literal resolve to the same object.
func (p *Program) ConstVar(n int64) *Variable {
	if v, ok := p.constByVal[n]; ok {
		return v
	}
	v := &Variable{
		Kind:  ConstantVar,
		Name:  "c" + strconv.FormatInt(n, 10),
		Value: n,
	}
	p.constByVal[n] = v
	return v
}

// AllLabelsDefined reports the name of the first referenced-but-undefined
// label, if any. Names are checked in sorted order so that source with
// several dangling labels always reports the same one across runs.
func (p *Program) AllLabelsDefined() (string, bool) {
	names := make([]string, 0, len(p.labelByName))
	for name := range p.labelByName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !p.labelByName[name].Defined {
			return name, false
		}
	}
	return "", true
}
