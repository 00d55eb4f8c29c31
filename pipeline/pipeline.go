// Package pipeline exposes one function per compiler phase boundary, the
// same split the source driver makes between its stage flags and its own
// pipelines package: a thin main parses flags and calls straight through
// to here.
package pipeline

import (
	"os"

	"mavn/cfg"
	"mavn/core"
	et "mavn/core/errorkind"
	sv "mavn/core/severity"
	"mavn/emitter"
	"mavn/interference"
	"mavn/ir"
	"mavn/lexer"
	"mavn/liveness"
	"mavn/parser"
	"mavn/regalloc"
	"mavn/report"
	"mavn/token"
)

// ReadSource loads filename whole, mapping any I/O failure onto the
// shared error taxonomy instead of a bare error.
func ReadSource(filename string) (string, *core.Error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return "", core.ProcessFileError(err)
	}
	return string(contents), nil
}

// Lex tokenizes src in full, including the trailing EOF token. It never
// invokes the parser, so it surfaces lex errors in isolation for -lex.
func Lex(filename, src string) ([]*token.Token, *core.Error) {
	lx := lexer.NewLexer(filename, src)
	return lx.ReadAll()
}

// Parse runs the lexer and recursive-descent parser together, returning
// the fully populated IR.
func Parse(filename, src string) (*ir.Program, *core.Error) {
	return parser.Parse(filename, src)
}

// BuildCFG annotates p's instructions with predecessor/successor edges.
func BuildCFG(p *ir.Program) {
	cfg.Build(p)
}

// Liveness runs USE/DEF computation and the backward fixpoint.
func Liveness(p *ir.Program, rep report.Reporter) {
	liveness.Analyze(p, rep)
}

// Interfere builds the interference graph from p's (already computed)
// liveness sets.
func Interfere(p *ir.Program) *interference.Graph {
	return interference.Build(p)
}

// Allocate runs the simplification-stack and coloring phases with a
// k-register budget, writing the chosen physical register back onto
// every register variable in p.
func Allocate(p *ir.Program, g *interference.Graph, k int, rep report.Reporter) (*regalloc.Result, *core.Error) {
	return regalloc.AllocateK(p, g, k, rep)
}

// Emit renders the allocated program as MIPS assembly text.
func Emit(p *ir.Program) string {
	return emitter.Emit(p)
}

// Compile runs every phase in order and writes the result to outPath,
// truncating any prior contents. rep may be report.Noop{} for silent
// runs. A fresh IR container is built on every call, so re-running the
// same input in the same process is safe.
func Compile(filename, src, outPath string, k int, rep report.Reporter) (string, *core.Error) {
	p, err := Parse(filename, src)
	if err != nil {
		return "", err
	}
	BuildCFG(p)
	Liveness(p, rep)
	g := Interfere(p)
	if _, err := Allocate(p, g, k, rep); err != nil {
		return "", err
	}
	out := Emit(p)
	if err := writeFile(outPath, out); err != nil {
		return "", err
	}
	return out, nil
}

func writeFile(path, contents string) *core.Error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return core.ProcessFileError(err)
	}
	defer f.Close()
	if _, err := f.WriteString(contents); err != nil {
		return core.NewError(nil, et.FileError, sv.Error, err.Error())
	}
	return nil
}
