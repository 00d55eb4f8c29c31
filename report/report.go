// Package report decouples the algorithmic phases from human-readable
// diagnostics: each phase emits structured events through a Reporter
// instead of printing directly, so the core algorithms stay silent and
// testable. The CLI installs a slog-backed Reporter when -v is set.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"mavn/ir"
)

// LevelTrace sits one step above slog's Info level and tags the
// per-liveness-iteration records. NewSlog's handler keeps slog's default
// Info threshold, so these records appear in ordinary -v output.
const LevelTrace = slog.LevelInfo + 1

type Reporter interface {
	PhaseStart(phase string)
	PhaseEnd(phase string)
	Iteration(phase string, n int, p *ir.Program)
	Warn(phase, msg string)
}

// Noop is the default Reporter: every phase runs in silence, which is what
// every non-interactive test wants.
type Noop struct{}

func (Noop) PhaseStart(string)                  {}
func (Noop) PhaseEnd(string)                    {}
func (Noop) Iteration(string, int, *ir.Program) {}
func (Noop) Warn(string, string)                {}

// Slog reports phase and iteration events through a structured logger,
// whose records NewSlog writes to stderr. Dump, when set, renders the full
// instruction table for the pass on stdout under a "| Iteration N:"
// headline; the CLI wires it to
// pipeline.PrintInstructions so report stays free of a dependency on the
// table-rendering package.
type Slog struct {
	Logger *slog.Logger
	Dump   func(p *ir.Program)
}

func NewSlog() *Slog {
	return &Slog{Logger: slog.New(slog.NewTextHandler(os.Stderr, nil))}
}

func (s *Slog) PhaseStart(phase string) {
	s.Logger.Info("phase start", "phase", phase)
}

func (s *Slog) PhaseEnd(phase string) {
	s.Logger.Info("phase end", "phase", phase)
}

func (s *Slog) Iteration(phase string, n int, p *ir.Program) {
	s.Logger.Log(context.Background(), LevelTrace, "iteration", "phase", phase, "n", n)
	if s.Dump != nil {
		fmt.Printf("| Iteration %d:\n", n)
		s.Dump(p)
	}
}

func (s *Slog) Warn(phase, msg string) {
	s.Logger.Warn(msg, "phase", phase)
}
