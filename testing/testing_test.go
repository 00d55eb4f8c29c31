package testing

import (
	"testing"

	"mavn/core"
	et "mavn/core/errorkind"
	sv "mavn/core/severity"
)

func TestHarnessAcceptsSuccessfulScenario(t *testing.T) {
	res := Test("../testdata/smoke.mavn", S_Compile)
	if !res.Ok {
		t.Fatalf("expected smoke.mavn to compile cleanly: %s", res.Message)
	}
}

func TestHarnessMatchesExpectedErrorCode(t *testing.T) {
	res := Test("../testdata/five_live_regs.E300.mavn", S_Alloc)
	if !res.Ok {
		t.Fatalf("expected five_live_regs.E300.mavn to fail with E300: %s", res.Message)
	}
}

func TestHarnessFlagsUnexpectedError(t *testing.T) {
	// smoke.mavn carries no error-code segment, so any error a stage
	// returns for it must be reported as unexpected.
	failing := func(string) *core.Error {
		return core.NewError(nil, et.AllocFailed, sv.Error, "forced failure")
	}
	res := Test("../testdata/smoke.mavn", failing)
	if res.Ok {
		t.Fatalf("an error on smoke.mavn, which expects none, was not flagged")
	}
}

func TestHarnessFlagsMissingExpectedError(t *testing.T) {
	// five_live_regs.E300.mavn names E300, but parsing alone succeeds, so
	// the missing expected error must be reported.
	res := Test("../testdata/five_live_regs.E300.mavn", S_Parse)
	if res.Ok {
		t.Fatalf("the missing E300 on five_live_regs.E300.mavn was not flagged")
	}
}
