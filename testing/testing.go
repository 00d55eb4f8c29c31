// Package testing is a golden-file harness for .mavn sources, mirroring
// the source driver's `module_name.E001.mavn` naming convention: the
// second-to-last dot-separated segment of the filename, if present,
// names the error code a run is expected to fail with.
package testing

import (
	"strings"

	"mavn/core"
	"mavn/pipeline"
	"mavn/report"
)

type TestResult struct {
	File    string
	Message string
	Ok      bool
}

func (res *TestResult) String() string {
	if res.Ok {
		return "\u001b[34mok\u001b[0m"
	}
	return "\u001b[31mfail\u001b[0m"
}

// Stage runs one compiler phase (or the whole pipeline) against filename
// and reports its fatal error, if any.
type Stage func(filename string) *core.Error

func S_Lex(filename string) *core.Error {
	src, err := pipeline.ReadSource(filename)
	if err != nil {
		return err
	}
	_, err = pipeline.Lex(filename, src)
	return err
}

func S_Parse(filename string) *core.Error {
	src, err := pipeline.ReadSource(filename)
	if err != nil {
		return err
	}
	_, err = pipeline.Parse(filename, src)
	return err
}

func S_CFG(filename string) *core.Error {
	src, err := pipeline.ReadSource(filename)
	if err != nil {
		return err
	}
	p, err := pipeline.Parse(filename, src)
	if err != nil {
		return err
	}
	pipeline.BuildCFG(p)
	return nil
}

func S_Liveness(filename string) *core.Error {
	src, err := pipeline.ReadSource(filename)
	if err != nil {
		return err
	}
	p, err := pipeline.Parse(filename, src)
	if err != nil {
		return err
	}
	pipeline.BuildCFG(p)
	pipeline.Liveness(p, report.Noop{})
	return nil
}

func S_Alloc(filename string) *core.Error {
	src, err := pipeline.ReadSource(filename)
	if err != nil {
		return err
	}
	p, err := pipeline.Parse(filename, src)
	if err != nil {
		return err
	}
	pipeline.BuildCFG(p)
	pipeline.Liveness(p, report.Noop{})
	g := pipeline.Interfere(p)
	_, err = pipeline.Allocate(p, g, 4, report.Noop{})
	return err
}

func S_Compile(filename string) *core.Error {
	src, err := pipeline.ReadSource(filename)
	if err != nil {
		return err
	}
	_, err = pipeline.Compile(filename, src, "", 4, report.Noop{})
	return err
}

// Test runs st against file and compares the resulting error code (if
// any) against the one encoded in the filename.
func Test(file string, st Stage) TestResult {
	expectedErr := extractError(file)
	err := st(file)
	return compareError(file, err, expectedErr)
}

// extractError pulls the error-code segment out of a name shaped like
// `scenario.E201.mavn`; a name with fewer than three dot-separated
// segments is expected to succeed.
func extractError(file string) string {
	pathlist := strings.Split(file, "/")
	name := pathlist[len(pathlist)-1]
	sections := strings.Split(name, ".")
	if len(sections) < 3 {
		return ""
	}
	return sections[len(sections)-2]
}

func compareError(file string, err *core.Error, expectedErr string) TestResult {
	switch {
	case err != nil && expectedErr == "":
		return TestResult{
			File:    file,
			Message: "expected no errors, instead found: " + err.ErrCode(),
		}
	case err == nil && expectedErr != "":
		return TestResult{
			File:    file,
			Message: "expected error " + expectedErr + ", instead found nothing",
		}
	case err != nil && expectedErr != "":
		if actual := err.ErrCode(); actual != expectedErr {
			return TestResult{
				File:    file,
				Message: "expected error " + expectedErr + ", instead found " + actual,
			}
		}
	}
	return TestResult{File: file, Ok: true}
}
