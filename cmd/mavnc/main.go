package main

import (
	"flag"
	"fmt"
	"os"

	"mavn/core"
	"mavn/pipeline"
	"mavn/report"
)

var lex = flag.Bool("lex", false, "runs the lexer and prints the token stream")
var parse = flag.Bool("parse", false, "runs the lexer and parser, prints the IR")
var irFlag = flag.Bool("ir", false, "alias for -parse")
var cfgFlag = flag.Bool("cfg", false, "runs up to CFG construction, prints the instruction table")
var live = flag.Bool("live", false, "runs up to liveness analysis, prints the instruction table")
var interfere = flag.Bool("interfere", false, "runs up to interference graph construction, prints the matrix")
var alloc = flag.Bool("alloc", false, "runs up to register allocation, prints the allocated registers")

var verbose = flag.Bool("v", false, "verbose diagnostics at every phase boundary")
var regs = flag.Int("regs", 4, "number of physical registers available to the allocator")
var outname = flag.String("o", "", "output path for the emitted assembly")

func main() {
	flag.Parse()
	if *regs < 1 {
		Fatal("-regs must be at least 1\n")
	}
	args := flag.Args()
	if len(args) != 1 {
		Fatal("invalid number of arguments: expected exactly one input file\n")
	}
	checkValid()
	run(args[0])
}

func checkValid() {
	selected := []bool{*lex, *parse, *irFlag, *cfgFlag, *live, *interfere, *alloc}
	count := 0
	for _, b := range selected {
		if b {
			count++
		}
	}
	if count > 1 {
		Fatal("only one of -lex, -parse, -ir, -cfg, -live, -interfere or -alloc may be used at a time\n")
	}
}

func run(filename string) {
	src, err := pipeline.ReadSource(filename)
	OkOrBurst(err)

	var rep report.Reporter = report.Noop{}
	if *verbose {
		s := report.NewSlog()
		s.Dump = pipeline.PrintInstructions
		rep = s
	}

	switch {
	case *lex:
		toks, err := pipeline.Lex(filename, src)
		OkOrBurst(err)
		if *verbose {
			pipeline.PrintTokens(toks)
		} else {
			for _, t := range toks {
				fmt.Println(t.String())
			}
		}
	case *parse, *irFlag:
		p, err := pipeline.Parse(filename, src)
		OkOrBurst(err)
		pipeline.PrintInstructions(p)
		pipeline.PrintVariables(p)
	case *cfgFlag:
		p, err := pipeline.Parse(filename, src)
		OkOrBurst(err)
		pipeline.BuildCFG(p)
		pipeline.PrintInstructions(p)
	case *live:
		p, err := pipeline.Parse(filename, src)
		OkOrBurst(err)
		pipeline.BuildCFG(p)
		pipeline.Liveness(p, rep)
		pipeline.PrintInstructions(p)
	case *interfere:
		p, err := pipeline.Parse(filename, src)
		OkOrBurst(err)
		pipeline.BuildCFG(p)
		pipeline.Liveness(p, rep)
		g := pipeline.Interfere(p)
		pipeline.PrintInterferenceMatrix(g)
	case *alloc:
		p, err := pipeline.Parse(filename, src)
		OkOrBurst(err)
		pipeline.BuildCFG(p)
		pipeline.Liveness(p, rep)
		g := pipeline.Interfere(p)
		res, err := pipeline.Allocate(p, g, *regs, rep)
		OkOrBurst(err)
		pipeline.PrintAllocation(p, res)
	default:
		out, err := pipeline.Compile(filename, src, *outname, *regs, rep)
		OkOrBurst(err)
		if *outname == "" {
			fmt.Println(out)
		}
	}
}

func OkOrBurst(e *core.Error) {
	if e != nil {
		Fatal(e.String() + "\n")
	}
}

func Fatal(s string) {
	os.Stderr.Write([]byte(s))
	os.Exit(1)
}
