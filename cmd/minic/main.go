package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/goforj/godump"

	"minic/pkg/cli"
	"minic/pkg/config"
	"minic/pkg/irgen"
)

func main() {
	cfg := config.NewConfig()
	fs := cli.NewFlagSet("minic")

	var (
		sampleName      string
		list            bool
		showFingerprint bool
		dumpAST         bool
		help            bool
		warnFlags       []string
		featFlags       []string
	)
	fs.String(&sampleName, "sample", "s", "arith", "Sample program to lower")
	fs.Bool(&list, "list", "l", false, "List the built-in sample programs")
	fs.Bool(&showFingerprint, "fingerprint", "", false, "Print the xxhash fingerprint of the IR dump")
	fs.Bool(&dumpAST, "dump-ast", "", false, "Dump the AST before lowering")
	fs.Bool(&help, "help", "h", false, "Show this help text")
	fs.Prefix(&warnFlags, "W", "Toggle a warning, e.g. -Wno-unknown-node, -Wall")
	fs.Prefix(&featFlags, "F", "Toggle a feature, e.g. -Fno-fold-const-cond")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if help {
		fs.Usage("minic: lower built-in MiniC sample programs to linear IR")
		return
	}
	for _, flag := range warnFlags {
		cfg.ApplyFlag(flag)
	}
	for _, flag := range featFlags {
		cfg.ApplyFlag(flag)
	}

	if list {
		names := make([]string, 0, len(samples))
		for name := range samples {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%-8s %s\n", name, samples[name].desc)
		}
		return
	}

	sample, ok := samples[sampleName]
	if !ok {
		fmt.Fprintf(os.Stderr, "minic: unknown sample '%s' (try -list)\n", sampleName)
		os.Exit(2)
	}

	root := sample.build()
	if dumpAST {
		godump.Dump(root)
	}

	prog, err := irgen.NewContext(cfg).Generate(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minic: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(prog.Dump())
	if showFingerprint {
		fmt.Printf("; fingerprint %016x\n", prog.Fingerprint())
	}
}
