package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/grimdork/climate/arg"

	"github.com/Urethramancer/psx/assembler"
	"github.com/Urethramancer/psx/cpu"
	"github.com/Urethramancer/psx/exe"
)

func main() {
	opt := arg.New("psxasm")
	opt.SetDefaultHelp(true)
	err := errors.Join(
		opt.SetOption(arg.GroupDefault, "i", "in", "Assembly source file.", "", true, arg.VarString, nil),
		opt.SetOption(arg.GroupDefault, "o", "out", "Output file. Without it the code is printed as hex words.", "", false, arg.VarString, nil),
		opt.SetOption(arg.GroupDefault, "b", "base", "Load address.", "0x80010000", false, arg.VarString, nil),
		opt.SetOption(arg.GroupDefault, "e", "exe", "Wrap the output in a PS-X EXE starting at the base address.", false, false, arg.VarBool, nil),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	err = opt.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, arg.ErrNoArgs) {
			opt.PrintHelp()
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	src, err := os.ReadFile(opt.GetString("in"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}
	base, err := strconv.ParseUint(opt.GetString("base"), 0, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid base address: %v\n", err)
		os.Exit(2)
	}

	asm := assembler.New()
	code, err := asm.Assemble(string(src), uint32(base))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	outputFile := opt.GetString("out")
	if outputFile == "" {
		for i, w := range cpu.BytesToWords(code) {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Printf("%08x", w)
		}
		fmt.Println()
		return
	}

	if opt.GetBool("exe") {
		entry := uint32(base)
		if addr, ok := asm.Label("start"); ok {
			entry = addr
		}
		code = exe.Build(exe.Header{
			PC:        entry,
			TextAddr:  uint32(base),
			StackBase:   0x801FFF00,
		}, code)
	}
	if err := os.WriteFile(outputFile, code, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d bytes written to %s\n", len(code), outputFile)
}
