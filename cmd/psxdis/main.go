package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/grimdork/climate/arg"

	"github.com/Urethramancer/psx/disassembler"
	"github.com/Urethramancer/psx/exe"
)

func main() {
	opt := arg.New("psxdis")
	opt.SetDefaultHelp(true)
	err := errors.Join(
		opt.SetOption(arg.GroupDefault, "i", "in", "Raw binary or PS-X EXE to disassemble.", "", true, arg.VarString, nil),
		opt.SetOption(arg.GroupDefault, "o", "out", "Output file (default stdout).", "", false, arg.VarString, nil),
		opt.SetOption(arg.GroupDefault, "b", "base", "Load address of a raw binary.", "0x80010000", false, arg.VarString, nil),
		opt.SetOption(arg.GroupDefault, "e", "exe", "Treat the input as a PS-X EXE.", false, false, arg.VarBool, nil),
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

	data, err := os.ReadFile(opt.GetString("in"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	var text string
	if opt.GetBool("exe") {
		x, perr := exe.Parse(data)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "Error parsing EXE: %v\n", perr)
			os.Exit(1)
		}
		text, err = disassembler.Disassemble(x.Text, x.TextAddr, x.PC)
	} else {
		base, perr := strconv.ParseUint(opt.GetString("base"), 0, 32)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "Invalid base address: %v\n", perr)
			os.Exit(2)
		}
		text, err = disassembler.Disassemble(data, uint32(base))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Disassembly error: %v\n", err)
		os.Exit(1)
	}

	outputFile := opt.GetString("out")
	if outputFile == "" {
		fmt.Print(text)
		return
	}

	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Disassembly written to %s\n", outputFile)
}
