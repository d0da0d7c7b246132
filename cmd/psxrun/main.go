package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/grimdork/climate/arg"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/Urethramancer/psx/bios"
	"github.com/Urethramancer/psx/cpu"
	"github.com/Urethramancer/psx/disassembler"
	"github.com/Urethramancer/psx/exe"
	"github.com/Urethramancer/psx/memory"
)

// This program boots a BIOS image and/or sideloads a PS-X EXE, runs it for
// a number of instructions and dumps the CPU state.
func main() {
	opt := arg.New("psxrun")
	opt.SetDefaultHelp(true)
	err := errors.Join(
		opt.SetOption(arg.GroupDefault, "b", "bios", "BIOS ROM image.", "", false, arg.VarString, nil),
		opt.SetOption(arg.GroupDefault, "e", "exe", "PS-X EXE to sideload.", "", false, arg.VarString, nil),
		opt.SetOption(arg.GroupDefault, "s", "steps", "Instructions to execute.", "1000000", false, arg.VarString, nil),
		opt.SetOption(arg.GroupDefault, "l", "loglevel", "Log level (error, warn, info, debug, trace).", "info", false, arg.VarString, nil),
		opt.SetOption(arg.GroupDefault, "S", "strict", "Stop on reserved instructions.", false, false, arg.VarBool, nil),
		opt.SetOption(arg.GroupDefault, "t", "trace", "Keep the last N instructions and print them at exit.", 0, false, arg.VarInt, nil),
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

	log := newLogger(opt.GetString("loglevel"))
	if err := run(opt, log); err != nil {
		log.WithError(err).Error("run failed")
		os.Exit(1)
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: !term.IsTerminal(int(os.Stderr.Fd())),
		FullTimestamp: true,
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func run(opt *arg.Options, log *logrus.Logger) error {
	steps, err := strconv.ParseUint(opt.GetString("steps"), 0, 64)
	if err != nil {
		return fmt.Errorf("invalid --steps: %w", err)
	}
	traceLen := opt.GetInt("trace")
	if traceLen < 0 {
		return fmt.Errorf("invalid --trace %d", traceLen)
	}

	biosPath, exePath := opt.GetString("bios"), opt.GetString("exe")
	if biosPath == "" && exePath == "" {
		return errors.New("nothing to run: give --bios and/or --exe")
	}

	var rom []byte
	if biosPath != "" {
		rom, err = os.ReadFile(biosPath)
		if err != nil {
			return fmt.Errorf("reading BIOS: %w", err)
		}
	}
	m, err := memory.New(memory.Config{BIOS: rom, Logger: log})
	if err != nil {
		return err
	}

	hooks := bios.NewHooks(log)
	bios.NewTTY(os.Stdout, log).Install(hooks)
	observers := cpu.Observers{hooks}
	var trace *bios.Trace
	if traceLen > 0 {
		trace = bios.NewTrace(traceLen)
		observers = append(observers, trace)
	}

	c := cpu.New(m, cpu.Config{
		StrictDecode: opt.GetBool("strict"),
		Observer:     observers,
		Logger:       log,
	})

	if exePath != "" {
		f, err := os.Open(exePath)
		if err != nil {
			return fmt.Errorf("opening EXE: %w", err)
		}
		x, err := exe.Read(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", exePath, err)
		}
		if err = x.Load(m); err != nil {
			return fmt.Errorf("%s: %w", exePath, err)
		}
		x.Start(c)
		log.WithFields(logrus.Fields{
			"pc":     fmt.Sprintf("%08x", x.PC),
			"text":   fmt.Sprintf("%08x", x.TextAddr),
			"size":   len(x.Text),
			"region": x.Region,
		}).Info("EXE loaded")
	}

	runErr := c.Run(steps)
	if trace != nil {
		printTrace(trace)
	}
	dumpRegisters(c)
	return runErr
}

func printTrace(t *bios.Trace) {
	fmt.Println("--- Trace ---")
	for _, e := range t.Entries() {
		mn, ops := disassembler.Decode(e.Word, e.PC)
		fmt.Printf("%08x  %08x  %-8s %s\n", e.PC, e.Word, mn, ops)
	}
}

func dumpRegisters(c *cpu.CPU) {
	fmt.Printf("--- CPU State after %d steps ---\n", c.Steps)
	for i, r := range c.Registers() {
		fmt.Printf("%-8s %08x", r.Name, r.Value)
		if i%4 == 3 {
			fmt.Println()
		} else {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}
