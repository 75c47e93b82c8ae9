// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	goio "io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/blue/cpu"
	"github.com/ezrec/blue/emulator"
	"github.com/ezrec/blue/io"
)

// tapeInput selects the tape reader for the -i argument. Standard input
// belongs to the debugger when one is attached, so "-" reads an empty tape.
func tapeInput(input string, stdin *bufio.Reader, debug bool) (r goio.ReadCloser, err error) {
	switch {
	case input != "-":
		r, err = os.Open(input)
	case debug:
		log.Printf("-i -: standard input is used by the debugger, tape input is empty")
		r = goio.NopCloser(strings.NewReader(""))
	default:
		r = goio.NopCloser(stdin)
	}
	return
}

func main() {
	var compile string
	var hex string
	var binary string
	var save string
	var switches string
	var debug bool
	var trace bool
	var console int
	var input string
	var output string
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&hex, "x", "", "hexadecimal image to load")
	flag.StringVar(&binary, "b", "", "binary image to load")
	flag.StringVar(&save, "w", "", "Write binary image, do not execute")
	flag.StringVar(&switches, "s", "0", "Switch register value")
	flag.BoolVar(&debug, "d", false, "Debug prompt on halt and breakpoints")
	flag.BoolVar(&trace, "t", false, "Trace registers after each cycle")
	flag.IntVar(&console, "console", -1, "Attach the operator console at this device selector")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() == 1 && len(binary) == 0 {
		binary = flag.Arg(0)
	} else if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	sr, err := strconv.ParseUint(switches, 0, 16)
	if err != nil {
		log.Fatalf("-s %v: %v", switches, err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Switches = cpu.Word(sr)

	// Console, debugger, and tape share one buffered standard input.
	stdin := bufio.NewReader(os.Stdin)

	tape := &io.Tape{}
	emu.Bus.Default = tape

	if console >= 0 {
		emu.Bus.Attach(uint8(console), "console", io.NewConsole(stdin, os.Stdout))
	}

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(hex) != 0:
		inf, err := os.Open(hex)
		if err != nil {
			log.Fatalf("%v: %v", hex, err)
		}
		defer inf.Close()

		emu.Image, err = cpu.ReadHexImage(inf)
		if err != nil {
			log.Fatalf("%v: %v", hex, err)
		}
	case len(binary) != 0:
		inf, err := os.Open(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		defer inf.Close()

		emu.Image, err = cpu.ReadImage(inf)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
	default:
		log.Fatalf("%v: No program (use -c, -x, or -b)", os.Args[0])
	}

	if len(save) != 0 {
		image := emu.Image
		if image == nil {
			image = emu.Program.Image()
		}
		ouf, err := os.Create(save)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		defer ouf.Close()
		err = cpu.WriteImage(ouf, image)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		return
	}

	inf, err := tapeInput(input, stdin, debug)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	defer inf.Close()
	tape.Reader = inf

	if output == "-" {
		tape.Writer = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		tape.Writer = ouf
	}

	var dbg *emulator.Debugger
	if debug {
		dbg = emulator.NewDebugger(stdin, os.Stderr)
	} else if trace {
		// Tracing only, quit at the first prompt.
		dbg = emulator.NewDebugger(strings.NewReader(""), os.Stderr)
	}
	if dbg != nil {
		dbg.Trace = trace
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run(dbg)
	if err != nil {
		log.Printf("%v", emu.Cpu)
		log.Fatal(err)
	}

	if verbose {
		log.Printf("%v", emu.Cpu)
		log.Printf("cycles: %v, ticks: %v", emu.Cpu.Cycles, emu.Cpu.Ticks)
	}
}
