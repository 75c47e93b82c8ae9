package emulator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/blue/cpu"
	"github.com/ezrec/blue/translate"
)

// Debugger is the operator's command prompt, entered when the machine
// halts or reaches a breakpoint.
type Debugger struct {
	Reader *bufio.Reader
	Writer io.Writer
	Trace  bool // If set, dump the registers after every cycle.
}

// NewDebugger creates a debugger on a reader and a writer.
func NewDebugger(r io.Reader, w io.Writer) (dbg *Debugger) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	dbg = &Debugger{
		Reader: br,
		Writer: w,
	}

	return
}

const debugHelp = `c               continue
s               step to the next address
r               show registers
d               dump memory
l               show the source line at PC
b               list breakpoints
b ADDR          set a breakpoint
u ADDR          remove a breakpoint
x REG VALUE     set register (PC A Z SR MAR MBR IR DSL DIL)
q               quit
`

// Registers writes the register state.
func (dbg *Debugger) Registers(emu *Emulator) {
	fmt.Fprintln(dbg.Writer, emu.Cpu.String())
}

// Prompt reads and executes commands until the machine is resumed, or
// the operator quits. End of input quits.
func (dbg *Debugger) Prompt(emu *Emulator) (quit bool, err error) {
	if emu.Break {
		translate.Fprint(dbg.Writer, "Stopped at 0x%03x\n", emu.Cpu.Pc)
	} else {
		translate.Fprint(dbg.Writer, "Halted at 0x%03x\n", emu.Cpu.Pc)
	}

	for {
		fmt.Fprint(dbg.Writer, "> ")

		var line string
		line, err = dbg.Reader.ReadString('\n')
		if len(line) == 0 && errors.Is(err, io.EOF) {
			err = nil
			quit = true
			return
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return
		}
		err = nil

		var resume bool
		resume, quit, err = dbg.Command(emu, line)
		if err != nil {
			translate.Fprint(dbg.Writer, "%v\n", err)
			err = nil
			continue
		}
		if quit || resume {
			return
		}
	}
}

// parseAddress parses a decimal or 0x prefixed address.
func parseAddress(text string) (addr cpu.Word, err error) {
	v64, err := strconv.ParseUint(text, 0, 16)
	if err != nil || v64 > uint64(cpu.ADDRESS_MASK) {
		err = fmt.Errorf("%w: '%v'", ErrArgument, text)
		return
	}

	addr = cpu.Word(v64)
	return
}

// Command executes a single debugger command line.
func (dbg *Debugger) Command(emu *Emulator, line string) (resume bool, quit bool, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	cmd := words[0]
	args := words[1:]

	nargs := map[string][]int{
		"c": {0}, "s": {0}, "r": {0}, "d": {0}, "l": {0}, "q": {0}, "h": {0}, "?": {0},
		"b": {0, 1}, "u": {1}, "x": {2},
	}
	valid, ok := nargs[cmd]
	if !ok {
		err = fmt.Errorf("%w: '%v'", ErrCommand, cmd)
		return
	}
	ok = false
	for _, n := range valid {
		ok = ok || n == len(args)
	}
	if !ok {
		err = fmt.Errorf("%w: '%v'", ErrArgument, strings.Join(words, " "))
		return
	}

	switch cmd {
	case "c":
		emu.Resume()
		resume = true
	case "s":
		emu.Step()
		resume = true
	case "r":
		dbg.Registers(emu)
	case "d":
		err = emu.Cpu.DumpMemory(dbg.Writer)
	case "l":
		dbg.listing(emu)
	case "q":
		translate.Fprint(dbg.Writer, "Stopping...\n")
		quit = true
	case "h", "?":
		fmt.Fprint(dbg.Writer, debugHelp)
	case "b":
		if len(args) == 0 {
			for _, addr := range emu.ListBreakpoints() {
				translate.Fprint(dbg.Writer, "breakpoint 0x%03x\n", addr)
			}
			return
		}
		var addr cpu.Word
		addr, err = parseAddress(args[0])
		if err != nil {
			return
		}
		emu.AddBreakpoint(addr)
		translate.Fprint(dbg.Writer, "Set breakpoint at 0x%03x\n", addr)
	case "u":
		var addr cpu.Word
		addr, err = parseAddress(args[0])
		if err != nil {
			return
		}
		if !emu.RemoveBreakpoint(addr) {
			err = fmt.Errorf("%w: no breakpoint at 0x%03x", ErrArgument, addr)
			return
		}
	case "x":
		var v64 uint64
		v64, err = strconv.ParseUint(args[1], 0, 16)
		if err != nil {
			err = fmt.Errorf("%w: '%v'", ErrArgument, args[1])
			return
		}
		err = emu.Cpu.SetRegister(args[0], cpu.Word(v64))
	}

	return
}

// listing writes the source line at PC.
func (dbg *Debugger) listing(emu *Emulator) {
	pc := emu.Cpu.Pc
	code := cpu.Code(emu.Cpu.Memory[pc])

	if emu.Program != nil {
		debug := emu.Program.Debug(pc)
		if debug.Statement != nil {
			translate.Fprint(dbg.Writer, "%03x: %04x %-12v ; line %d: %v\n",
				pc, uint16(code), code, debug.LineNo, strings.Join(debug.Words, " "))
			return
		}
	}

	translate.Fprint(dbg.Writer, "%03x: %04x %v\n", pc, uint16(code), code)
}
