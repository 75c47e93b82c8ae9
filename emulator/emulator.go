// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/blue/cpu"
	"github.com/ezrec/blue/internal"
	"github.com/ezrec/blue/io"
	"github.com/ezrec/blue/translate"
)

var _emulator_defines = map[string]string{
	"CLOCK_TICKS": fmt.Sprintf("%v", cpu.CLOCK_TICKS),
}

// Emulator state. CPU + I/O bus + breakpoints.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Image    []cpu.Word   // If set, the memory image loaded instead of the Program.
	Switches cpu.Word     // Console switch register value applied at reset.

	Bus io.Bus // Device selector bus.

	Breakpoints map[cpu.Word]bool // Addresses that pause the run.
	Break       bool              // Set when the last pause was a breakpoint.

	at       cpu.Word // Address of the executing instruction.
	pending  bool     // Handshake deferred while paused.
	stepping bool     // One-shot breakpoint armed.
	stepAt   cpu.Word // One-shot breakpoint address.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:         cpu.NewCpu(),
		Program:     &cpu.Program{},
		Breakpoints: map[cpu.Word]bool{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Unique(internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Bus.Defines(),
	))
}

// Reset loads the image or program, applies the switch register, and
// powers on the machine.
func (emu *Emulator) Reset() (err error) {
	image := emu.Image
	if image == nil && emu.Program != nil {
		image = emu.Program.Image()
	}

	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Load(image)
	if err != nil {
		return
	}

	emu.Cpu.Sr = emu.Switches
	emu.Break = false
	emu.at = 0
	emu.pending = false
	emu.stepping = false

	emu.Cpu.PowerOn()

	return
}

// LineNo returns the source line number of the instruction at PC.
func (emu *Emulator) LineNo() int {
	return emu.lineAt(emu.Cpu.Pc)
}

func (emu *Emulator) lineAt(addr cpu.Word) int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(addr)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// Resume powers on a paused or halted machine.
func (emu *Emulator) Resume() {
	emu.Break = false
	emu.Cpu.PowerOn()
}

// Step resumes the machine until PC reaches the next sequential address.
func (emu *Emulator) Step() {
	emu.stepping = true
	emu.stepAt = (emu.Cpu.Pc + 1) & cpu.ADDRESS_MASK
	emu.Resume()
}

// AddBreakpoint pauses the run before the instruction at addr is fetched.
func (emu *Emulator) AddBreakpoint(addr cpu.Word) {
	if emu.Breakpoints == nil {
		emu.Breakpoints = map[cpu.Word]bool{}
	}
	emu.Breakpoints[addr&cpu.ADDRESS_MASK] = true
}

// RemoveBreakpoint removes a breakpoint, returning false if not set.
func (emu *Emulator) RemoveBreakpoint(addr cpu.Word) (ok bool) {
	addr &= cpu.ADDRESS_MASK
	ok = emu.Breakpoints[addr]
	delete(emu.Breakpoints, addr)
	return
}

// ClearBreakpoints removes all breakpoints.
func (emu *Emulator) ClearBreakpoints() {
	clear(emu.Breakpoints)
}

// ListBreakpoints returns the breakpoints in address order.
func (emu *Emulator) ListBreakpoints() []cpu.Word {
	return slices.Sorted(maps.Keys(emu.Breakpoints))
}

// Tick performs a single instruction cycle of the emulator.
// Done is set when the machine is halted or paused.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	defer func() {
		if err != nil {
			emu.Cpu.PowerOff()
			err = &ErrRuntime{Pc: emu.at, LineNo: emu.lineAt(emu.at), Err: err}
		}
	}()

	if !emu.Cpu.Power {
		done = true
		return
	}

	// Handshake deferred from the cycle before the pause.
	if emu.pending {
		emu.pending = false
		err = emu.Cpu.Handshake(&emu.Bus)
		if err != nil {
			return
		}
	}

	// A new instruction is fetched from MAR. Execute cycles, including
	// I/O retries, keep its address.
	if emu.Cpu.Phase == cpu.PHASE_FETCH && emu.Cpu.Clock == 0 {
		emu.at = emu.Cpu.Mar & cpu.ADDRESS_MASK
	}

	err = emu.Cpu.Cycle()
	if err != nil {
		return
	}

	// Breakpoints are only checked between instructions.
	pc := emu.Cpu.Pc
	if emu.Cpu.Phase == cpu.PHASE_FETCH {
		if emu.stepping && pc == emu.stepAt {
			emu.stepping = false
			emu.pause()
		}
		if emu.Breakpoints[pc] {
			emu.pause()
		}
	}

	if !emu.Cpu.Power {
		emu.stepping = false
		emu.pending = true
		done = true
		return
	}

	err = emu.Cpu.Handshake(&emu.Bus)
	return
}

func (emu *Emulator) pause() {
	if emu.Verbose {
		log.Printf("emulator: break at 0x%03x", emu.Cpu.Pc)
	}
	emu.Break = true
	emu.Cpu.Power = false
}

// Run executes cycles until the machine halts. With a debugger, a halt,
// breakpoint or runtime error enters the debugger prompt, and the run ends
// when it quits. A runtime error is returned once the debugger quits.
func (emu *Emulator) Run(dbg *Debugger) (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil && dbg == nil {
			return
		}
		if err != nil {
			translate.Fprint(dbg.Writer, "%v\n", err)
			quit, perr := dbg.Prompt(emu)
			if perr != nil {
				err = perr
				return
			}
			if quit {
				return
			}
			err = nil
			continue
		}

		if dbg != nil && dbg.Trace {
			dbg.Registers(emu)
		}

		if !done {
			continue
		}

		if dbg == nil {
			return
		}

		var quit bool
		quit, err = dbg.Prompt(emu)
		if err != nil || quit {
			return
		}
	}
}
