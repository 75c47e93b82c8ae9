// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":   fmt.Sprintf("%v", MEMORY_SIZE),
	"ADDRESS_MASK":  fmt.Sprintf("%#x", ADDRESS_MASK),
	"SIGN_BIT":      fmt.Sprintf("%#x", SIGN_BIT),
	"FLAG_ZERO":     fmt.Sprintf("%#x", FLAG_ZERO),
	"FLAG_CARRY":    fmt.Sprintf("%#x", FLAG_CARRY),
	"FLAG_OVERFLOW": fmt.Sprintf("%#x", FLAG_OVERFLOW),
	"FLAG_NEGATIVE": fmt.Sprintf("%#x", FLAG_NEGATIVE),
}

// Cpu is the simulation context of the Blue computer's processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	State // Registers and memory.

	Ticks  int // Clock ticks counter.
	Cycles int // Completed instruction cycles counter.
}

// NewCpu creates a new, powered off, CPU with all registers zeroed.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Zeros statistics counters.
// - Leaves the CPU powered off, in the fetch phase at tick 0.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.State.Reset()
	cpu.Ticks = 0
	cpu.Cycles = 0
}

// Load resets the CPU, and copies a program image to memory at address 0.
func (cpu *Cpu) Load(image []Word) (err error) {
	if len(image) > MEMORY_SIZE {
		err = ErrImageSize
		return
	}

	cpu.Reset()
	copy(cpu.Memory[:], image)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words", len(image))
	}

	return
}

// PowerOn sets the run flag.
func (cpu *Cpu) PowerOn() {
	if cpu.Verbose {
		log.Printf("cpu: power on")
	}
	cpu.Power = true
}

// PowerOff clears the run flag.
func (cpu *Cpu) PowerOff() {
	if cpu.Verbose {
		log.Printf("cpu: power off")
	}
	cpu.Power = false
}

// Code returns the instruction word in the instruction register.
func (cpu *Cpu) Code() Code {
	return Code(cpu.Ir)
}

// Opcode decodes the instruction register.
func (cpu *Cpu) Opcode() (op Opcode, err error) {
	return cpu.Code().Opcode()
}

// Pulse executes a single clock tick.
//
// In the fetch phase, the tick-common actions run before the instruction
// handler: tick 2 advances PC, tick 3 clears MBR, tick 4 reads memory at
// MAR, and tick 5 latches the instruction register. The instruction
// register is decoded on every tick.
//
// A decode failure powers off the CPU, leaving the state for inspection.
func (cpu *Cpu) Pulse() (err error) {
	tick := cpu.Clock

	if cpu.Phase == PHASE_FETCH {
		switch tick {
		case 2:
			cpu.Pc = (cpu.Pc + 1) & ADDRESS_MASK
		case 3:
			cpu.Mbr = 0
		case 4:
			cpu.Ir = 0
			cpu.Mbr = cpu.read(cpu.Mar)
		case 5:
			cpu.Ir = cpu.Mbr
			if cpu.Verbose {
				log.Printf("%03x: %v", cpu.Mar, cpu.Code())
			}
		}
	}

	code := cpu.Code()
	op, err := code.Opcode()
	if err != nil {
		cpu.Power = false
		if cpu.Verbose {
			log.Printf("cpu: %v", err)
		}
		return
	}

	cpu.microcode(op, code, tick)

	cpu.Ticks++
	cpu.Clock++
	if cpu.Clock == CLOCK_TICKS {
		cpu.Clock = 0
		cpu.Cycles++
	}

	return
}

// Cycle executes the remaining ticks of the current instruction cycle.
// Halt is observed via the Power flag.
func (cpu *Cpu) Cycle() (err error) {
	for {
		err = cpu.Pulse()
		if err != nil {
			return
		}
		if cpu.Clock == 0 {
			return
		}
	}
}

// String returns the current register state as a string.
func (cpu *Cpu) String() string {
	return fmt.Sprintf("PC: %04x A: %04x IR: %04x Z: %04x MAR: %04x MBR: %04x DSL: %02x DIL: %02x DOL: %02x FLAGS: %v",
		cpu.Pc,
		cpu.A,
		cpu.Ir,
		cpu.Z,
		cpu.Mar,
		cpu.Mbr,
		cpu.Dsl&0x00ff,
		cpu.Dil&0x00ff,
		cpu.Dol&0x00ff,
		FlagString(cpu.Flags),
	)
}

// DumpMemory writes the memory contents, eight words per line.
func (cpu *Cpu) DumpMemory(w io.Writer) (err error) {
	_, err = fmt.Fprintf(w, "==== RAM ====\n")
	if err != nil {
		return
	}

	for addr := 0; addr < MEMORY_SIZE; addr += 8 {
		line := fmt.Sprintf("%04x:", addr)
		for _, word := range cpu.Memory[addr : addr+8] {
			line += fmt.Sprintf(" %04x", word)
		}
		_, err = fmt.Fprintln(w, line)
		if err != nil {
			return
		}
	}

	return
}
