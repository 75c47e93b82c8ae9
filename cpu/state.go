package cpu

import (
	"strings"
)

// Word is the native 16-bit storage unit of all registers and memory.
type Word = uint16

const (
	MEMORY_SIZE = 4096         // Words of memory.
	CLOCK_TICKS = 8            // Ticks per instruction cycle.
	SIGN_BIT    = Word(0x8000) // Sign bit of a word.
)

// Phase is the processor sub-state.
type Phase int

//go:generate go tool stringer -linecomment -type=Phase
const (
	PHASE_FETCH   = Phase(0) // fetch
	PHASE_EXECUTE = Phase(1) // execute
)

// IoState is the state of the I/O handshake.
type IoState struct {
	TransferActive bool // A transfer is in progress.
	Ready          bool // The device has produced or consumed the byte.
}

// State is the complete machine state: registers, handshake and memory.
// A copy of a State is a snapshot of the machine.
type State struct {
	Pc    Word // Program counter, 12-bit effective.
	A     Word // Accumulator.
	Z     Word // ALU latch.
	Sr    Word // Console switch register.
	Mar   Word // Memory address register.
	Mbr   Word // Memory buffer register.
	Ir    Word // Instruction register.
	Dsl   Word // Device selector.
	Dil   Word // Data input.
	Dol   Word // Data output.
	Flags Word // Processor status flags.

	Clock int   // Current clock tick, 0-7.
	Power bool  // Run flag.
	Phase Phase // Fetch or execute.
	Io    IoState

	Memory [MEMORY_SIZE]Word
}

// Reset clears all registers and memory.
func (st *State) Reset() {
	*st = State{}
}

func (st *State) read(addr Word) Word {
	return st.Memory[addr&ADDRESS_MASK]
}

func (st *State) write(addr Word, value Word) {
	st.Memory[addr&ADDRESS_MASK] = value
}

// register returns the named register, and the mask applied on write.
// Writable is true for registers on the patch surface.
func (st *State) register(name string) (reg *Word, mask Word, writable bool) {
	switch strings.ToUpper(name) {
	case "PC":
		return &st.Pc, ADDRESS_MASK, true
	case "A":
		return &st.A, 0xffff, true
	case "Z":
		return &st.Z, 0xffff, true
	case "SR":
		return &st.Sr, 0xffff, true
	case "MAR":
		return &st.Mar, ADDRESS_MASK, true
	case "MBR":
		return &st.Mbr, 0xffff, true
	case "IR":
		return &st.Ir, 0xffff, true
	case "DSL":
		return &st.Dsl, 0xffff, true
	case "DIL":
		return &st.Dil, 0xffff, true
	case "DOL":
		return &st.Dol, 0xffff, false
	case "FLAGS":
		return &st.Flags, 0xffff, false
	}

	return
}

// Register returns the value of a named register.
func (st *State) Register(name string) (value Word, err error) {
	reg, _, _ := st.register(name)
	if reg == nil {
		err = ErrRegister(name)
		return
	}

	value = *reg
	return
}

// SetRegister patches one of PC, A, Z, SR, MAR, MBR, IR, DSL or DIL.
// Address registers are masked to 12 bits.
func (st *State) SetRegister(name string, value Word) (err error) {
	reg, mask, writable := st.register(name)
	if reg == nil || !writable {
		err = ErrRegister(name)
		return
	}

	*reg = value & mask
	return
}
