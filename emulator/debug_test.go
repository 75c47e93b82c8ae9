package emulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/blue/cpu"
)

func TestDebuggerRun(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assemble(t, emu, countProgram...)
	emu.AddBreakpoint(1)

	commands := []string{
		"r",
		"x A 0x10",
		"bogus",
		"c",
		"q",
	}
	output := &bytes.Buffer{}
	dbg := NewDebugger(strings.NewReader(strings.Join(commands, "\n")), output)

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run(dbg))

	assert.Equal(cpu.Word(0x12), emu.Cpu.A)

	text := output.String()
	assert.Contains(text, "Stopped at 0x001\n")
	assert.Contains(text, "PC: 0001 A: 0001 ")
	assert.Contains(text, "command invalid: 'bogus'\n")
	assert.Contains(text, "Halted at 0x004\n")
	assert.Contains(text, "Stopping...\n")
}

func TestDebuggerEOF(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assemble(t, emu, countProgram...)

	output := &bytes.Buffer{}
	dbg := NewDebugger(strings.NewReader(""), output)
	dbg.Trace = true

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run(dbg))

	assert.Equal(cpu.Word(3), emu.Cpu.A)
	assert.Equal(7, strings.Count(output.String(), "PC: "))
	assert.Contains(output.String(), "Halted at 0x004\n")
}

func TestDebuggerStep(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assemble(t, emu, countProgram...)
	emu.AddBreakpoint(1)

	output := &bytes.Buffer{}
	dbg := NewDebugger(strings.NewReader("s\nl\nq\n"), output)

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run(dbg))

	assert.Equal(cpu.Word(2), emu.Cpu.Pc)
	assert.Equal(cpu.Word(2), emu.Cpu.A)
	assert.Contains(output.String(), "Stopped at 0x002\n")
	assert.Contains(output.String(), "002: 1004 add 0x004")
	assert.Contains(output.String(), "; line 3: add one\n")
}

func TestDebuggerBreakpoints(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := &bytes.Buffer{}
	dbg := NewDebugger(strings.NewReader(""), output)

	for _, line := range []string{"b 0x10", "b 5", "u 0x10", "b 0x20"} {
		resume, quit, err := dbg.Command(emu, line)
		assert.NoError(err, line)
		assert.False(resume, line)
		assert.False(quit, line)
	}
	assert.Equal([]cpu.Word{5, 0x20}, emu.ListBreakpoints())

	output.Reset()
	_, _, err := dbg.Command(emu, "b")
	assert.NoError(err)
	assert.Equal("breakpoint 0x005\nbreakpoint 0x020\n", output.String())
}

func TestDebuggerCommand(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	dbg := NewDebugger(strings.NewReader(""), &bytes.Buffer{})

	for _, line := range []string{"", "  ", "r", "d", "l", "h", "x pc 0x1234", "x SR 42"} {
		resume, quit, err := dbg.Command(emu, line)
		assert.NoError(err, line)
		assert.False(resume, line)
		assert.False(quit, line)
	}
	assert.Equal(cpu.Word(0x234), emu.Cpu.Pc)
	assert.Equal(cpu.Word(42), emu.Cpu.Sr)

	resume, _, _ := dbg.Command(emu, "c")
	assert.True(resume)
	assert.True(emu.Cpu.Power)

	_, quit, _ := dbg.Command(emu, "q")
	assert.True(quit)

	table := map[string]error{
		"zz":          ErrCommand,
		"c now":       ErrArgument,
		"b zz":        ErrArgument,
		"b 0x1000":    ErrArgument,
		"b 1 2":       ErrArgument,
		"u":           ErrArgument,
		"u 5":         ErrArgument,
		"x A":         ErrArgument,
		"x A zz":      ErrArgument,
		"x A 0x10000": ErrArgument,
		"x R9 1":      cpu.ErrRegisterInvalid,
		"x DOL 1":     cpu.ErrRegisterInvalid,
	}

	for line, expect := range table {
		_, _, err := dbg.Command(emu, line)
		assert.ErrorIs(err, expect, line)
	}
}

func TestDebuggerRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Image = []cpu.Word{0xf000, 0xfa00}

	output := &bytes.Buffer{}
	dbg := NewDebugger(strings.NewReader("r\nd\nq\n"), output)

	assert.NoError(emu.Reset())
	err := emu.Run(dbg)
	assert.ErrorIs(err, cpu.ErrOpcode(0))

	text := output.String()
	assert.Contains(text, "pc 0x001 bad opcode 0xfa00 (field 18)\n")
	assert.Contains(text, "Halted at 0x002\n")
	assert.Contains(text, "IR: fa00")
	assert.Contains(text, "==== RAM ====\n0000: f000 fa00 0000")
	assert.Contains(text, "Stopping...\n")
}

func TestDebuggerRuntimeErrorContinue(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Image = []cpu.Word{0xf000, 0xfa00}

	// Patching MBR replaces the bad word latched at fetch tick 5.
	output := &bytes.Buffer{}
	dbg := NewDebugger(strings.NewReader("x MBR 0\nc\nq\n"), output)

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run(dbg))
	assert.Equal(cpu.Word(0), emu.Cpu.Ir)
	assert.Equal(1, strings.Count(output.String(), "bad opcode"))
}
