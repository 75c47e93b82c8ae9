package cpu

// microcode dispatches a clock tick to the handler of the decoded opcode.
func (cpu *Cpu) microcode(op Opcode, code Code, tick int) {
	switch op {
	case OP_HLT:
		cpu.doHlt(tick)
	case OP_ADD:
		cpu.doAdd(code, tick)
	case OP_XOR:
		cpu.doXor(code, tick)
	case OP_AND:
		cpu.doAnd(code, tick)
	case OP_IOR:
		cpu.doIor(code, tick)
	case OP_NOT:
		cpu.doNot(tick)
	case OP_LDA:
		cpu.doLda(code, tick)
	case OP_STA:
		cpu.doSta(code, tick)
	case OP_SRJ:
		cpu.doSrj(code, tick)
	case OP_JMA:
		cpu.doJma(code, tick)
	case OP_JMP:
		cpu.doJmp(code, tick)
	case OP_INP:
		cpu.doInp(code, tick)
	case OP_OUT:
		cpu.doOut(code, tick)
	case OP_RAL:
		cpu.doRal(tick)
	case OP_CSA:
		cpu.doCsa(tick)
	case OP_NOP:
		cpu.doNop(tick)
	case OP_SUB:
		cpu.doSub(code, tick)
	case OP_CMP:
		cpu.doCmp(code, tick)
	}
}

// fetchDone returns to the fetch phase, addressing the next instruction.
func (cpu *Cpu) fetchDone() {
	cpu.Mar = cpu.Pc & ADDRESS_MASK
	cpu.Phase = PHASE_FETCH
}

// aluCycle is the common shape of the memory operand ALU instructions.
// The accumulator is latched into Z, the operand is read into MBR, and
// 'operate' is applied on execute tick 6. If clearA is false, execute
// tick 2 leaves A and MBR untouched.
func (cpu *Cpu) aluCycle(code Code, tick int, clearA bool, operate func(z, m Word)) {
	switch cpu.Phase {
	case PHASE_FETCH:
		switch tick {
		case 5:
			cpu.Z = 0
		case 6:
			cpu.Z = cpu.A
		case 7:
			cpu.Mar = code.Address()
			cpu.Phase = PHASE_EXECUTE
		}
	case PHASE_EXECUTE:
		switch tick {
		case 2:
			if clearA {
				cpu.A = 0
				cpu.Mbr = 0
			}
		case 3:
			cpu.Mbr = cpu.read(cpu.Mar)
		case 6:
			operate(cpu.Z, cpu.Mbr)
		case 7:
			cpu.fetchDone()
		}
	}
}

// unaryCycle is the common shape of the accumulator-only instructions.
// Flags are not changed.
func (cpu *Cpu) unaryCycle(tick int, operate func(z Word) Word) {
	switch cpu.Phase {
	case PHASE_FETCH:
		switch tick {
		case 5:
			cpu.Z = 0
		case 6:
			cpu.Z = cpu.A
		case 7:
			cpu.Phase = PHASE_EXECUTE
		}
	case PHASE_EXECUTE:
		switch tick {
		case 0:
			cpu.A = 0
		case 1:
			cpu.A = operate(cpu.Z)
		case 7:
			cpu.fetchDone()
		}
	}
}

// HLT - halt the processor.
func (cpu *Cpu) doHlt(tick int) {
	switch tick {
	case 6:
		cpu.Power = false
	case 7:
		cpu.Mar = cpu.Pc
	}
}

// ADD - add memory to the accumulator. Signed overflow halts.
func (cpu *Cpu) doAdd(code Code, tick int) {
	cpu.aluCycle(code, tick, true, func(z, m Word) {
		result, carry, overflow := aluAdd(z, m)
		cpu.A = result
		cpu.Flags = MakeFlags(result, carry, overflow)
		if overflow {
			cpu.Power = false
		}
	})
}

// XOR - exclusive or memory into the accumulator.
func (cpu *Cpu) doXor(code Code, tick int) {
	cpu.aluCycle(code, tick, true, func(z, m Word) {
		cpu.A = z ^ m
		cpu.Flags = MakeFlags(cpu.A, false, false)
	})
}

// AND - and memory into the accumulator.
func (cpu *Cpu) doAnd(code Code, tick int) {
	cpu.aluCycle(code, tick, true, func(z, m Word) {
		cpu.A = z & m
		cpu.Flags = MakeFlags(cpu.A, false, false)
	})
}

// IOR - inclusive or memory into the accumulator.
func (cpu *Cpu) doIor(code Code, tick int) {
	cpu.aluCycle(code, tick, true, func(z, m Word) {
		cpu.A = z | m
		cpu.Flags = MakeFlags(cpu.A, false, false)
	})
}

// SUB - subtract memory from the accumulator.
func (cpu *Cpu) doSub(code Code, tick int) {
	cpu.aluCycle(code, tick, true, func(z, m Word) {
		result, carry, overflow := aluSub(z, m)
		cpu.A = result
		cpu.Flags = MakeFlags(result, carry, overflow)
	})
}

// CMP - compare memory with the accumulator. Only the flags change.
func (cpu *Cpu) doCmp(code Code, tick int) {
	cpu.aluCycle(code, tick, false, func(z, m Word) {
		result, carry, overflow := aluSub(z, m)
		cpu.Flags = MakeFlags(result, carry, overflow)
	})
}

// NOT - complement the accumulator.
func (cpu *Cpu) doNot(tick int) {
	cpu.unaryCycle(tick, func(z Word) Word {
		return ^z
	})
}

// RAL - rotate the accumulator left.
func (cpu *Cpu) doRal(tick int) {
	cpu.unaryCycle(tick, func(z Word) Word {
		return ((z & SIGN_BIT) >> 15) | (z << 1)
	})
}

// LDA - load the accumulator from memory.
func (cpu *Cpu) doLda(code Code, tick int) {
	switch cpu.Phase {
	case PHASE_FETCH:
		if tick == 7 {
			cpu.Mar = code.Address()
			cpu.Phase = PHASE_EXECUTE
		}
	case PHASE_EXECUTE:
		switch tick {
		case 1:
			cpu.A = 0
		case 2:
			cpu.Mbr = 0
		case 4:
			cpu.A = cpu.read(cpu.Mar)
			cpu.Mbr = cpu.A
		case 7:
			cpu.fetchDone()
		}
	}
}

// STA - store the accumulator to memory.
func (cpu *Cpu) doSta(code Code, tick int) {
	switch cpu.Phase {
	case PHASE_FETCH:
		if tick == 7 {
			cpu.Mar = code.Address()
			cpu.Phase = PHASE_EXECUTE
		}
	case PHASE_EXECUTE:
		switch tick {
		case 3:
			cpu.Mbr = 0
		case 4:
			cpu.write(cpu.Mar, cpu.A)
			cpu.Mbr = cpu.A
		case 7:
			cpu.fetchDone()
		}
	}
}

// SRJ - subroutine jump. The return address is left in the accumulator.
func (cpu *Cpu) doSrj(code Code, tick int) {
	switch tick {
	case 5:
		cpu.A = cpu.Pc & ADDRESS_MASK
	case 6:
		cpu.Pc = 0
	case 7:
		cpu.Mar = code.Address()
		cpu.Pc = cpu.Mar
	}
}

// JMA - jump if the accumulator is negative.
func (cpu *Cpu) doJma(code Code, tick int) {
	switch tick {
	case 5:
		if (cpu.A & SIGN_BIT) != 0 {
			cpu.Pc = 0
		}
	case 6:
		if (cpu.A & SIGN_BIT) != 0 {
			cpu.Pc = code.Address()
		}
	case 7:
		cpu.Mar = cpu.Pc
	}
}

// JMP - unconditional jump.
func (cpu *Cpu) doJmp(code Code, tick int) {
	switch tick {
	case 5:
		cpu.Pc = 0
	case 6:
		cpu.Pc = code.Address()
	case 7:
		cpu.Mar = cpu.Pc
	}
}

// CSA - copy the switch register to the accumulator.
func (cpu *Cpu) doCsa(tick int) {
	switch tick {
	case 5:
		cpu.A = 0
	case 6:
		cpu.A = cpu.Sr
	case 7:
		cpu.Mar = cpu.Pc
	}
}

// NOP - no operation.
func (cpu *Cpu) doNop(tick int) {
	if tick == 7 {
		cpu.Mar = cpu.Pc
	}
}

// INP - input a byte from the selected device into the accumulator's
// high byte. Execute repeats every cycle until the device is ready.
func (cpu *Cpu) doInp(code Code, tick int) {
	switch cpu.Phase {
	case PHASE_FETCH:
		switch tick {
		case 5:
			cpu.A = 0
			cpu.Dsl = Word(code.Device())
		case 6:
			cpu.Io.TransferActive = true
		case 7:
			cpu.Phase = PHASE_EXECUTE
		}
	case PHASE_EXECUTE:
		switch tick {
		case 4:
			if cpu.Io.Ready {
				cpu.A = (cpu.Dil << 8) & 0xff00
			}
		case 5:
			if cpu.Io.Ready {
				cpu.Io.TransferActive = false
			}
		case 7:
			if !cpu.Io.TransferActive {
				cpu.fetchDone()
			}
		}
	}
}

// OUT - output the accumulator's high byte to the selected device.
// Execute repeats every cycle until the device is ready.
func (cpu *Cpu) doOut(code Code, tick int) {
	switch cpu.Phase {
	case PHASE_FETCH:
		switch tick {
		case 5:
			cpu.Dol = (cpu.A >> 8) & 0x00ff
			cpu.Dsl = Word(code.Device())
		case 6:
			cpu.Io.TransferActive = true
		case 7:
			cpu.Phase = PHASE_EXECUTE
		}
	case PHASE_EXECUTE:
		switch tick {
		case 4:
			if cpu.Io.Ready {
				cpu.Io.TransferActive = false
			}
		case 7:
			if !cpu.Io.TransferActive {
				cpu.fetchDone()
			}
		}
	}
}
