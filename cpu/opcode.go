package cpu

import (
	"fmt"
)

// Opcode is a decoded instruction tag.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_HLT = Opcode(0)  // hlt
	OP_ADD = Opcode(1)  // add
	OP_XOR = Opcode(2)  // xor
	OP_AND = Opcode(3)  // and
	OP_IOR = Opcode(4)  // ior
	OP_NOT = Opcode(5)  // not
	OP_LDA = Opcode(6)  // lda
	OP_STA = Opcode(7)  // sta
	OP_SRJ = Opcode(8)  // srj
	OP_JMA = Opcode(9)  // jma
	OP_JMP = Opcode(10) // jmp
	OP_INP = Opcode(11) // inp
	OP_OUT = Opcode(12) // out
	OP_RAL = Opcode(13) // ral
	OP_CSA = Opcode(14) // csa
	OP_NOP = Opcode(15) // nop
	OP_SUB = Opcode(16) // sub
	OP_CMP = Opcode(17) // cmp
)

// Instruction word layout.
//
// Base instructions hold the opcode in bits 15..12, and the address (or
// device selector) in bits 11..0. The NOP opcode with bit 11 set is the
// extension escape: bits 10..8 select opcode 16+n, and bits 7..0 hold the
// address.
const (
	OPCODE_SHIFT        = 12
	OPCODE_MASK         = Word(0xf000)
	ADDRESS_MASK        = Word(0x0fff)
	DEVICE_MASK         = Word(0x003f)
	EXTEND_BIT          = Word(0x0800)
	EXTEND_SHIFT        = 8
	EXTEND_MASK         = Word(0x0007)
	EXTEND_ADDRESS_MASK = Word(0x00ff)
	OPCODE_EXTEND_BASE  = 16
)

// Decode maps a 5-bit opcode field to an instruction tag.
func Decode(field uint8) (op Opcode, ok bool) {
	if field > uint8(OP_CMP) {
		return
	}

	op = Opcode(field)
	ok = true
	return
}

// Extended returns true for the opcodes encoded via the extension escape.
func (op Opcode) Extended() bool {
	return op >= OPCODE_EXTEND_BASE
}

// OperandMask returns the mask of the operand field used by the opcode,
// or zero if the opcode takes no operand.
func (op Opcode) OperandMask() Word {
	switch op {
	case OP_ADD, OP_XOR, OP_AND, OP_IOR, OP_LDA, OP_STA, OP_SRJ, OP_JMA, OP_JMP:
		return ADDRESS_MASK
	case OP_INP, OP_OUT:
		return DEVICE_MASK
	case OP_SUB, OP_CMP:
		return EXTEND_ADDRESS_MASK
	}

	return 0
}

// Code is a single instruction word.
type Code Word

// MakeCode creates an instruction word from an opcode and its operand.
// Operand bits outside the opcode's operand field are discarded.
func MakeCode(op Opcode, operand Word) Code {
	operand &= op.OperandMask()

	if op.Extended() {
		ext := Word(op-OPCODE_EXTEND_BASE) & EXTEND_MASK
		return Code((Word(OP_NOP) << OPCODE_SHIFT) | EXTEND_BIT | (ext << EXTEND_SHIFT) | operand)
	}

	return Code((Word(op) << OPCODE_SHIFT) | operand)
}

// Field returns the 5-bit opcode field of the instruction word.
func (code Code) Field() uint8 {
	word := Word(code)
	field := uint8(word >> OPCODE_SHIFT)
	if field == uint8(OP_NOP) && (word&EXTEND_BIT) != 0 {
		field = OPCODE_EXTEND_BASE + uint8((word>>EXTEND_SHIFT)&EXTEND_MASK)
	}
	return field
}

// Opcode decodes the instruction tag of the instruction word.
func (code Code) Opcode() (op Opcode, err error) {
	op, ok := Decode(code.Field())
	if !ok {
		err = ErrOpcode(code)
		return
	}

	return
}

// Address returns the effective address field of the instruction word.
func (code Code) Address() Word {
	word := Word(code)
	if code.Field() >= OPCODE_EXTEND_BASE {
		return word & EXTEND_ADDRESS_MASK
	}
	return word & ADDRESS_MASK
}

// Device returns the device selector field of the instruction word.
func (code Code) Device() uint8 {
	return uint8(Word(code) & DEVICE_MASK)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	op, err := code.Opcode()
	if err != nil {
		return fmt.Sprintf(".word %#04x", uint16(code))
	}

	switch op.OperandMask() {
	case 0:
		out = op.String()
	case DEVICE_MASK:
		out = fmt.Sprintf("%v %#02x", op, code.Device())
	default:
		out = fmt.Sprintf("%v %#03x", op, code.Address())
	}

	return
}
