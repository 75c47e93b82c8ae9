package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	for field := range uint8(32) {
		op, ok := Decode(field)
		if field <= uint8(OP_CMP) {
			assert.True(ok, "field %d", field)
			assert.Equal(Opcode(field), op)
		} else {
			assert.False(ok, "field %d", field)
		}
	}
}

func TestCodeField(t *testing.T) {
	table := map[Code]struct {
		field   uint8
		address Word
		device  uint8
	}{
		0x0000: {0, 0, 0},
		0x1abc: {1, 0xabc, 0x3c},
		0xb001: {11, 0x001, 0x01},
		0xf000: {15, 0x000, 0x00},
		0xf7ff: {15, 0x7ff, 0x3f},
		0xf811: {16, 0x11, 0x11},
		0xf9ff: {17, 0xff, 0x3f},
		0xfa00: {18, 0x00, 0x00},
		0xff00: {23, 0x00, 0x00},
	}

	for code, expect := range table {
		assert := assert.New(t)
		assert.Equal(expect.field, code.Field(), "%04x", uint16(code))
		assert.Equal(expect.address, code.Address(), "%04x", uint16(code))
		assert.Equal(expect.device, code.Device(), "%04x", uint16(code))
	}
}

func TestCodeOpcode(t *testing.T) {
	assert := assert.New(t)

	op, err := Code(0xf811).Opcode()
	assert.NoError(err)
	assert.Equal(OP_SUB, op)

	op, err = Code(0xf911).Opcode()
	assert.NoError(err)
	assert.Equal(OP_CMP, op)

	op, err = Code(0xf7ff).Opcode()
	assert.NoError(err)
	assert.Equal(OP_NOP, op)

	_, err = Code(0xfa00).Opcode()
	assert.ErrorIs(err, ErrOpcode(0))
	assert.Equal("bad opcode 0xfa00 (field 18)", err.Error())
}

func TestMakeCode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Code(0x0000), MakeCode(OP_HLT, 0x123))
	assert.Equal(Code(0x6123), MakeCode(OP_LDA, 0x123))
	assert.Equal(Code(0xb03f), MakeCode(OP_INP, 0xff))
	assert.Equal(Code(0xf000), MakeCode(OP_NOP, 0))
	assert.Equal(Code(0xf823), MakeCode(OP_SUB, 0x123))
	assert.Equal(Code(0xf923), MakeCode(OP_CMP, 0x23))

	for op := OP_HLT; op <= OP_CMP; op++ {
		code := MakeCode(op, 0x2a)
		decoded, err := code.Opcode()
		assert.NoError(err)
		assert.Equal(op, decoded, "%v", op)
	}
}

func TestCodeString(t *testing.T) {
	table := map[Code]string{
		0x0000: "hlt",
		0x1010: "add 0x010",
		0x5000: "not",
		0xb001: "inp 0x01",
		0xc03f: "out 0x3f",
		0xf000: "nop",
		0xf811: "sub 0x011",
		0xf9ff: "cmp 0x0ff",
		0xfa00: ".word 0xfa00",
	}

	for code, expect := range table {
		assert.Equal(t, expect, code.String())
	}
}

func TestOpcodeString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("hlt", OP_HLT.String())
	assert.Equal("csa", OP_CSA.String())
	assert.Equal("cmp", OP_CMP.String())
}
