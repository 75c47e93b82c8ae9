package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateRegister(t *testing.T) {
	assert := assert.New(t)

	st := &State{}

	assert.NoError(st.SetRegister("pc", 0x1234))
	assert.Equal(Word(0x234), st.Pc)

	assert.NoError(st.SetRegister("MAR", 0xffff))
	assert.Equal(Word(0xfff), st.Mar)

	assert.NoError(st.SetRegister("a", 0xbeef))
	value, err := st.Register("A")
	assert.NoError(err)
	assert.Equal(Word(0xbeef), value)

	assert.NoError(st.SetRegister("Sr", 0x55aa))
	assert.Equal(Word(0x55aa), st.Sr)

	st.Flags = FLAG_CARRY
	value, err = st.Register("flags")
	assert.NoError(err)
	assert.Equal(FLAG_CARRY, value)

	err = st.SetRegister("flags", 0)
	assert.ErrorIs(err, ErrRegisterInvalid)
	err = st.SetRegister("dol", 0)
	assert.ErrorIs(err, ErrRegisterInvalid)

	_, err = st.Register("r0")
	assert.ErrorIs(err, ErrRegisterInvalid)
	assert.Equal(ErrRegister("r0"), err)
}

func TestStateMemoryWraps(t *testing.T) {
	assert := assert.New(t)

	st := &State{}
	st.write(0x1010, 0x4242)
	assert.Equal(Word(0x4242), st.Memory[0x010])
	assert.Equal(Word(0x4242), st.read(0xf010))
}
