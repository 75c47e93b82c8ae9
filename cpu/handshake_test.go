package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/blue/io"
)

// runDevice runs the cpu, servicing the handshake after each cycle.
func runDevice(cpu *Cpu, dev Device, maxCycles int) (err error) {
	for range maxCycles {
		err = cpu.Cycle()
		if err != nil {
			return
		}
		err = cpu.Handshake(dev)
		if err != nil {
			return
		}
		if !cpu.Power {
			return
		}
	}

	return
}

func TestHandshakeEcho(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]Word{
		0xb001, // inp 0x01
		0xc002, // out 0x02
		0xb001, // inp 0x01
		0xc002, // out 0x02
		0x0000, // hlt
	}))
	cpu.PowerOn()

	dev := &io.Script{}
	dev.Queue(0xaa, 0xbb)

	err := runDevice(cpu, dev, 100)
	assert.NoError(err)
	assert.False(cpu.Power)
	assert.Equal([]uint8{0xaa, 0xbb}, dev.FromCpu)
	assert.Equal([]uint8{0x01, 0x02, 0x01, 0x02}, dev.Selectors)
	assert.Equal(Word(0xbb00), cpu.A)
	assert.False(cpu.Io.TransferActive)
	assert.Equal(Word(5), cpu.Pc)
	assert.Equal(9, cpu.Cycles)
}

func TestHandshakeStall(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]Word{
		0xb001, // inp 0x01
		0x0000, // hlt
	}))
	cpu.PowerOn()

	dev := &io.Script{}

	err := runDevice(cpu, dev, 10)
	assert.NoError(err)
	assert.True(cpu.Power)
	assert.True(cpu.Io.TransferActive)
	assert.False(cpu.Io.Ready)
	assert.Equal(PHASE_EXECUTE, cpu.Phase)
	assert.Equal(Word(1), cpu.Pc)

	dev.Queue(0x42)
	err = runDevice(cpu, dev, 10)
	assert.NoError(err)
	assert.False(cpu.Power)
	assert.Equal(Word(0x4200), cpu.A)
	assert.Equal(Word(2), cpu.Pc)
}

func TestHandshakeNilDevice(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]Word{0xc002, 0x0000}))
	cpu.PowerOn()

	err := runDevice(cpu, nil, 5)
	assert.NoError(err)
	assert.True(cpu.Power)
	assert.True(cpu.Io.TransferActive)
}

func TestHandshakeDeviceError(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]Word{0xc003, 0x0000}))
	cpu.PowerOn()

	dev := &io.Script{Limit: 1}
	dev.FromCpu = []uint8{0x00}

	err := runDevice(cpu, dev, 5)
	assert.ErrorIs(err, ErrHandshake)
	assert.ErrorIs(err, io.ErrDeviceFull)

	var de *io.ErrDevice
	assert.True(errors.As(err, &de))
	assert.Equal(uint8(0x03), de.Selector)
}

func TestHandshakeBusInvalid(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]Word{0xb007, 0x0000}))
	cpu.PowerOn()

	bus := &io.Bus{}
	bus.Attach(1, "tty", &io.Script{})

	err := runDevice(cpu, bus, 5)
	assert.ErrorIs(err, ErrHandshake)
	assert.ErrorIs(err, io.ErrDeviceInvalid)

	var de *io.ErrDevice
	assert.True(errors.As(err, &de))
	assert.Equal(uint8(0x07), de.Selector)
}
