package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus(t *testing.T) {
	assert := assert.New(t)

	tty := &Script{}
	lpt := &Script{}

	bus := &Bus{}
	bus.Attach(1, "tty", tty)
	bus.Attach(0x42, "lpt", lpt)

	dev, err := bus.Device(1)
	assert.NoError(err)
	assert.Equal(tty, dev)

	dev, err = bus.Device(2)
	assert.NoError(err)
	assert.Equal(lpt, dev)

	tty.Queue('a')
	value, err := bus.Input(1)
	assert.NoError(err)
	assert.Equal(uint8('a'), value)

	assert.NoError(bus.Output(2, 'b'))
	assert.Equal([]uint8{'b'}, lpt.FromCpu)
	assert.Equal(0, len(tty.FromCpu))

	_, err = bus.Input(3)
	assert.ErrorIs(err, ErrDeviceInvalid)
	var de *ErrDevice
	assert.ErrorAs(err, &de)
	assert.Equal(uint8(3), de.Selector)
	assert.Equal("device 0x03 device invalid", err.Error())

	bus.Default = tty
	assert.NoError(bus.Output(3, 'c'))
	assert.Equal([]uint8{'c'}, tty.FromCpu)

	bus.Attach(2, "", nil)
	assert.NoError(bus.Output(2, 'd'))
	assert.Equal([]uint8{'c', 'd'}, tty.FromCpu)
}

func TestBusDefines(t *testing.T) {
	assert := assert.New(t)

	bus := &Bus{}
	bus.Attach(1, "tty", &Script{})
	bus.Attach(0x20, "Lpt", &Script{})
	bus.Attach(3, "", &Script{})

	defines := map[string]string{}
	for key, value := range bus.Defines() {
		defines[key] = value
	}

	assert.Equal(map[string]string{
		"DEV_TTY": "0x1",
		"DEV_LPT": "0x20",
	}, defines)
}
