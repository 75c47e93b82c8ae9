package io

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

// Bus routes transfers by device selector to attached devices.
// Selectors with no attached device use Default, if set.
type Bus struct {
	Default Device

	devices map[uint8]Device
	names   map[uint8]string
}

var _ Device = (*Bus)(nil)

// Attach a device to a selector. A nil device detaches the selector.
// The name is exported as an assembler define, DEV_<NAME>.
func (bus *Bus) Attach(selector uint8, name string, dev Device) {
	selector &= SELECTOR_MASK

	if bus.devices == nil {
		bus.devices = make(map[uint8]Device)
		bus.names = make(map[uint8]string)
	}

	if dev == nil {
		delete(bus.devices, selector)
		delete(bus.names, selector)
		return
	}

	bus.devices[selector] = dev
	bus.names[selector] = name
}

// Device returns the device handling a selector.
func (bus *Bus) Device(selector uint8) (dev Device, err error) {
	dev, ok := bus.devices[selector&SELECTOR_MASK]
	if !ok {
		dev = bus.Default
	}

	if dev == nil {
		err = &ErrDevice{Selector: selector, Err: ErrDeviceInvalid}
		return
	}

	return
}

// Defines returns an iter of the selector defines for attached devices.
func (bus *Bus) Defines() iter.Seq2[string, string] {
	defines := map[string]string{}
	for selector, name := range bus.names {
		if len(name) == 0 {
			continue
		}
		defines["DEV_"+strings.ToUpper(name)] = fmt.Sprintf("%#x", selector)
	}

	return maps.All(defines)
}

// Input routes an INP to the selected device.
func (bus *Bus) Input(selector uint8) (value uint8, err error) {
	dev, err := bus.Device(selector)
	if err != nil {
		return
	}

	return dev.Input(selector)
}

// Output routes an OUT to the selected device.
func (bus *Bus) Output(selector uint8, value uint8) (err error) {
	dev, err := bus.Device(selector)
	if err != nil {
		return
	}

	return dev.Output(selector, value)
}
