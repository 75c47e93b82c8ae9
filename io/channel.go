// Package io provides device implementations for the Blue machine's
// INP/OUT handshake. Devices exchange single bytes with the CPU, selected
// by the 6-bit device selector latched in DSL. It includes a scripted
// device for tests (Script), raw byte streams (Tape), an operator console
// (Console), and a selector bus (Bus) to route between them.
package io

// SELECTOR_MASK masks the device selector field of an INP/OUT instruction.
const SELECTOR_MASK = 0x3f

// Device defines the interface for all I/O devices attached to the machine.
type Device interface {
	// Input returns the next byte for an INP from device 'selector'.
	// Returning ErrNotReady leaves the handshake pending for another cycle.
	Input(selector uint8) (value uint8, err error)
	// Output consumes a byte from an OUT to device 'selector'.
	// Returning ErrNotReady leaves the handshake pending for another cycle.
	Output(selector uint8, value uint8) (err error)
}
