package cpu

import (
	"errors"
	"log"

	"github.com/ezrec/blue/io"
)

// Device is an I/O device attached to the CPU.
type Device io.Device

// Handshake services the I/O handshake. It must be called exactly once
// after each completed instruction cycle.
//
// While an INP or OUT transfer is active and not yet ready, the device is
// asked to produce (or consume) a byte; on success the handshake is
// ready. A device reporting io.ErrNotReady, or a nil device, leaves the
// transfer pending, and the instruction retries on the next cycle. For
// any other instruction, ready is cleared for the next transfer.
func (cpu *Cpu) Handshake(dev Device) (err error) {
	op, err := cpu.Opcode()
	if err != nil {
		return
	}

	selector := uint8(cpu.Dsl & DEVICE_MASK)

	switch op {
	case OP_INP:
		if !cpu.Io.TransferActive {
			cpu.Io.Ready = false
			return
		}
		if cpu.Io.Ready || dev == nil {
			return
		}
		var value uint8
		value, err = dev.Input(selector)
		if errors.Is(err, io.ErrNotReady) {
			err = nil
			return
		}
		if err != nil {
			err = deviceError(selector, err)
			return
		}
		if cpu.Verbose {
			log.Printf("cpu: inp 0x%02x: 0x%02x", selector, value)
		}
		cpu.Dil = Word(value)
		cpu.Io.Ready = true
	case OP_OUT:
		if !cpu.Io.TransferActive {
			cpu.Io.Ready = false
			return
		}
		if cpu.Io.Ready || dev == nil {
			return
		}
		value := uint8(cpu.Dol & 0x00ff)
		err = dev.Output(selector, value)
		if errors.Is(err, io.ErrNotReady) {
			err = nil
			return
		}
		if err != nil {
			err = deviceError(selector, err)
			return
		}
		if cpu.Verbose {
			log.Printf("cpu: out 0x%02x: 0x%02x", selector, value)
		}
		cpu.Io.Ready = true
	default:
		cpu.Io.Ready = false
	}

	return
}

// deviceError wraps a device failure with its selector.
func deviceError(selector uint8, err error) error {
	var de *io.ErrDevice
	if !errors.As(err, &de) {
		err = &io.ErrDevice{Selector: selector, Err: err}
	}

	return errors.Join(ErrHandshake, err)
}
