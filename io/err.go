package io

import (
	"errors"

	"github.com/ezrec/blue/translate"
)

var f = translate.From

var (
	// Device errors
	ErrNotReady      = errors.New(f("device not ready"))
	ErrDeviceInvalid = errors.New(f("device invalid"))
	ErrDeviceFull    = errors.New(f("device full"))
)

// ErrDevice indicates the device selector of a failed transfer.
type ErrDevice struct {
	Selector uint8
	Err      error
}

func (err *ErrDevice) Error() string {
	return f("device 0x%02x %v", err.Selector, err.Err)
}

func (err *ErrDevice) Unwrap() error {
	return err.Err
}
