package emulator

import (
	"errors"

	"github.com/ezrec/blue/translate"
)

var f = translate.From

var (
	ErrCommand  = errors.New(f("command invalid"))
	ErrArgument = errors.New(f("argument invalid"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     uint16
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc 0x%03x %v", err.Pc, err.Err)
	}
	return f("pc 0x%03x line %d %v", err.Pc, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
