package io

import (
	"errors"
	"io"
)

// Tape provides sequential byte I/O. It wraps an io.Reader for INP and an
// io.Writer for OUT. The device selector is ignored.
type Tape struct {
	Reader io.Reader
	Writer io.Writer

	Read    int // Count of bytes read.
	Written int // Count of bytes written.
}

var _ Device = (*Tape)(nil)

// Input reads a single byte from the tape reader. End of tape is reported
// as io.EOF, which stops the run rather than stalling forever.
func (tc *Tape) Input(selector uint8) (value uint8, err error) {
	if tc.Reader == nil {
		err = ErrNotReady
		return
	}

	var one [1]byte
	for {
		var n int
		n, err = tc.Reader.Read(one[:])
		if n == 1 {
			err = nil
			break
		}
		if err != nil {
			return
		}
	}

	tc.Read++
	value = one[0]
	return
}

// Output writes a single byte to the tape writer.
func (tc *Tape) Output(selector uint8, value uint8) (err error) {
	if tc.Writer == nil {
		err = ErrNotReady
		return
	}

	_, err = tc.Writer.Write([]byte{value})
	if errors.Is(err, io.ErrShortWrite) {
		err = ErrNotReady
		return
	}
	if err != nil {
		return
	}

	tc.Written++
	return
}
