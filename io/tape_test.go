package io

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type shortWriter struct{}

func (shortWriter) Write(p []byte) (n int, err error) {
	err = io.ErrShortWrite
	return
}

func TestTape(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{
		Reader: strings.NewReader("AB"),
		Writer: output,
	}

	value, err := tape.Input(0)
	assert.NoError(err)
	assert.Equal(uint8('A'), value)
	value, err = tape.Input(0x3f)
	assert.NoError(err)
	assert.Equal(uint8('B'), value)

	_, err = tape.Input(0)
	assert.ErrorIs(err, io.EOF)
	assert.Equal(2, tape.Read)

	assert.NoError(tape.Output(0, 'x'))
	assert.NoError(tape.Output(0, 'y'))
	assert.Equal("xy", output.String())
	assert.Equal(2, tape.Written)
}

func TestTapeNotReady(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	_, err := tape.Input(0)
	assert.ErrorIs(err, ErrNotReady)
	assert.ErrorIs(tape.Output(0, 1), ErrNotReady)

	tape.Writer = shortWriter{}
	assert.ErrorIs(tape.Output(0, 1), ErrNotReady)
	assert.Equal(0, tape.Written)
}
