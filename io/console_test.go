package io

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleInput(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := NewConsole(strings.NewReader("zz\n\n0x4F\n7"), output)

	value, err := con.Input(1)
	assert.NoError(err)
	assert.Equal(uint8(0x4f), value)
	assert.Equal("input byte: invalid input 'zz', try again\ninput byte: input byte: ", output.String())

	value, err = con.Input(1)
	assert.NoError(err)
	assert.Equal(uint8(0x07), value)

	_, err = con.Input(1)
	assert.ErrorIs(err, io.EOF)
}

func TestConsoleRange(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := NewConsole(strings.NewReader("100\nff\n"), output)

	value, err := con.Input(1)
	assert.NoError(err)
	assert.Equal(uint8(0xff), value)
	assert.Contains(output.String(), "invalid input '100'")
}

func TestConsoleOutput(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := NewConsole(strings.NewReader(""), output)

	assert.NoError(con.Output(2, 0x4f))
	assert.NoError(con.Output(2, 0x00))
	assert.Equal("4f .\n00 .\n", output.String())
}
