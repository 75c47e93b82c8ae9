package io

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/blue/translate"
)

// Console is the operator's terminal. INP prompts for a hexadecimal byte,
// re-prompting until a valid one is entered. OUT prints the byte in
// hexadecimal.
type Console struct {
	Reader *bufio.Reader
	Writer io.Writer
}

var _ Device = (*Console)(nil)

// NewConsole creates a console on a reader and a writer.
func NewConsole(r io.Reader, w io.Writer) (con *Console) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	con = &Console{
		Reader: br,
		Writer: w,
	}

	return
}

// Input prompts the operator until a valid hexadecimal byte is entered.
// A closed reader is reported as io.EOF.
func (con *Console) Input(selector uint8) (value uint8, err error) {
	for {
		translate.Fprint(con.Writer, "input byte: ")

		var line string
		line, err = con.Reader.ReadString('\n')
		text := strings.TrimSpace(line)
		if len(text) > 0 {
			v64, perr := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(text), "0x"), 16, 8)
			if perr == nil {
				value = uint8(v64)
				err = nil
				return
			}
			translate.Fprint(con.Writer, "invalid input '%v', try again\n", text)
		}

		if err != nil {
			return
		}
	}
}

// Output prints the byte to the operator.
func (con *Console) Output(selector uint8, value uint8) (err error) {
	_, err = translate.Fprint(con.Writer, "%02x .\n", value)
	return
}
