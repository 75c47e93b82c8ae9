package cpu

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"strconv"
	"strings"
)

// ReadImage reads a raw binary program image of little-endian words.
// An odd trailing byte is zero padded.
func ReadImage(r io.Reader) (image []Word, err error) {
	br := bufio.NewReader(r)

	var pair [2]byte
	for {
		var n int
		n, err = io.ReadFull(br, pair[:])
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			pair[1] = 0
			err = nil
		}
		if err != nil {
			return
		}
		if len(image) == MEMORY_SIZE {
			err = ErrImageSize
			return
		}
		image = append(image, binary.LittleEndian.Uint16(pair[:]))
		if n < len(pair) {
			return
		}
	}
}

// WriteImage writes a raw binary program image of little-endian words.
func WriteImage(w io.Writer, image []Word) (err error) {
	err = binary.Write(w, binary.LittleEndian, image)
	return
}

// ReadHexImage reads a program image of whitespace separated hexadecimal
// words.
func ReadHexImage(r io.Reader) (image []Word, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		token := scanner.Text()
		digits := strings.TrimPrefix(strings.ToLower(token), "0x")
		var v64 uint64
		v64, err = strconv.ParseUint(digits, 16, 16)
		if err != nil {
			err = ErrParseNumber(token)
			return
		}
		if len(image) == MEMORY_SIZE {
			err = ErrImageSize
			return
		}
		image = append(image, Word(v64))
	}

	err = scanner.Err()
	return
}
