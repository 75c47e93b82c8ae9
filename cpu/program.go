package cpu

import (
	"iter"
)

// Statement represents a line of assembled code with its source location
// and generated instruction words.
type Statement struct {
	LineNo    int
	Addr      int
	Words     []string
	Codes     []Code
	LinkLabel string
}

// Program is an assembled program listing.
type Program struct {
	Statements []Statement
}

// Debug locates the statement that generated a memory address.
type Debug struct {
	*Statement
	Index int
}

// Debug returns the statement holding 'addr', if any.
func (prog *Program) Debug(addr Word) (dbg Debug) {
	for n, st := range prog.Statements {
		if int(addr) >= st.Addr && int(addr) < st.Addr+len(st.Codes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     int(addr) - st.Addr,
			}
			break
		}
	}

	return
}

// Codes iterates over each address and its instruction word.
func (prog *Program) Codes() iter.Seq2[Word, Code] {
	return func(yield func(addr Word, code Code) bool) {
		for _, st := range prog.Statements {
			for n, code := range st.Codes {
				if !yield(Word(st.Addr+n), code) {
					return
				}
			}
		}
	}
}

// Image returns the memory image of the program, from address zero to the
// highest assembled address.
func (prog *Program) Image() (image []Word) {
	for addr, code := range prog.Codes() {
		if int(addr) >= len(image) {
			image = append(image, make([]Word, int(addr)+1-len(image))...)
		}
		image[addr] = Word(code)
	}

	return
}
