package cpu

// Processor status flags.
const (
	FLAG_ZERO     = Word(1 << 0)
	FLAG_CARRY    = Word(1 << 1)
	FLAG_OVERFLOW = Word(1 << 2)
	FLAG_NEGATIVE = Word(1 << 3)
)

// MakeFlags computes the flags for an arithmetic result.
func MakeFlags(result Word, carry, overflow bool) (flags Word) {
	if result == 0 {
		flags |= FLAG_ZERO
	}
	if carry {
		flags |= FLAG_CARRY
	}
	if overflow {
		flags |= FLAG_OVERFLOW
	}
	if (result & SIGN_BIT) != 0 {
		flags |= FLAG_NEGATIVE
	}

	return
}

// FlagString renders flags as "zcvn", with '-' for each clear flag.
func FlagString(flags Word) string {
	out := []byte("----")
	for n, ch := range "zcvn" {
		if (flags & (1 << n)) != 0 {
			out[n] = byte(ch)
		}
	}
	return string(out)
}

// aluAdd is the unsigned widening add of z and m.
// Overflow is set when z and m share a sign, and the result does not.
func aluAdd(z, m Word) (result Word, carry, overflow bool) {
	sum := uint32(z) + uint32(m)
	result = Word(sum)
	carry = sum > 0xffff
	overflow = ((z^result)&SIGN_BIT) != 0 && ((z^m)&SIGN_BIT) == 0
	return
}

// aluSub is the two's complement subtraction z - m.
// Carry reports a borrow, and overflow is set when m and the result
// both differ in sign from z.
func aluSub(z, m Word) (result Word, carry, overflow bool) {
	result = z - m
	carry = z < m
	overflow = ((z^m)&SIGN_BIT) != 0 && ((z^result)&SIGN_BIT) != 0
	return
}
