package io

// Script is a scripted device. Input bytes are consumed from ToCpu in
// order, and OUT bytes are appended to FromCpu. When ToCpu is exhausted,
// Input reports ErrNotReady so the CPU busy-waits.
type Script struct {
	ToCpu   []uint8
	FromCpu []uint8
	Limit   int // If non-zero, the maximum length of FromCpu.

	Selectors []uint8 // Selectors seen, in transfer order.
}

var _ Device = (*Script)(nil)

// Reset clears all queued and captured bytes.
func (sc *Script) Reset() {
	sc.ToCpu = nil
	sc.FromCpu = nil
	sc.Selectors = nil
}

// Queue appends bytes to be delivered to INP instructions.
func (sc *Script) Queue(values ...uint8) {
	sc.ToCpu = append(sc.ToCpu, values...)
}

// Input delivers the next queued byte.
func (sc *Script) Input(selector uint8) (value uint8, err error) {
	if len(sc.ToCpu) == 0 {
		err = ErrNotReady
		return
	}

	value = sc.ToCpu[0]
	sc.ToCpu = sc.ToCpu[1:]
	sc.Selectors = append(sc.Selectors, selector)
	return
}

// Output captures a byte from an OUT instruction.
func (sc *Script) Output(selector uint8, value uint8) (err error) {
	if sc.Limit > 0 && len(sc.FromCpu) >= sc.Limit {
		err = ErrDeviceFull
		return
	}

	sc.FromCpu = append(sc.FromCpu, value)
	sc.Selectors = append(sc.Selectors, selector)
	return
}
