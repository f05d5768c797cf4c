package montgomery

import (
	"fmt"
	"strings"
)

// Steps holds the intermediate values of a single Montgomery reduction.
type Steps struct {
	Input  int32 // a
	Low    int16 // a mod R, as a signed 16-bit value
	M      int16 // Low * QInv mod R
	MQ     int32 // M * Q
	Diff   int32 // Input - MQ, a multiple of R
	Result int16 // Diff >> LogR
}

// ReduceSteps runs the same computation as Reduce and records every
// intermediate. Result always equals Reduce(a).
func ReduceSteps(a int32) Steps {
	s := Steps{Input: a, Low: int16(a)}
	s.M = s.Low * QInv
	s.MQ = int32(s.M) * Q
	s.Diff = a - s.MQ
	s.Result = int16(s.Diff >> LogR)
	return s
}

// String renders each step in decimal and in binary, grouped by nibble.
func (s Steps) String() string {
	var b strings.Builder
	row := func(label string, v int64, bits string) {
		fmt.Fprintf(&b, "%-16s %11d  %s\n", label, v, bits)
	}
	row("a", int64(s.Input), binary32(uint32(s.Input)))
	row("a mod R", int64(s.Low), binary16(uint16(s.Low)))
	row("m = low*QInv", int64(s.M), binary16(uint16(s.M)))
	row("m*q", int64(s.MQ), binary32(uint32(s.MQ)))
	row("a - m*q", int64(s.Diff), binary32(uint32(s.Diff)))
	row("(a - m*q) >> 16", int64(s.Result), binary16(uint16(s.Result)))
	return b.String()
}

func binary16(x uint16) string {
	return groupBits(fmt.Sprintf("%016b", x))
}

func binary32(x uint32) string {
	return groupBits(fmt.Sprintf("%032b", x))
}

// groupBits inserts a space every 4 characters.
func groupBits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+4])
	}
	return b.String()
}
