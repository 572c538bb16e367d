// internal/status/encode.go
package status

// Encode splits a raw status value into 16-bit register words, high word first.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(raw uint32) []uint16 {
	regs := make([]uint16, WordsPerRaw)

	regs[0] = uint16(raw >> 16)
	regs[1] = uint16(raw)

	return regs
}

// Decode is the inverse of Encode. Short input decodes as zero.
func Decode(regs []uint16) uint32 {
	if len(regs) < WordsPerRaw {
		return 0
	}
	return uint32(regs[0])<<16 | uint32(regs[1])
}
