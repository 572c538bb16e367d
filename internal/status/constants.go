// internal/status/constants.go
package status

// Status register layout constants.
// These values define the device contract and MUST NOT be configurable.

// ---- BIT POSITIONS ----

// BitReady is set when the last buffer write succeeded.
const BitReady uint = 0

// BitCritical is set when the last successful write stored CriticalValue.
const BitCritical uint = 3

// BitOverheat is set when the last alarm check read above the threshold.
const BitOverheat uint = 4

// BitError is set when the last buffer write was out of bounds.
const BitError uint = 7

// ---- MASKS ----

const (
	MaskReady    uint32 = 1 << BitReady
	MaskCritical uint32 = 1 << BitCritical
	MaskOverheat uint32 = 1 << BitOverheat
	MaskError    uint32 = 1 << BitError
)

// writeMask covers the bits replaced as a group by every buffer write.
const writeMask = MaskReady | MaskCritical | MaskError

// ---- MAGIC VALUES ----

// CriticalValue is the sentinel that flags CRITICAL on an otherwise good write.
const CriticalValue int32 = 0xDEAD

// ---- ENCODING ----

// WordsPerRaw is the number of 16-bit registers a raw status value occupies.
const WordsPerRaw = 2

// names maps bit positions to their names, lowest bit first.
var names = []struct {
	bit  uint
	name string
}{
	{BitReady, "READY"},
	{BitCritical, "CRITICAL"},
	{BitOverheat, "OVERHEAT"},
	{BitError, "ERROR"},
}

// BitByName resolves a bit name (as returned by Register.Bits).
func BitByName(name string) (uint, bool) {
	for _, n := range names {
		if n.name == name {
			return n.bit, true
		}
	}
	return 0, false
}
