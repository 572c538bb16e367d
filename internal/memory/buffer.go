// internal/memory/buffer.go
package memory

import "errors"

// Length is the fixed number of 32-bit slots in the device buffer.
const Length = 10

// ReadSentinel is returned alongside ErrOutOfBounds by Read.
// It matches what the firmware hands back for a bad index.
const ReadSentinel int32 = -1

// ErrOutOfBounds reports an index outside [0, Length).
var ErrOutOfBounds = errors.New("memory: index out of bounds")

// Outcome is the result of a buffer write.
type Outcome int

const (
	OK Outcome = iota
	OutOfBounds
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case OutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

// Buffer is a fixed-capacity array of signed 32-bit words.
// The zero value is a zeroed buffer.
type Buffer struct {
	slots [Length]int32
}

func inBounds(index int) bool {
	return index >= 0 && index < Length
}

// Write stores value at index.
// Out-of-bounds writes do not mutate the buffer.
func (b *Buffer) Write(index int, value int32) Outcome {
	if !inBounds(index) {
		return OutOfBounds
	}
	b.slots[index] = value
	return OK
}

// Read returns the value at index, or ReadSentinel and ErrOutOfBounds.
func (b *Buffer) Read(index int) (int32, error) {
	if !inBounds(index) {
		return ReadSentinel, ErrOutOfBounds
	}
	return b.slots[index], nil
}

// Reset zeroes every slot.
func (b *Buffer) Reset() {
	b.slots = [Length]int32{}
}

// Snapshot returns a copy of all slots.
func (b *Buffer) Snapshot() [Length]int32 {
	return b.slots
}
