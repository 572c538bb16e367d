// internal/status/register.go
package status

// Register is the 32-bit device status bitfield.
// The zero value is a cleared register.
//
// Write-category bits (READY, CRITICAL, ERROR) and the alarm bit (OVERHEAT)
// are owned by different setters and never disturb each other.
type Register struct {
	bits uint32
}

// Raw returns the bitfield verbatim.
func (r Register) Raw() uint32 {
	return r.bits
}

// IsSet reports whether the bit at position bit is 1.
func (r Register) IsSet(bit uint) bool {
	if bit >= 32 {
		return false
	}
	return r.bits&(1<<bit) != 0
}

func (r Register) Ready() bool    { return r.IsSet(BitReady) }
func (r Register) Critical() bool { return r.IsSet(BitCritical) }
func (r Register) Overheat() bool { return r.IsSet(BitOverheat) }
func (r Register) HasError() bool { return r.IsSet(BitError) }

// Bits returns the names of all set bits, lowest first.
func (r Register) Bits() []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if r.IsSet(n.bit) {
			out = append(out, n.name)
		}
	}
	return out
}

// SetWriteOutcome replaces READY, CRITICAL and ERROR with the given outcome.
// OVERHEAT is left untouched.
func (r *Register) SetWriteOutcome(ready, critical, err bool) {
	r.bits &^= writeMask
	if ready {
		r.bits |= MaskReady
	}
	if critical {
		r.bits |= MaskCritical
	}
	if err {
		r.bits |= MaskError
	}
}

// SetAlarmOutcome replaces OVERHEAT only.
func (r *Register) SetAlarmOutcome(overheat bool) {
	r.bits &^= MaskOverheat
	if overheat {
		r.bits |= MaskOverheat
	}
}

// Reset clears every bit.
func (r *Register) Reset() {
	r.bits = 0
}
