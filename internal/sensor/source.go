// Package sensor defines the temperature source the device samples during
// alarm checks.
package sensor

import "sync"

// Source produces one temperature reading on demand.
// Stub sources never fail; hardware-backed sources may.
type Source interface {
	Sample() (int16, error)
}

// Fixed always reads the same value.
type Fixed int16

func (f Fixed) Sample() (int16, error) { return int16(f), nil }

// Func adapts a plain function to Source.
type Func func() int16

func (f Func) Sample() (int16, error) { return f(), nil }

// Sequence replays a list of readings in order.
// Once exhausted it keeps returning the last value.
type Sequence struct {
	mu     sync.Mutex
	values []int16
	next   int
}

// NewSequence returns a Sequence over values. An empty sequence reads 0.
func NewSequence(values ...int16) *Sequence {
	cp := make([]int16, len(values))
	copy(cp, values)
	return &Sequence{values: cp}
}

func (s *Sequence) Sample() (int16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 {
		return 0, nil
	}
	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return v, nil
}

var (
	_ Source = Fixed(0)
	_ Source = Func(nil)
	_ Source = (*Sequence)(nil)
)
