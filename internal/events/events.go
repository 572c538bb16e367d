// Package events carries structured device events to an optional sink.
// The device is silent unless a sink is attached.
package events

import "time"

// Kind identifies the device operation that produced an event.
type Kind string

const (
	KindReset          Kind = "reset"
	KindWrite          Kind = "write"
	KindRead           Kind = "read"
	KindAlarmCheck     Kind = "alarm_check"
	KindSensorRegister Kind = "sensor_register"
)

// Event describes one completed device operation.
// Fields not relevant to Kind are left zero.
type Event struct {
	At       time.Time
	DeviceID string
	Kind     Kind

	Index   int
	Value   int32
	Outcome string

	Reading int16
	Alarm   int

	Raw uint32
	Err error
}

// Sink receives device events. Implementations must return quickly;
// Emit is called synchronously after every operation.
type Sink interface {
	Emit(e Event)
}

// Noop discards all events. Usable as a zero value.
type Noop struct{}

func (Noop) Emit(Event) {}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Recorder keeps every event in memory. Intended for tests and the scenario runner.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(e Event) { r.Events = append(r.Events, e) }

var (
	_ Sink = Noop{}
	_ Sink = SinkFunc(nil)
	_ Sink = (*Recorder)(nil)
)
