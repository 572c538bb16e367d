// Package device implements the virtual memory-mapped device: a fixed
// data buffer, a bit-encoded status register and a temperature alarm
// driven by a pluggable sensor source.
package device

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tamzrod/vdevice/internal/events"
	"github.com/tamzrod/vdevice/internal/memory"
	"github.com/tamzrod/vdevice/internal/sensor"
	"github.com/tamzrod/vdevice/internal/status"
)

// AlarmThreshold is the highest reading that does NOT raise OVERHEAT.
const AlarmThreshold int16 = 50

// ErrNoSensor is returned by RunAlarmCheck when no sensor source is registered.
var ErrNoSensor = errors.New("device: no sensor source registered")

// Device owns one status register, one buffer and at most one sensor source.
// All operations are serialized by a single lock.
type Device struct {
	mu     sync.Mutex
	id     string
	reg    status.Register
	buf    memory.Buffer
	source sensor.Source
	sink   events.Sink
	now    func() time.Time
}

// Option configures a Device at construction.
type Option func(*Device)

// WithSink attaches an event sink. A nil sink disables events.
func WithSink(s events.Sink) Option {
	return func(d *Device) {
		if s == nil {
			s = events.Noop{}
		}
		d.sink = s
	}
}

// WithSource registers a sensor source at construction.
func WithSource(src sensor.Source) Option {
	return func(d *Device) { d.source = src }
}

// WithID overrides the generated device instance ID.
func WithID(id string) Option {
	return func(d *Device) { d.id = id }
}

// New returns a device in its reset state.
func New(opts ...Option) *Device {
	d := &Device{
		id:   uuid.NewString(),
		sink: events.Noop{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the device instance ID stamped on every event.
func (d *Device) ID() string {
	return d.id
}

// Reset clears the status register and the buffer.
// The registered sensor source is kept.
func (d *Device) Reset() {
	d.mu.Lock()
	d.reg.Reset()
	d.buf.Reset()
	ev := d.event(events.KindReset)
	d.mu.Unlock()

	d.sink.Emit(ev)
}

// Write stores value at index and records the outcome in the status register.
// An out-of-bounds index sets ERROR; writing status.CriticalValue sets CRITICAL
// on top of READY. OVERHEAT is never touched.
func (d *Device) Write(index int, value int32) {
	d.mu.Lock()
	outcome := d.buf.Write(index, value)
	switch outcome {
	case memory.OutOfBounds:
		d.reg.SetWriteOutcome(false, false, true)
	case memory.OK:
		d.reg.SetWriteOutcome(true, value == status.CriticalValue, false)
	}
	ev := d.event(events.KindWrite)
	ev.Index, ev.Value, ev.Outcome = index, value, outcome.String()
	d.mu.Unlock()

	d.sink.Emit(ev)
}

// Read returns the value at index. It never touches the status register.
// Out-of-bounds reads return memory.ReadSentinel and memory.ErrOutOfBounds.
func (d *Device) Read(index int) (int32, error) {
	d.mu.Lock()
	v, err := d.buf.Read(index)
	ev := d.event(events.KindRead)
	ev.Index, ev.Value, ev.Err = index, v, err
	d.mu.Unlock()

	d.sink.Emit(ev)
	return v, err
}

// RawStatus returns the status register verbatim.
func (d *Device) RawStatus() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reg.Raw()
}

// Status returns a copy of the status register for bit queries.
func (d *Device) Status() status.Register {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reg
}

// Snapshot returns the raw status and a copy of the buffer taken atomically.
func (d *Device) Snapshot() (uint32, [memory.Length]int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reg.Raw(), d.buf.Snapshot()
}

// RegisterSensor replaces the current sensor source. nil unregisters it.
func (d *Device) RegisterSensor(src sensor.Source) {
	d.mu.Lock()
	d.source = src
	ev := d.event(events.KindSensorRegister)
	if src == nil {
		ev.Outcome = "unregistered"
	} else {
		ev.Outcome = "registered"
	}
	d.mu.Unlock()

	d.sink.Emit(ev)
}

// RunAlarmCheck samples the sensor once. A reading above AlarmThreshold sets
// OVERHEAT and returns 1; anything else clears it and returns 0.
// Without a registered sensor it returns ErrNoSensor and leaves status as is.
// A sampling failure is returned wrapped, also without touching status.
func (d *Device) RunAlarmCheck() (int, error) {
	d.mu.Lock()
	alarm, reading, err := d.alarmCheckLocked()
	ev := d.event(events.KindAlarmCheck)
	ev.Reading, ev.Alarm, ev.Err = reading, alarm, err
	d.mu.Unlock()

	d.sink.Emit(ev)
	return alarm, err
}

func (d *Device) alarmCheckLocked() (int, int16, error) {
	if d.source == nil {
		return 0, 0, ErrNoSensor
	}

	reading, err := d.source.Sample()
	if err != nil {
		return 0, 0, fmt.Errorf("device: sensor sample failed: %w", err)
	}

	overheat := reading > AlarmThreshold
	d.reg.SetAlarmOutcome(overheat)
	if overheat {
		return 1, reading, nil
	}
	return 0, reading, nil
}

// event builds the common part of an event. Caller holds mu.
func (d *Device) event(kind events.Kind) events.Event {
	return events.Event{
		At:       d.now(),
		DeviceID: d.id,
		Kind:     kind,
		Raw:      d.reg.Raw(),
	}
}
