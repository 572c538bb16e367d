// internal/monitor/monitor.go
package monitor

import (
	"errors"
	"time"

	"github.com/tamzrod/vdevice/internal/memory"
	"github.com/tamzrod/vdevice/internal/mirror"
)

// Device is the slice of device.Device the monitor drives.
type Device interface {
	RunAlarmCheck() (int, error)
	Snapshot() (uint32, [memory.Length]int32)
}

// Config is the minimal runtime config the monitor needs.
type Config struct {
	Name     string
	Interval time.Duration
}

// Monitor is a dumb, clock-driven alarm checker.
type Monitor struct {
	cfg Config
	dev Device
	pub Publisher // optional

	now func() time.Time
}

// New creates a monitor with immutable config. pub may be nil.
func New(cfg Config, dev Device, pub Publisher) (*Monitor, error) {
	if dev == nil {
		return nil, errors.New("monitor: device required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("monitor: interval must be > 0")
	}
	return &Monitor{cfg: cfg, dev: dev, pub: pub, now: time.Now}, nil
}

// CheckOnce performs exactly one alarm check and captures the resulting state.
func (m *Monitor) CheckOnce() Result {
	res := Result{At: m.now()}

	res.Alarm, res.Err = m.dev.RunAlarmCheck()

	raw, buf := m.dev.Snapshot()
	res.Raw = raw
	res.Snapshot = mirror.Snapshot{Raw: raw, Buffer: buf}

	return res
}
