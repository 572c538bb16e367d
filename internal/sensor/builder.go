// internal/sensor/builder.go
package sensor

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/vdevice/internal/config"
	smodbus "github.com/tamzrod/vdevice/internal/sensor/modbus"
)

// Build constructs the configured Source and its closer.
// Kind "" yields a nil Source: the device starts with no sensor registered.
// Assumes config has already passed validation and normalization.
func Build(c cfg.SensorConfig) (Source, func() error, error) {
	noop := func() error { return nil }

	switch c.Kind {
	case cfg.SensorNone:
		return nil, noop, nil

	case cfg.SensorFixed:
		if c.Value == nil {
			return nil, nil, fmt.Errorf("sensor: kind %q requires value", c.Kind)
		}
		return Fixed(*c.Value), noop, nil

	case cfg.SensorSequence:
		return NewSequence(c.Values...), noop, nil

	case cfg.SensorModbus:
		// initial connection (fail fast at startup)
		src, err := smodbus.New(smodbus.Config{
			Endpoint: c.Endpoint,
			UnitID:   c.UnitID,
			FC:       c.FC,
			Address:  c.Address,
			Divisor:  c.Divisor,
			Timeout:  time.Duration(c.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil

	default:
		return nil, nil, fmt.Errorf("sensor: unknown kind %q", c.Kind)
	}
}
