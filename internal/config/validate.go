// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/vdevice/internal/status"
)

// Ops accepted in steps.
const (
	OpReset          = "reset"
	OpWrite          = "write"
	OpRead           = "read"
	OpStatus         = "status"
	OpAlarm          = "alarm"
	OpRegisterSensor = "register_sensor"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	// device_name sanity (ASCII only)
	for i := 0; i < len(cfg.Device.Name); i++ {
		if cfg.Device.Name[i] > 0x7F {
			return fmt.Errorf("device.name must contain ASCII characters only")
		}
	}

	if cfg.Monitor.IntervalMs < 0 {
		return fmt.Errorf("monitor.interval_ms must be >= 0")
	}

	if err := validateSensor(cfg.Sensor); err != nil {
		return err
	}

	if cfg.Mirror != nil {
		if err := validateMirror(*cfg.Mirror); err != nil {
			return err
		}
	}

	for i, s := range cfg.Steps {
		if err := validateStep(s); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	return nil
}

func validateSensor(s SensorConfig) error {
	switch s.Kind {
	case SensorNone:
		return nil

	case SensorFixed:
		if s.Value == nil {
			return fmt.Errorf("sensor: kind %q requires value", s.Kind)
		}

	case SensorSequence:
		if len(s.Values) == 0 {
			return fmt.Errorf("sensor: kind %q requires at least one value", s.Kind)
		}

	case SensorModbus:
		if s.Endpoint == "" {
			return fmt.Errorf("sensor: kind %q requires endpoint", s.Kind)
		}
		if s.FC != 0 && s.FC != 3 && s.FC != 4 {
			return fmt.Errorf("sensor: fc must be 3 or 4, got %d", s.FC)
		}
		if s.Divisor < 0 {
			return fmt.Errorf("sensor: divisor must be > 0")
		}
		if s.TimeoutMs < 0 {
			return fmt.Errorf("sensor: timeout_ms must be >= 0")
		}

	default:
		return fmt.Errorf("sensor: unknown kind %q", s.Kind)
	}
	return nil
}

func validateMirror(m MirrorConfig) error {
	switch m.Transport {
	case TransportModbus, TransportIngest:
	default:
		return fmt.Errorf("mirror: unknown transport %q", m.Transport)
	}
	if m.Endpoint == "" {
		return fmt.Errorf("mirror: endpoint required")
	}
	if m.TimeoutMs < 0 {
		return fmt.Errorf("mirror: timeout_ms must be >= 0")
	}
	return nil
}

func validateStep(s StepConfig) error {
	switch s.Op {
	case OpReset, OpWrite, OpRead, OpStatus, OpAlarm:
	case OpRegisterSensor:
		if s.Sensor == nil {
			return fmt.Errorf("op %q requires sensor", s.Op)
		}
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}

	if s.Expect == nil {
		return nil
	}

	if s.Expect.Value != nil && s.Op != OpRead {
		return fmt.Errorf("expect.value only applies to op %q", OpRead)
	}
	if s.Expect.Alarm != nil {
		if s.Op != OpAlarm {
			return fmt.Errorf("expect.alarm only applies to op %q", OpAlarm)
		}
		if *s.Expect.Alarm != 0 && *s.Expect.Alarm != 1 {
			return fmt.Errorf("expect.alarm must be 0 or 1")
		}
	}
	if s.Expect.Error != nil && s.Op != OpRead && s.Op != OpAlarm {
		return fmt.Errorf("expect.error only applies to ops %q and %q", OpRead, OpAlarm)
	}
	for _, name := range s.Expect.Bits {
		if _, ok := status.BitByName(name); !ok {
			return fmt.Errorf("expect.bits: unknown bit %q", name)
		}
	}

	return nil
}
