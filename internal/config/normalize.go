// internal/config/normalize.go
package config

// DeviceNameMaxChars is the maximum number of ASCII characters kept for the device name.
const DeviceNameMaxChars = 16

// Defaults applied by Normalize.
const (
	DefaultIntervalMs = 1000
	DefaultTimeoutMs  = 1000
	DefaultSensorFC   = 3
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// device_name: ASCII already validated, truncate
	if len(cfg.Device.Name) > DeviceNameMaxChars {
		cfg.Device.Name = cfg.Device.Name[:DeviceNameMaxChars]
	}

	if cfg.Monitor.IntervalMs == 0 {
		cfg.Monitor.IntervalMs = DefaultIntervalMs
	}

	if cfg.Sensor.Kind == SensorModbus {
		if cfg.Sensor.FC == 0 {
			cfg.Sensor.FC = DefaultSensorFC
		}
		if cfg.Sensor.Divisor == 0 {
			cfg.Sensor.Divisor = 1
		}
		if cfg.Sensor.TimeoutMs == 0 {
			cfg.Sensor.TimeoutMs = DefaultTimeoutMs
		}
	}

	if cfg.Mirror != nil && cfg.Mirror.TimeoutMs == 0 {
		cfg.Mirror.TimeoutMs = DefaultTimeoutMs
	}
}
