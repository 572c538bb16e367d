// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Sensor  SensorConfig  `yaml:"sensor"`
	Monitor MonitorConfig `yaml:"monitor"`
	Mirror  *MirrorConfig `yaml:"mirror"` // optional, opt-in
	Steps   []StepConfig  `yaml:"steps"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Name string `yaml:"name"`
}

// ---- SENSOR ----

const (
	SensorNone     = ""
	SensorFixed    = "fixed"
	SensorSequence = "sequence"
	SensorModbus   = "modbus"
)

type SensorConfig struct {
	Kind string `yaml:"kind"`

	// fixed
	Value *int16 `yaml:"value"`

	// sequence
	Values []int16 `yaml:"values"`

	// modbus
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	FC        uint8  `yaml:"fc"`
	Address   uint16 `yaml:"address"`
	Divisor   int16  `yaml:"divisor"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- MONITOR ----

type MonitorConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- MIRROR ----

const (
	TransportModbus = "modbus"
	TransportIngest = "ingest"
)

type MirrorConfig struct {
	Transport   string `yaml:"transport"`
	Endpoint    string `yaml:"endpoint"`
	UnitID      uint8  `yaml:"unit_id"`
	BaseAddress uint16 `yaml:"base_address"`
	TimeoutMs   int    `yaml:"timeout_ms"`
}

// ---- STEPS ----

type StepConfig struct {
	Op     string        `yaml:"op"`
	Index  int           `yaml:"index"`
	Value  int32         `yaml:"value"`
	Sensor *int16        `yaml:"sensor"` // register_sensor: fixed reading
	Expect *ExpectConfig `yaml:"expect"`
}

type ExpectConfig struct {
	Value *int32   `yaml:"value"`
	Alarm *int     `yaml:"alarm"`
	Bits  []string `yaml:"bits"`
	Raw   *uint32  `yaml:"raw"`
	Error *bool    `yaml:"error"`
}

// Load reads and decodes a YAML config file.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &cfg, nil
}
