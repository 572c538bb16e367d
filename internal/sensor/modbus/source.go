// internal/sensor/modbus/source.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Function codes the source can read from.
const (
	FCHoldingRegisters uint8 = 3
	FCInputRegisters   uint8 = 4
)

// registerReader is the slice of modbus.Client the source needs.
type registerReader interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
}

// Config is minimal transport + register geometry.
type Config struct {
	Endpoint string
	UnitID   uint8
	FC       uint8
	Address  uint16
	Divisor  int16
	Timeout  time.Duration
}

// Source implements sensor.Source by reading one register over Modbus TCP.
// It serializes requests; one register read per Sample.
type Source struct {
	mu      sync.Mutex
	cfg     Config
	handler *modbus.TCPClientHandler
	client  registerReader
}

// New creates a connected Modbus temperature source.
func New(cfg Config) (*Source, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("sensor modbus: endpoint required")
	}
	if err := checkGeometry(&cfg); err != nil {
		return nil, err
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("sensor modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return &Source{
		cfg:     cfg,
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// newWithReader wires a source onto an existing reader (tests).
func newWithReader(cfg Config, r registerReader) (*Source, error) {
	if err := checkGeometry(&cfg); err != nil {
		return nil, err
	}
	return &Source{cfg: cfg, client: r}, nil
}

func checkGeometry(cfg *Config) error {
	if cfg.FC != FCHoldingRegisters && cfg.FC != FCInputRegisters {
		return fmt.Errorf("sensor modbus: unsupported function code %d", cfg.FC)
	}
	if cfg.Divisor == 0 {
		cfg.Divisor = 1
	}
	if cfg.Divisor < 0 {
		return errors.New("sensor modbus: divisor must be > 0")
	}
	return nil
}

// Close closes the TCP connection.
func (s *Source) Close() error {
	if s == nil || s.handler == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler.Close()
}

// Sample reads the configured register and interprets it as a signed
// 16-bit reading, divided by the configured divisor.
func (s *Source) Sample() (int16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		raw []byte
		err error
	)
	switch s.cfg.FC {
	case FCHoldingRegisters:
		raw, err = s.client.ReadHoldingRegisters(s.cfg.Address, 1)
	case FCInputRegisters:
		raw, err = s.client.ReadInputRegisters(s.cfg.Address, 1)
	}
	if err != nil {
		return 0, fmt.Errorf("sensor modbus: fc=%d addr=%d: %w", s.cfg.FC, s.cfg.Address, err)
	}

	regs := unpackRegisters(raw)
	if len(regs) < 1 {
		return 0, errors.New("sensor modbus: short register payload")
	}

	return int16(regs[0]) / s.cfg.Divisor, nil
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
