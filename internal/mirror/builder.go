// internal/mirror/builder.go
package mirror

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/vdevice/internal/config"
	"github.com/tamzrod/vdevice/internal/mirror/ingest"
	mmodbus "github.com/tamzrod/vdevice/internal/mirror/modbus"
)

// Build converts the mirror config into a connected Writer.
// Assumes config has already passed validation and normalization.
func Build(m cfg.MirrorConfig, deviceName string) (Writer, func() error, error) {
	timeout := time.Duration(m.TimeoutMs) * time.Millisecond

	var (
		cli     endpointClient
		closeFn func() error
	)

	switch m.Transport {
	case cfg.TransportModbus:
		c, err := mmodbus.NewEndpointClient(mmodbus.Config{Endpoint: m.Endpoint, Timeout: timeout})
		if err != nil {
			return nil, nil, err
		}
		cli, closeFn = c, c.Close

	case cfg.TransportIngest:
		c, err := ingest.NewEndpointClient(ingest.Config{Endpoint: m.Endpoint, Timeout: timeout})
		if err != nil {
			return nil, nil, err
		}
		cli, closeFn = c, c.Close

	default:
		return nil, nil, fmt.Errorf("mirror: unknown transport %q", m.Transport)
	}

	w, err := New(Plan{
		Endpoint:    m.Endpoint,
		UnitID:      m.UnitID,
		BaseAddress: m.BaseAddress,
		DeviceName:  deviceName,
	}, cli)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}

	return w, closeFn, nil
}
