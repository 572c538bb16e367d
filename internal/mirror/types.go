// internal/mirror/types.go
package mirror

import "github.com/tamzrod/vdevice/internal/memory"

// Snapshot is exactly what the mirror is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Raw    uint32
	Buffer [memory.Length]int32
}

// Plan is the fully-built delivery plan for one device.
type Plan struct {
	Endpoint    string
	UnitID      uint8
	BaseAddress uint16
	DeviceName  string
}

// Writer publishes device snapshots into an external register map.
type Writer interface {
	Publish(s Snapshot) error
}

// endpointClient is the exact contract the mirror uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}
