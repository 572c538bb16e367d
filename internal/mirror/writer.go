// internal/mirror/writer.go
package mirror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/vdevice/internal/memory"
	"github.com/tamzrod/vdevice/internal/status"
)

// blockWriter delivers snapshots verbatim. No interpretation of bits.
type blockWriter struct {
	plan Plan
	cli  endpointClient

	needFull bool
	last     Snapshot
	nameRegs []uint16
}

// New builds a mirror writer over an endpoint client.
func New(plan Plan, cli endpointClient) (Writer, error) {
	if cli == nil {
		return nil, fmt.Errorf("mirror: missing client for endpoint %s", plan.Endpoint)
	}
	if int(plan.BaseAddress)+BlockSize > 0x10000 {
		return nil, fmt.Errorf("mirror: base address %d leaves no room for a %d register block", plan.BaseAddress, BlockSize)
	}

	return &blockWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful publish
		nameRegs: encodeDeviceNameRegs(plan.DeviceName),
	}, nil
}

// Publish delivers a snapshot into the register map.
// On any write failure, the next successful call will re-assert the full block.
func (w *blockWriter) Publish(s Snapshot) error {
	base := w.plan.BaseAddress

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if w.needFull {
		if err := w.cli.WriteRegisters(w.plan.UnitID, base, w.fullBlockRegs(s)); err != nil {
			w.needFull = true
			return fmt.Errorf("mirror: full block write failed: %w", err)
		}

		w.needFull = false
		w.last = s
		return nil
	}

	var errs []string

	// Status words
	if w.last.Raw != s.Raw {
		if err := w.cli.WriteRegisters(w.plan.UnitID, base+SlotStatus, status.Encode(s.Raw)); err != nil {
			errs = append(errs, fmt.Sprintf("status write failed: %v", err))
		} else {
			w.last.Raw = s.Raw
		}
	}

	// Buffer slots, changed only
	for i := 0; i < memory.Length; i++ {
		if w.last.Buffer[i] == s.Buffer[i] {
			continue
		}
		addr := base + SlotBufferStart + uint16(i*WordsPerSlot)
		if err := w.cli.WriteRegisters(w.plan.UnitID, addr, encodeSlot(s.Buffer[i])); err != nil {
			errs = append(errs, fmt.Sprintf("buffer[%d] write failed: %v", i, err))
		} else {
			w.last.Buffer[i] = s.Buffer[i]
		}
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt; re-assert on next success.
		w.needFull = true
		return errors.New("mirror: " + strings.Join(errs, " | "))
	}

	return nil
}

func (w *blockWriter) fullBlockRegs(s Snapshot) []uint16 {
	regs := make([]uint16, BlockSize)

	copy(regs[SlotStatus:], status.Encode(s.Raw))

	for i, v := range s.Buffer {
		copy(regs[SlotBufferStart+i*WordsPerSlot:], encodeSlot(v))
	}

	// Device name always lives at the end of the block
	copy(regs[SlotDeviceNameStart:], w.nameRegs)

	return regs
}

func encodeSlot(v int32) []uint16 {
	u := uint32(v)
	return []uint16{uint16(u >> 16), uint16(u)}
}

// encodeDeviceNameRegs packs up to 16 ASCII characters into 8 uint16 registers.
// Each register stores two ASCII bytes in big-endian order.
func encodeDeviceNameRegs(name string) []uint16 {
	out := make([]uint16, SlotDeviceNameSlots)

	b := []byte(name)
	if len(b) > DeviceNameMaxChars {
		b = b[:DeviceNameMaxChars]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < DeviceNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}
