// internal/mirror/layout.go
package mirror

import (
	"github.com/tamzrod/vdevice/internal/memory"
	"github.com/tamzrod/vdevice/internal/status"
)

// Mirror block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- SLOT INDICES ----

// SlotStatus holds the raw status register, high word first.
const SlotStatus = 0

// SlotBufferStart is the first register of the buffer image.
// Each buffer slot takes two registers, high word first.
const SlotBufferStart = SlotStatus + status.WordsPerRaw

// WordsPerSlot is the number of registers one int32 buffer slot occupies.
const WordsPerSlot = 2

// SlotBufferEnd is the last buffer register (inclusive).
const SlotBufferEnd = SlotBufferStart + memory.Length*WordsPerSlot - 1

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first register used for the device name.
// Device name is always placed at the END of the block.
const SlotDeviceNameStart = SlotBufferEnd + 1

// SlotDeviceNameSlots is the number of registers reserved for the device name.
const SlotDeviceNameSlots = 8

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- BLOCK GEOMETRY ----

// BlockSize is the total number of registers in a mirror block.
const BlockSize = SlotDeviceNameStart + SlotDeviceNameSlots
