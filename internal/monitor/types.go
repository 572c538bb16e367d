// internal/monitor/types.go
package monitor

import (
	"time"

	"github.com/tamzrod/vdevice/internal/mirror"
)

// Result is the snapshot produced by one check cycle.
type Result struct {
	At    time.Time
	Alarm int    // 1 = OVERHEAT raised by this cycle
	Raw   uint32 // status after the cycle

	Snapshot mirror.Snapshot
	Err      error // non-nil means the alarm check failed
}

// Publisher receives the device snapshot after each cycle.
// mirror.Writer satisfies it.
type Publisher interface {
	Publish(s mirror.Snapshot) error
}
