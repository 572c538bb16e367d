// internal/monitor/runner.go
package monitor

import (
	"context"
	"log"
	"time"
)

// Run starts the ticker loop and checks the alarm once per interval.
// Alarm transitions and failures are logged; the loop only stops on ctx.
// Results are sent on out when it is non-nil.
func (m *Monitor) Run(ctx context.Context, out chan<- Result) {
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	lastAlarm := -1

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			res := m.CheckOnce()

			if res.Err != nil {
				log.Printf("alarm check failed (device=%s): %v", m.cfg.Name, res.Err)
			} else if res.Alarm != lastAlarm {
				if res.Alarm == 1 {
					log.Printf("OVERHEAT raised (device=%s) status=0x%08X", m.cfg.Name, res.Raw)
				} else if lastAlarm == 1 {
					log.Printf("OVERHEAT cleared (device=%s) status=0x%08X", m.cfg.Name, res.Raw)
				}
				lastAlarm = res.Alarm
			}

			if m.pub != nil {
				if err := m.pub.Publish(res.Snapshot); err != nil {
					log.Printf("mirror publish failed (device=%s): %v", m.cfg.Name, err)
				}
			}

			if out != nil {
				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
