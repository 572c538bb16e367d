// Package scenario runs scripted device operations and checks their outcome.
package scenario

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tamzrod/vdevice/internal/config"
	"github.com/tamzrod/vdevice/internal/device"
	"github.com/tamzrod/vdevice/internal/sensor"
)

// StepResult is the outcome of one scripted step.
type StepResult struct {
	Index int
	Op    string

	Value int32  // read
	Alarm int    // alarm
	Raw   uint32 // status after the step

	Err      error    // error returned by the device, if any
	Failures []string // unmet expectations
}

// OK reports whether every expectation of the step held.
func (r StepResult) OK() bool {
	return len(r.Failures) == 0
}

func (r StepResult) String() string {
	head := fmt.Sprintf("step %d %s raw=0x%08X", r.Index, r.Op, r.Raw)
	if r.OK() {
		return head + " ok"
	}
	return head + " FAIL: " + strings.Join(r.Failures, "; ")
}

// Report collects every step result of a run.
type Report struct {
	Steps []StepResult
}

// OK reports whether every step passed.
func (r Report) OK() bool {
	for _, s := range r.Steps {
		if !s.OK() {
			return false
		}
	}
	return true
}

// Failed returns the failing steps only.
func (r Report) Failed() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if !s.OK() {
			out = append(out, s)
		}
	}
	return out
}

// Run executes steps against d in order. It never stops early:
// every step runs and reports.
func Run(d *device.Device, steps []config.StepConfig) Report {
	rep := Report{Steps: make([]StepResult, 0, len(steps))}
	for i, s := range steps {
		rep.Steps = append(rep.Steps, runStep(d, i, s))
	}
	return rep
}

func runStep(d *device.Device, i int, s config.StepConfig) StepResult {
	res := StepResult{Index: i, Op: s.Op}

	switch s.Op {
	case config.OpReset:
		d.Reset()

	case config.OpWrite:
		d.Write(s.Index, s.Value)

	case config.OpRead:
		res.Value, res.Err = d.Read(s.Index)

	case config.OpStatus:
		// observation only

	case config.OpAlarm:
		res.Alarm, res.Err = d.RunAlarmCheck()

	case config.OpRegisterSensor:
		if s.Sensor == nil {
			res.Failures = append(res.Failures, "register_sensor without sensor value")
			break
		}
		d.RegisterSensor(sensor.Fixed(*s.Sensor))

	default:
		res.Failures = append(res.Failures, fmt.Sprintf("unknown op %q", s.Op))
	}

	reg := d.Status()
	res.Raw = reg.Raw()

	if s.Expect == nil {
		if res.Err != nil {
			res.Failures = append(res.Failures, fmt.Sprintf("unexpected error: %v", res.Err))
		}
		return res
	}
	e := s.Expect

	wantErr := e.Error != nil && *e.Error
	switch {
	case wantErr && res.Err == nil:
		res.Failures = append(res.Failures, "expected an error, got none")
	case !wantErr && res.Err != nil:
		res.Failures = append(res.Failures, fmt.Sprintf("unexpected error: %v", res.Err))
	}

	if e.Value != nil && res.Value != *e.Value {
		res.Failures = append(res.Failures, fmt.Sprintf("value: got=%d want=%d", res.Value, *e.Value))
	}
	if e.Alarm != nil && res.Alarm != *e.Alarm {
		res.Failures = append(res.Failures, fmt.Sprintf("alarm: got=%d want=%d", res.Alarm, *e.Alarm))
	}
	if e.Raw != nil && res.Raw != *e.Raw {
		res.Failures = append(res.Failures, fmt.Sprintf("raw: got=0x%08X want=0x%08X", res.Raw, *e.Raw))
	}
	if e.Bits != nil {
		got := reg.Bits()
		want := slices.Clone(e.Bits)
		slices.Sort(got)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			res.Failures = append(res.Failures, fmt.Sprintf("bits: got=%v want=%v", got, want))
		}
	}

	return res
}
