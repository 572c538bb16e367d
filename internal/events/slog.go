package events

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogSink writes device events to an slog.Logger.
// Successful operations log at Debug, failed ones at Warn.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a SlogSink that writes to logger.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Emit(e Event) {
	attrs := []slog.Attr{
		slog.String("kind", string(e.Kind)),
		slog.String("raw_status", fmt.Sprintf("0x%08X", e.Raw)),
	}
	if e.DeviceID != "" {
		attrs = append(attrs, slog.String("device_id", e.DeviceID))
	}

	switch e.Kind {
	case KindWrite:
		attrs = append(attrs,
			slog.Int("index", e.Index),
			slog.Int64("value", int64(e.Value)),
			slog.String("outcome", e.Outcome),
		)
	case KindRead:
		attrs = append(attrs,
			slog.Int("index", e.Index),
			slog.Int64("value", int64(e.Value)),
		)
	case KindAlarmCheck:
		attrs = append(attrs,
			slog.Int("reading", int(e.Reading)),
			slog.Int("alarm", e.Alarm),
		)
	case KindSensorRegister:
		attrs = append(attrs, slog.String("outcome", e.Outcome))
	}

	level := slog.LevelDebug
	if e.Err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}

	s.logger.LogAttrs(context.Background(), level, "device "+string(e.Kind), attrs...)
}

var _ Sink = (*SlogSink)(nil)
