package clientkit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/coworkpro/clientkit/internal/audit"
)

// ZerologSink writes audit events through a zerolog logger: failures at
// warn level, everything else at info.
type ZerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink wraps the given logger as an [AuditSink].
func NewZerologSink(logger zerolog.Logger) *ZerologSink {
	return &ZerologSink{logger: logger}
}

// Emit logs one audit event with structured fields.
func (s *ZerologSink) Emit(_ context.Context, event audit.Event) {
	if s == nil {
		return
	}

	var e *zerolog.Event
	if event.Success {
		e = s.logger.Info()
	} else {
		e = s.logger.Warn()
	}

	e = e.Time("ts", event.Timestamp).
		Str("event", event.EventType).
		Bool("success", event.Success)
	if event.UserID != "" {
		e = e.Str("user_id", event.UserID)
	}
	if event.Email != "" {
		e = e.Str("email", event.Email)
	}
	if event.Route != "" {
		e = e.Str("route", event.Route)
	}
	if event.Error != "" {
		e = e.Str("error", event.Error)
	}
	for k, v := range event.Metadata {
		e = e.Str(k, v)
	}
	e.Msg("audit")
}
