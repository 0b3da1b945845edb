package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ReportLogStore persists one row per CSV export.
type ReportLogStore interface {
	Record(ctx context.Context, userID int64) error
}

// Recorder writes CSV-export audit trails off the request path. Failures
// are logged and never surfaced; an export must succeed even when the
// audit store or broker is down.
type Recorder struct {
	logs      ReportLogStore
	publisher *Publisher
	timeout   time.Duration
}

func NewRecorder(logs ReportLogStore, publisher *Publisher) *Recorder {
	return &Recorder{
		logs:      logs,
		publisher: publisher,
		timeout:   5 * time.Second,
	}
}

// ReportExported records the export asynchronously. The work runs on a
// context detached from the request so a finished response does not
// cancel it.
func (r *Recorder) ReportExported(ctx context.Context, userID int64) {
	logger := zerolog.Ctx(ctx).With().Int64("user_id", userID).Logger()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.logs.Record(ctx, userID); err != nil {
			logger.Error().Err(err).Msg("failed to record report export")
		}

		event := ExportedEvent{UserID: userID, ExportedAt: time.Now().UTC()}
		if err := r.publisher.PublishExported(ctx, event); err != nil {
			logger.Error().Err(err).Msg("failed to publish report export event")
		}
	}()
}
