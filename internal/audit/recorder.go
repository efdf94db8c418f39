// AngelaMos | 2026
// recorder.go

package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/advotec/advotec-api/internal/core"
	"github.com/advotec/advotec-api/internal/metrics"
)

const appendTimeout = 5 * time.Second

// Recorder appends audit entries on a best-effort basis. A failed append is
// logged and counted but never reported to the caller.
type Recorder struct {
	repo    Repository
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewRecorder(
	repo Repository,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{repo: repo, logger: logger, metrics: m}
}

// Record must be called only after the primary write has succeeded. The
// append outlives request cancellation.
func (r *Recorder) Record(
	ctx context.Context,
	action Action,
	table, recordID, actorID string,
) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), appendTimeout)
	defer cancel()

	entry := &Entry{
		ID:        core.NewObjectID(),
		Action:    action,
		Table:     table,
		RecordID:  recordID,
		AccountID: actorID,
	}

	err := r.append(ctx, entry)
	r.metrics.AuditWrite(table, err == nil)

	if err != nil {
		core.SetSpanError(ctx, err)
		r.logger.Error("failed to record audit entry",
			"action", action,
			"table", table,
			"record_id", recordID,
			"actor_id", actorID,
			"error", err,
		)
		return
	}

	core.AddSpanEvent(ctx, "audit.recorded",
		attribute.String("audit.action", string(action)),
		attribute.String("audit.table", table),
		attribute.String("audit.record_id", recordID),
	)
}

func (r *Recorder) append(ctx context.Context, entry *Entry) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("audit append panicked: %v", p)
		}
	}()
	return r.repo.Append(ctx, entry)
}

// Auditor is what services depend on to record their writes.
type Auditor interface {
	Record(ctx context.Context, action Action, table, recordID, actorID string)
}

var _ Auditor = (*Recorder)(nil)
