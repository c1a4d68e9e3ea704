package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/db/tables"

	sq "github.com/Masterminds/squirrel"
)

// auditor writes the invite and trip activity trail. The trail is
// append only, nothing in the application rewrites or deletes entries,
// and personal data is masked before it gets here.
type auditor struct {
	db  *sqlx.DB
	log *zap.Logger
}

func (a *auditor) addToAuditLog(
	ctx context.Context,
	eventType string,
	payload tables.MapStructure,
) error {
	q, args, err := sq.
		Insert("audit_logs").
		Columns("event_type", "event", "created_at").
		Values(eventType, payload, time.Now().UTC()).
		ToSql()
	if err != nil {
		return err
	}
	_, err = a.db.ExecContext(ctx, q, args...)
	if err != nil {
		a.log.Warn(
			"audit trail entry was not written",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
	return err
}
