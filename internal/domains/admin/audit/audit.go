// Package audit appends admin log entries inside the caller's transaction.
package audit

import (
	"context"
	"fmt"

	"dipsport/internal/domains/admin/model"
	"dipsport/internal/domains/admin/repository"
	"dipsport/shared"
	"dipsport/shared/timezone"

	"github.com/jmoiron/sqlx"
)

// Record writes an entry when ctx carries an authenticated admin and is a no-op otherwise.
func Record(ctx context.Context, sqltx *sqlx.Tx, logs repository.Log, action, table, targetID, description string) error {
	adminID, ok := shared.AdminID(ctx)
	if !ok {
		return nil
	}

	entry := model.NewLog(adminID, action, table, targetID, description, timezone.Now())
	if err := logs.InsertTx(ctx, sqltx, entry); err != nil {
		return fmt.Errorf("failed to write admin log: %w", err)
	}

	return nil
}
