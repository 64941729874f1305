package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"dipsport/infras/otel"
	"dipsport/infras/postgres"
	"dipsport/internal/domains/booking/model"
	fieldModel "dipsport/internal/domains/field/model"
	stadiumModel "dipsport/internal/domains/stadium/model"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/logger"
	gRepo "dipsport/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	GetApprovedBetween(ctx context.Context, start, end time.Time) ([]model.Reminder, error)
}

type Detail interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Detail) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Detail, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	LockSlotTx(ctx context.Context, sqltx *sqlx.Tx, key string) error
	SlotTaken(ctx context.Context, sqltx *sqlx.Tx, fieldID string, date time.Time, hour int) (bool, error)
	ActiveOnFieldsTx(ctx context.Context, sqltx *sqlx.Tx, fieldIDs []string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type reminderRow struct {
	model.Booking
	BookingDate time.Time `db:"booking_date"`
	StartHour   int       `db:"start_hour"`
	FieldName   string    `db:"field_name"`
	StadiumName string    `db:"stadium_name"`
}

// GetApprovedBetween loads approved bookings holding at least one detail dated in [start, end),
// attaching only those details.
func (r *repositoryImpl) GetApprovedBetween(ctx context.Context, start, end time.Time) ([]model.Reminder, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetApprovedBetween")
	defer scope.End()

	query := approvedBetweenQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rows []reminderRow
	if err := r.db.Read.SelectContext(ctx, &rows, query, model.StatusApproved, start, end); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get approved bookings (%s): %w", model.EntityName, err)
	}

	return groupReminders(rows), nil
}

// approvedBetweenQuery selects one row per detail of an approved booking dated in [$2, $3).
func approvedBetweenQuery() string {
	return fmt.Sprintf(`SELECT b.id, b.code, b.name, b.email, b.contact, b.institution, b.is_academic, b.document_url,
		b.total_price, b.status, b.payment_status, b.created_at, b.modified_at, b.created_by, b.modified_by,
		d.booking_date, d.start_hour, f.name AS field_name, s.name AS stadium_name
		FROM %s b
		JOIN %s d ON d.booking_id = b.id
		JOIN %s f ON f.id = d.field_id
		JOIN %s s ON s.id = f.stadium_id
		WHERE b.status = $1 AND d.booking_date >= $2::date AND d.booking_date < $3::date
		ORDER BY b.created_at, b.id, d.booking_date, d.start_hour`,
		model.TableName, model.DetailTableName, fieldModel.TableName, stadiumModel.TableName)
}

// groupReminders folds detail rows into one reminder per booking, keeping row order.
func groupReminders(rows []reminderRow) []model.Reminder {
	reminders := []model.Reminder{}
	index := map[string]int{}

	for _, row := range rows {
		pos, ok := index[row.ID]
		if !ok {
			pos = len(reminders)
			index[row.ID] = pos
			reminders = append(reminders, model.Reminder{Booking: row.Booking})
		}

		reminders[pos].Slots = append(reminders[pos].Slots, model.ReminderSlot{
			BookingDate: row.BookingDate,
			StartHour:   row.StartHour,
			FieldName:   row.FieldName,
			StadiumName: row.StadiumName,
		})
	}

	return reminders
}

type detailRepositoryImpl struct {
	gRepo.Repository[model.Detail]
	db   *postgres.Connection
	otel otel.Otel
}

func NewDetail(db *postgres.Connection, otel otel.Otel) Detail {
	return &detailRepositoryImpl{
		Repository: gRepo.NewRepository[model.Detail](model.DetailEntityName, model.DetailTableName, model.FieldDetailID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *detailRepositoryImpl) queryer(sqltx *sqlx.Tx) sqlx.QueryerContext {
	if sqltx != nil {
		return sqltx
	}

	return r.db.Read
}

// LockSlotTx takes a transaction scoped advisory lock on a slot key.
func (r *detailRepositoryImpl) LockSlotTx(ctx context.Context, sqltx *sqlx.Tx, key string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking_detail.LockSlotTx")
	defer scope.End()

	query := "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := sqltx.ExecContext(ctx, query, key); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to lock slot %s: %w", key, err)
	}

	return nil
}

// SlotTaken reports whether a non-cancelled booking holds the slot. A nil sqltx reads from the read pool.
func (r *detailRepositoryImpl) SlotTaken(ctx context.Context, sqltx *sqlx.Tx, fieldID string, date time.Time, hour int) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking_detail.SlotTaken")
	defer scope.End()

	query := fmt.Sprintf(`SELECT EXISTS(
		SELECT 1 FROM %s d JOIN %s b ON b.id = d.booking_id
		WHERE d.field_id = $1 AND d.booking_date = $2::date AND d.start_hour = $3 AND b.status <> $4)`,
		model.DetailTableName, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var taken bool
	if err := sqlx.GetContext(ctx, r.queryer(sqltx), &taken, query, fieldID, date, hour, model.StatusCancelled); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check slot (%s): %w", model.DetailEntityName, err)
	}

	return taken, nil
}

// ActiveOnFieldsTx reports whether any pending or approved booking holds a slot on the given fields.
func (r *detailRepositoryImpl) ActiveOnFieldsTx(ctx context.Context, sqltx *sqlx.Tx, fieldIDs []string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking_detail.ActiveOnFieldsTx")
	defer scope.End()

	if len(fieldIDs) == 0 {
		return false, nil
	}

	query := fmt.Sprintf(`SELECT EXISTS(
		SELECT 1 FROM %s d JOIN %s b ON b.id = d.booking_id
		WHERE d.field_id = ANY($1) AND b.status = ANY($2))`,
		model.DetailTableName, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	active := pq.Array([]string{model.StatusPending, model.StatusApproved})

	var exist bool
	if err := sqlx.GetContext(ctx, r.queryer(sqltx), &exist, query, pq.Array(fieldIDs), active); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check active bookings (%s): %w", model.DetailEntityName, err)
	}

	return exist, nil
}
