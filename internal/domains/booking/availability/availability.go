// Package availability decides whether a field hour can be reserved.
package availability

import (
	"context"
	"fmt"
	"time"

	"dipsport/infras/otel"
	"dipsport/internal/domains/booking/pricing"
	"dipsport/internal/domains/booking/repository"
	fieldModel "dipsport/internal/domains/field/model"
	fieldRepo "dipsport/internal/domains/field/repository"
	"dipsport/shared"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/failure"
	"dipsport/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Window is a half-open hour range [Open, Close).
type Window struct {
	Open  int `json:"open"`
	Close int `json:"close"`
}

// Contains reports whether a one hour slot starting at hour fits the window.
func (w Window) Contains(hour int) bool {
	return hour >= w.Open && hour < w.Close
}

// WindowProvider resolves the operating window for a stadium on a date. An empty
// stadiumID asks for the global window.
type WindowProvider interface {
	WindowFor(ctx context.Context, stadiumID string, date time.Time) (Window, error)
}

// StaticWindow serves the same window for every stadium and date.
type StaticWindow Window

func (w StaticWindow) WindowFor(_ context.Context, _ string, _ time.Time) (Window, error) {
	return Window(w), nil
}

type SlotRequest struct {
	FieldID  string
	Date     time.Time
	Hour     int
	Override *int64
}

// Slot is an admitted request, ready to be persisted as a booking detail.
type Slot struct {
	FieldID      string
	StadiumID    string
	Date         time.Time
	Hour         int
	PricePerHour int64
	Subtotal     int64
}

type Checker interface {
	Check(ctx context.Context, req SlotRequest) (Slot, error)
	CheckTx(ctx context.Context, sqltx *sqlx.Tx, req SlotRequest) (Slot, error)
}

type checkerImpl struct {
	fieldRepo  fieldRepo.Field
	detailRepo repository.Detail
	windows    WindowProvider
	clock      timezone.Clock
	otel       otel.Otel
}

func New(fieldRepo fieldRepo.Field, detailRepo repository.Detail, windows WindowProvider, clock timezone.Clock, otel otel.Otel) Checker {
	return &checkerImpl{
		fieldRepo:  fieldRepo,
		detailRepo: detailRepo,
		windows:    windows,
		clock:      clock,
		otel:       otel,
	}
}

// Check runs the admission checks against committed state.
func (c *checkerImpl) Check(ctx context.Context, req SlotRequest) (Slot, error) {
	return c.check(ctx, nil, c.fieldRepo.Get, req)
}

// CheckTx runs the admission checks inside sqltx, which must already hold the slot lock.
// The field row is share-locked so deleting or deactivating it waits for the booking to
// commit, and the booking sees the change if it lost the race.
func (c *checkerImpl) CheckTx(ctx context.Context, sqltx *sqlx.Tx, req SlotRequest) (Slot, error) {
	lookup := func(ctx context.Context, filter gDto.FilterGroup, columns ...string) (fieldModel.Field, error) {
		return c.fieldRepo.GetForShareTx(ctx, sqltx, filter, columns...) //nolint:wrapcheck
	}

	return c.check(ctx, sqltx, lookup, req)
}

type fieldLookup func(ctx context.Context, filter gDto.FilterGroup, columns ...string) (fieldModel.Field, error)

func (c *checkerImpl) check(ctx context.Context, sqltx *sqlx.Tx, lookup fieldLookup, req SlotRequest) (res Slot, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.check")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date := timezone.AsDate(req.Date)
	earliest := timezone.DateKey(c.clock.Now()).AddDate(0, 0, 1)

	if date.Before(earliest) {
		return res, failure.ErrLeadTimeViolation.WithMessage(
			fmt.Sprintf("booking date %s must be on or after %s", date.Format(constant.DateOnly), earliest.Format(constant.DateOnly)))
	}

	field, err := lookup(ctx, shared.FilterByID(req.FieldID, fieldModel.FieldID, fieldModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("field_id", req.FieldID).Msg("failed to get field")

		return res, fmt.Errorf("failed to get field: %w", err)
	}

	window, err := c.windows.WindowFor(ctx, field.StadiumID, date)
	if err != nil {
		log.Error().Err(err).Str("stadium_id", field.StadiumID).Msg("failed to resolve operating window")

		return res, fmt.Errorf("failed to resolve operating window: %w", err)
	}

	if !window.Contains(req.Hour) {
		return res, failure.ErrOperatingHourViolation.WithMessage(
			fmt.Sprintf("start hour %d is outside operating hours %02d:00-%02d:00", req.Hour, window.Open, window.Close))
	}

	if !field.Bookable() {
		return res, failure.ErrFieldNotFound.WithMessage(fmt.Sprintf("field %s not found or not bookable", req.FieldID))
	}

	taken, err := c.detailRepo.SlotTaken(ctx, sqltx, field.ID, date, req.Hour)
	if err != nil {
		log.Error().Err(err).Str("field_id", field.ID).Msg("failed to check slot conflict")

		return res, fmt.Errorf("failed to check slot conflict: %w", err)
	}

	if taken {
		return res, failure.ErrSlotUnavailable.WithMessage(
			fmt.Sprintf("field %s is already booked on %s at %02d:00", field.Name, date.Format(constant.DateOnly), req.Hour))
	}

	return Slot{
		FieldID:      field.ID,
		StadiumID:    field.StadiumID,
		Date:         date,
		Hour:         req.Hour,
		PricePerHour: field.Price,
		Subtotal:     pricing.Subtotal(field.Price, req.Override),
	}, nil
}
