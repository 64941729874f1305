package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"dipsport/config"
	"dipsport/infras/otel"
	"dipsport/infras/postgres"
	"dipsport/internal/domains/admin/audit"
	adminModel "dipsport/internal/domains/admin/model"
	adminRepo "dipsport/internal/domains/admin/repository"
	"dipsport/internal/domains/booking/availability"
	"dipsport/internal/domains/booking/lifecycle"
	"dipsport/internal/domains/booking/model"
	"dipsport/internal/domains/booking/model/dto"
	"dipsport/internal/domains/booking/pricing"
	"dipsport/internal/domains/booking/repository"
	"dipsport/shared"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/failure"
	gRepo "dipsport/shared/repository"
	"dipsport/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	ChangeStatus(ctx context.Context, code string, req dto.ChangeStatusRequest) (dto.BookingResponse, error)
	ChangePayment(ctx context.Context, code string, req dto.ChangePaymentRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, code string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	detailRepo repository.Detail
	logRepo    adminRepo.Log
	checker    availability.Checker
	tx         postgres.Transactor
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	detailRepo repository.Detail,
	logRepo adminRepo.Log,
	checker availability.Checker,
	tx postgres.Transactor,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		detailRepo: detailRepo,
		logRepo:    logRepo,
		checker:    checker,
		tx:         tx,
		cfg:        cfg,
		otel:       otel,
	}
}

func byCode(code string) gDto.FilterGroup {
	return shared.FilterByID(code, model.FieldCode, model.TableName)
}

func byBookingID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldDetailBookingID, model.DetailTableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsAcademic && strings.TrimSpace(req.DocumentURL) == "" {
		return res, failure.ErrAcademicDocumentRequired
	}

	_, isAdmin := shared.AdminID(ctx)

	requests := make([]availability.SlotRequest, len(req.Details))
	keys := make([]string, 0, len(req.Details))

	for i, detail := range req.Details {
		requests[i], err = detail.ToAvailability(isAdmin)
		if err != nil {
			return res, failure.BadRequest(err) //nolint:wrapcheck
		}

		key := model.SlotKey(requests[i].FieldID, requests[i].Date, requests[i].Hour)
		if slices.Contains(keys, key) {
			return res, failure.ErrSlotUnavailable.WithMessage(fmt.Sprintf("slot %s is requested more than once", key))
		}

		keys = append(keys, key)
	}

	// Locks are taken in key order so overlapping requests cannot deadlock.
	slices.Sort(keys)

	booking := req.ToModel(model.NewCode(s.cfg.App.BookingCodePrefix), shared.Actor(ctx))
	details := make([]model.Detail, len(requests))

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		for _, key := range keys {
			if err := s.detailRepo.LockSlotTx(ctx, tx, key); err != nil {
				return fmt.Errorf("failed to lock slot: %w", err)
			}
		}

		prices := map[string]int64{}
		lines := make([]pricing.Line, len(requests))

		for i, request := range requests {
			slot, err := s.checker.CheckTx(ctx, tx, request)
			if err != nil {
				return err
			}

			prices[slot.FieldID] = slot.PricePerHour
			lines[i] = pricing.Line{FieldID: slot.FieldID, Override: request.Override}
			details[i] = model.Detail{
				ID:           uuid.NewString(),
				BookingID:    booking.ID,
				FieldID:      slot.FieldID,
				BookingDate:  slot.Date,
				StartHour:    slot.Hour,
				PricePerHour: slot.PricePerHour,
				CreatedAt:    booking.CreatedAt,
			}
		}

		quote, err := pricing.Calculate(prices, lines, booking.IsAcademic)
		if err != nil {
			return err
		}

		for i := range details {
			details[i].Subtotal = quote.Subtotals[i]
		}

		booking.TotalPrice = quote.Total

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if err := s.detailRepo.InsertBulkTx(ctx, tx, details); err != nil {
			if gRepo.IsUniqueViolation(err) {
				return failure.ErrSlotUnavailable.WithMessage("one of the requested slots was just booked")
			}

			return fmt.Errorf("failed to insert booking details: %w", err)
		}

		return nil
	})
	if err != nil {
		if failure.GetKind(err) == "" {
			log.Error().Err(err).Msg("failed to create booking")
		}

		return res, err
	}

	log.Info().Str("code", booking.Code).Int("slots", len(details)).Int64("total", booking.TotalPrice).Msg("booking created")

	res.FromModel(booking, details)

	return res, nil
}

// CheckAvailability reports a rejection as an unavailable result rather than an error.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slotReq, err := dto.SlotRequest{FieldID: req.FieldID, Date: req.Date, StartHour: req.Hour}.ToAvailability(false)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	res = dto.AvailabilityResponse{FieldID: req.FieldID, Date: req.Date, Hour: req.Hour}

	slot, err := s.checker.Check(ctx, slotReq)
	if err != nil {
		var fail *failure.Failure
		if errors.As(err, &fail) && fail.Kind != "" {
			res.Kind = fail.Kind
			res.Reason = fail.Message

			return res, nil
		}

		log.Error().Err(err).Msg("failed to check availability")

		return res, err
	}

	res.Available = true
	res.PricePerHour = slot.PricePerHour
	res.Subtotal = slot.Subtotal

	return res, nil
}

func (s *serviceImpl) ChangeStatus(ctx context.Context, code string, req dto.ChangeStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ChangeStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.lockBooking(ctx, tx, code)
		if err != nil {
			return err
		}

		booking = locked

		changed, err := lifecycle.NextStatus(booking.Status, req.Status)
		if err != nil || !changed {
			return err
		}

		previous := booking.Status
		booking.Status = req.Status

		if err := s.repo.UpdateTx(ctx, tx, s.changes(ctx, model.FieldStatus, req.Status), byCode(code)); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		if lifecycle.ReleasesSlots(req.Status) {
			if err := s.detailRepo.DeleteTx(ctx, tx, byBookingID(booking.ID)); err != nil {
				return fmt.Errorf("failed to release booking slots: %w", err)
			}
		}

		return audit.Record(ctx, tx, s.logRepo, adminModel.ActionBookingStatus, model.TableName, booking.ID,
			fmt.Sprintf("booking %s status %s -> %s", booking.Code, previous, req.Status))
	})
	if err != nil {
		if failure.GetKind(err) == "" {
			log.Error().Err(err).Str("code", code).Msg("failed to change booking status")
		}

		return res, err
	}

	return s.withDetails(ctx, booking)
}

func (s *serviceImpl) ChangePayment(ctx context.Context, code string, req dto.ChangePaymentRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ChangePayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.lockBooking(ctx, tx, code)
		if err != nil {
			return err
		}

		booking = locked

		changed, err := lifecycle.NextPayment(booking.Status, booking.PaymentStatus, req.PaymentStatus)
		if err != nil || !changed {
			return err
		}

		previous := booking.PaymentStatus
		booking.PaymentStatus = req.PaymentStatus

		if err := s.repo.UpdateTx(ctx, tx, s.changes(ctx, model.FieldPaymentStatus, req.PaymentStatus), byCode(code)); err != nil {
			return fmt.Errorf("failed to update payment status: %w", err)
		}

		return audit.Record(ctx, tx, s.logRepo, adminModel.ActionPaymentStatus, model.TableName, booking.ID,
			fmt.Sprintf("booking %s payment %s -> %s", booking.Code, previous, req.PaymentStatus))
	})
	if err != nil {
		if failure.GetKind(err) == "" {
			log.Error().Err(err).Str("code", code).Msg("failed to change payment status")
		}

		return res, err
	}

	return s.withDetails(ctx, booking)
}

func (s *serviceImpl) Get(ctx context.Context, code string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.repo.Get(ctx, byCode(code))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.ErrBookingNotFound
	}

	return s.withDetails(ctx, booking)
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	var details []model.Detail

	if len(bookings) > 0 {
		ids := make([]string, len(bookings))
		for i, booking := range bookings {
			ids[i] = booking.ID
		}

		details, err = s.detailRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: model.FieldDetailBookingID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.DetailTableName},
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking details")

			return res, fmt.Errorf("failed to get booking details: %w", err)
		}
	}

	res.FromModels(bookings, details, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, tx *sqlx.Tx, code string) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, tx, byCode(code))
	if err != nil {
		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.ErrBookingNotFound.WithMessage(fmt.Sprintf("booking %s not found", code))
	}

	return booking, nil
}

func (s *serviceImpl) changes(ctx context.Context, column, value string) map[string]any {
	return map[string]any{
		column:                   value,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.Actor(ctx),
	}
}

func (s *serviceImpl) withDetails(ctx context.Context, booking model.Booking) (res dto.BookingResponse, err error) {
	details, err := s.detailRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldDetailBookingDate, SortDir: gDto.SortDirAsc}, byBookingID(booking.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking details")

		return res, fmt.Errorf("failed to get booking details: %w", err)
	}

	res.FromModel(booking, details)

	return res, nil
}
