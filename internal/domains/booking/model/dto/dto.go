package dto

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"dipsport/internal/domains/booking/availability"
	"dipsport/internal/domains/booking/model"
	"dipsport/shared"
	"dipsport/shared/constant"
	gModel "dipsport/shared/model"
	"dipsport/shared/timezone"

	"github.com/google/uuid"
)

type SlotRequest struct {
	FieldID      string `json:"field_id"       validate:"required"`
	Date         string `json:"date"           validate:"required,datetime=2006-01-02"`
	StartHour    int    `json:"start_hour"     validate:"min=0,max=23"`
	PricePerHour *int64 `json:"price_per_hour" validate:"omitempty,min=0"`
}

// ToAvailability parses the slot. Overrides are kept only when keepOverride is set.
func (r SlotRequest) ToAvailability(keepOverride bool) (availability.SlotRequest, error) {
	date, err := time.Parse(constant.DateOnly, r.Date)
	if err != nil {
		return availability.SlotRequest{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	req := availability.SlotRequest{
		FieldID: r.FieldID,
		Date:    date,
		Hour:    r.StartHour,
	}

	if keepOverride {
		req.Override = r.PricePerHour
	}

	return req, nil
}

type CreateBookingRequest struct {
	Name        string        `json:"name"         validate:"required,max=100"`
	Email       string        `json:"email"        validate:"required,email,max=100"`
	Contact     string        `json:"contact"      validate:"required,max=20"`
	Institution string        `json:"institution"  validate:"omitempty,max=150"`
	IsAcademic  bool          `json:"is_academic"`
	DocumentURL string        `json:"document_url" validate:"omitempty,url"`
	Details     []SlotRequest `json:"details"      validate:"required,min=1,dive"`
}

func (r *CreateBookingRequest) ToModel(code, actor string) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		Code:          code,
		Name:          r.Name,
		Email:         r.Email,
		Contact:       r.Contact,
		Institution:   r.Institution,
		IsAcademic:    r.IsAcademic,
		DocumentURL:   r.DocumentURL,
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentUnpaid,
		Metadata:      gModel.NewMetadata(actor, timezone.Now()),
	}
}

type AvailabilityRequest struct {
	FieldID string `json:"field_id" validate:"required"`
	Date    string `json:"date"     validate:"required,datetime=2006-01-02"`
	Hour    int    `json:"hour"     validate:"min=0,max=23"`
}

type AvailabilityResponse struct {
	Available    bool   `json:"available"`
	Kind         string `json:"kind,omitempty"`
	Reason       string `json:"reason,omitempty"`
	FieldID      string `json:"field_id"`
	Date         string `json:"date"`
	Hour         int    `json:"hour"`
	PricePerHour int64  `json:"price_per_hour,omitempty"`
	Subtotal     int64  `json:"subtotal,omitempty"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED DONE CANCELLED"`
}

type ChangePaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=UNPAID PAID"`
}

type DetailResponse struct {
	ID           string `json:"id"`
	FieldID      string `json:"field_id"`
	BookingDate  string `json:"booking_date"`
	StartHour    int    `json:"start_hour"`
	PricePerHour int64  `json:"price_per_hour"`
	Subtotal     int64  `json:"subtotal"`
}

func (r *DetailResponse) FromModel(m model.Detail) {
	r.ID = m.ID
	r.FieldID = m.FieldID
	r.BookingDate = m.BookingDate.Format(constant.DateOnly)
	r.StartHour = m.StartHour
	r.PricePerHour = m.PricePerHour
	r.Subtotal = m.Subtotal
}

type BookingResponse struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Contact       string           `json:"contact"`
	Institution   string           `json:"institution,omitempty"`
	IsAcademic    bool             `json:"is_academic"`
	DocumentURL   string           `json:"document_url,omitempty"`
	TotalPrice    int64            `json:"total_price"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"payment_status"`
	CreatedAt     string           `json:"created_at"`
	Details       []DetailResponse `json:"details"`
}

func (r *BookingResponse) FromModel(m model.Booking, details []model.Detail) {
	r.ID = m.ID
	r.Code = m.Code
	r.Name = m.Name
	r.Email = m.Email
	r.Contact = m.Contact
	r.Institution = m.Institution
	r.IsAcademic = m.IsAcademic
	r.DocumentURL = m.DocumentURL
	r.TotalPrice = m.TotalPrice
	r.Status = m.Status
	r.PaymentStatus = m.PaymentStatus
	r.CreatedAt = timezone.Format(m.CreatedAt, constant.DateFormat)

	ordered := slices.Clone(details)
	slices.SortFunc(ordered, compareDetails)

	r.Details = make([]DetailResponse, len(ordered))
	for i, detail := range ordered {
		r.Details[i].FromModel(detail)
	}
}

// compareDetails orders details by date, then hour, then field.
func compareDetails(a, b model.Detail) int {
	return cmp.Or(
		a.BookingDate.Compare(b.BookingDate),
		cmp.Compare(a.StartHour, b.StartHour),
		cmp.Compare(a.FieldID, b.FieldID),
	)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

// FromModels groups details under their bookings, preserving booking order.
func (r *GetBookingsResponse) FromModels(models []model.Booking, details []model.Detail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	byBooking := map[string][]model.Detail{}
	for _, detail := range details {
		byBooking[detail.BookingID] = append(byBooking[detail.BookingID], detail)
	}

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, byBooking[mod.ID])
	}
}
