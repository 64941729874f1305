package model

import (
	"fmt"
	"strings"
	"time"

	"dipsport/shared/model"

	"github.com/google/uuid"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldCode          = "code"
	FieldEmail         = "email"
	FieldIsAcademic    = "is_academic"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldCreatedAt     = "created_at"
)

const (
	DetailTableName  = "booking_details"
	DetailEntityName = "booking_detail"

	FieldDetailID          = "id"
	FieldDetailBookingID   = "booking_id"
	FieldDetailFieldID     = "field_id"
	FieldDetailBookingDate = "booking_date"
	FieldDetailStartHour   = "start_hour"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusDone      = "DONE"
	StatusCancelled = "CANCELLED"
)

const (
	PaymentUnpaid = "UNPAID"
	PaymentPaid   = "PAID"
)

type Booking struct {
	ID            string `db:"id"`
	Code          string `db:"code"`
	Name          string `db:"name"`
	Email         string `db:"email"`
	Contact       string `db:"contact"`
	Institution   string `db:"institution"`
	IsAcademic    bool   `db:"is_academic"`
	DocumentURL   string `db:"document_url"`
	TotalPrice    int64  `db:"total_price"`
	Status        string `db:"status"`
	PaymentStatus string `db:"payment_status"`
	model.Metadata
}

// Detail is one reserved hour. BookingDate carries the calendar date at midnight UTC.
type Detail struct {
	ID           string    `db:"id"`
	BookingID    string    `db:"booking_id"`
	FieldID      string    `db:"field_id"`
	BookingDate  time.Time `db:"booking_date"`
	StartHour    int       `db:"start_hour"`
	PricePerHour int64     `db:"price_per_hour"`
	Subtotal     int64     `db:"subtotal"`
	CreatedAt    time.Time `db:"created_at"`
}

// SlotKey identifies a bookable hour independent of the booking holding it.
func SlotKey(fieldID string, date time.Time, hour int) string {
	return fmt.Sprintf("%s:%s:%02d", fieldID, date.Format(time.DateOnly), hour)
}

// NewCode builds a short human readable booking code such as DS-1A2B3C4D.
func NewCode(prefix string) string {
	segment, _, _ := strings.Cut(uuid.NewString(), "-")

	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(segment))
}

// Reminder is an approved booking with only the details falling inside the reminder window.
type Reminder struct {
	Booking
	Slots []ReminderSlot
}

type ReminderSlot struct {
	BookingDate time.Time
	StartHour   int
	FieldName   string
	StadiumName string
}
