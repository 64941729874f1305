package failure

import "net/http"

const (
	KindLeadTimeViolation        = "LEAD_TIME_VIOLATION"
	KindOperatingHourViolation   = "OPERATING_HOUR_VIOLATION"
	KindSlotUnavailable          = "SLOT_UNAVAILABLE"
	KindFieldNotFound            = "FIELD_NOT_FOUND"
	KindStadiumNotFound          = "STADIUM_NOT_FOUND"
	KindBookingNotFound          = "BOOKING_NOT_FOUND"
	KindInvalidStatusTransition  = "INVALID_STATUS_TRANSITION"
	KindInvalidPaymentTransition = "INVALID_PAYMENT_TRANSITION"
	KindParentInactive           = "PARENT_INACTIVE"
	KindNotificationFailure      = "NOTIFICATION_FAILURE"
	KindActiveBookingsExist      = "ACTIVE_BOOKINGS_EXIST"
	KindAcademicDocumentRequired = "ACADEMIC_DOCUMENT_REQUIRED"
)

// Reservation rejections. Compare with errors.Is; WithMessage keeps the kind.
var (
	ErrLeadTimeViolation        = New(http.StatusUnprocessableEntity, KindLeadTimeViolation, "booking date must be at least one day ahead")
	ErrOperatingHourViolation   = New(http.StatusUnprocessableEntity, KindOperatingHourViolation, "start hour is outside operating hours")
	ErrSlotUnavailable          = New(http.StatusConflict, KindSlotUnavailable, "slot is already booked")
	ErrFieldNotFound            = New(http.StatusNotFound, KindFieldNotFound, "field not found")
	ErrStadiumNotFound          = New(http.StatusNotFound, KindStadiumNotFound, "stadium not found")
	ErrBookingNotFound          = New(http.StatusNotFound, KindBookingNotFound, "booking not found")
	ErrInvalidStatusTransition  = New(http.StatusConflict, KindInvalidStatusTransition, "status transition is not allowed")
	ErrInvalidPaymentTransition = New(http.StatusConflict, KindInvalidPaymentTransition, "payment transition is not allowed")
	ErrParentInactive           = New(http.StatusConflict, KindParentInactive, "stadium is inactive or deleted")
	ErrNotificationFailure      = New(http.StatusBadGateway, KindNotificationFailure, "failed to send notification")
	ErrActiveBookingsExist      = New(http.StatusConflict, KindActiveBookingsExist, "active bookings still reference this resource")
	ErrAcademicDocumentRequired = New(http.StatusUnprocessableEntity, KindAcademicDocumentRequired, "academic booking requires a supporting document")
)

// WithMessage returns a copy of the failure with a more specific message.
func (e *Failure) WithMessage(message string) *Failure {
	return &Failure{
		Code:    e.Code,
		Kind:    e.Kind,
		Message: message,
	}
}
