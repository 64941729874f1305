// Package lifecycle holds the booking status and payment transition rules.
package lifecycle

import (
	"fmt"
	"slices"

	"dipsport/internal/domains/booking/model"
	"dipsport/shared/failure"
)

var transitions = map[string][]string{
	model.StatusPending:   {model.StatusApproved, model.StatusCancelled},
	model.StatusApproved:  {model.StatusDone, model.StatusCancelled},
	model.StatusDone:      {},
	model.StatusCancelled: {},
}

// Allowed returns the statuses reachable from current in one step.
func Allowed(current string) []string {
	return slices.Clone(transitions[current])
}

// NextStatus validates current -> target. changed is false for the idempotent no-op.
func NextStatus(current, target string) (changed bool, err error) {
	if current == target {
		return false, nil
	}

	if !slices.Contains(transitions[current], target) {
		return false, failure.ErrInvalidStatusTransition.WithMessage(fmt.Sprintf("cannot change booking status from %s to %s", current, target))
	}

	return true, nil
}

// NextPayment validates a payment change for a booking currently in status.
func NextPayment(status, current, target string) (changed bool, err error) {
	if current == target {
		return false, nil
	}

	switch {
	case current == model.PaymentPaid && target == model.PaymentUnpaid:
		return false, failure.ErrInvalidPaymentTransition.WithMessage("a paid booking cannot be marked unpaid")
	case target == model.PaymentPaid && status == model.StatusCancelled:
		return false, failure.ErrInvalidPaymentTransition.WithMessage("a cancelled booking cannot be marked paid")
	case current == model.PaymentUnpaid && target == model.PaymentPaid:
		return true, nil
	default:
		return false, failure.ErrInvalidPaymentTransition.WithMessage(fmt.Sprintf("cannot change payment from %s to %s", current, target))
	}
}

// ReleasesSlots reports whether entering status frees the booking's hours.
func ReleasesSlots(status string) bool {
	return status == model.StatusCancelled
}
