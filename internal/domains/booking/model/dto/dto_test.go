package dto_test

import (
	"testing"
	"time"

	"dipsport/internal/domains/booking/model"
	"dipsport/internal/domains/booking/model/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingResponse_DetailsOrdered(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }

	details := []model.Detail{
		{ID: "d1", FieldID: "field-b", BookingDate: day(4), StartHour: 9},
		{ID: "d2", FieldID: "field-a", BookingDate: day(3), StartHour: 15},
		{ID: "d3", FieldID: "field-a", BookingDate: day(3), StartHour: 8},
		{ID: "d4", FieldID: "field-b", BookingDate: day(3), StartHour: 8},
		{ID: "d5", FieldID: "field-a", BookingDate: day(4), StartHour: 7},
	}

	var res dto.BookingResponse
	res.FromModel(model.Booking{ID: "b1", Code: "DS-1"}, details)

	require.Len(t, res.Details, len(details))

	ids := make([]string, len(res.Details))
	for i, detail := range res.Details {
		ids[i] = detail.ID
	}

	assert.Equal(t, []string{"d3", "d4", "d2", "d5", "d1"}, ids)
	assert.Equal(t, "2024-06-03", res.Details[0].BookingDate)
	assert.Equal(t, "d1", details[0].ID)
}
