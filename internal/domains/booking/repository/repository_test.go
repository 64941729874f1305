package repository

import (
	"testing"
	"time"

	"dipsport/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovedBetweenQuery(t *testing.T) {
	query := approvedBetweenQuery()

	assert.Contains(t, query, "FROM bookings b")
	assert.Contains(t, query, "JOIN booking_details d ON d.booking_id = b.id")
	assert.Contains(t, query, "JOIN fields f ON f.id = d.field_id")
	assert.Contains(t, query, "JOIN stadiums s ON s.id = f.stadium_id")
	assert.Contains(t, query, "WHERE b.status = $1 AND d.booking_date >= $2::date AND d.booking_date < $3::date")
	assert.Contains(t, query, "ORDER BY b.created_at, b.id, d.booking_date, d.start_hour")
}

func TestGroupReminders(t *testing.T) {
	tomorrow := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	row := func(id string, hour int, field string) reminderRow {
		return reminderRow{
			Booking:     model.Booking{ID: id, Code: "DS-" + id, Status: model.StatusApproved},
			BookingDate: tomorrow,
			StartHour:   hour,
			FieldName:   field,
			StadiumName: "Stadion UNDIP",
		}
	}

	t.Run("one reminder per approved booking", func(t *testing.T) {
		rows := []reminderRow{
			row("1", 8, "Lapangan A"),
			row("1", 9, "Lapangan A"),
			row("2", 10, "Lapangan B"),
			row("3", 15, "Lapangan A"),
			row("3", 16, "Lapangan C"),
		}

		reminders := groupReminders(rows)

		require.Len(t, reminders, 3)
		assert.Equal(t, []string{"DS-1", "DS-2", "DS-3"}, []string{reminders[0].Code, reminders[1].Code, reminders[2].Code})

		require.Len(t, reminders[0].Slots, 2)
		assert.Equal(t, 8, reminders[0].Slots[0].StartHour)
		assert.Equal(t, 9, reminders[0].Slots[1].StartHour)

		require.Len(t, reminders[1].Slots, 1)
		assert.Equal(t, "Lapangan B", reminders[1].Slots[0].FieldName)

		require.Len(t, reminders[2].Slots, 2)
		assert.Equal(t, "Lapangan C", reminders[2].Slots[1].FieldName)
		assert.Equal(t, tomorrow, reminders[2].Slots[1].BookingDate)
	})

	t.Run("rows of one booking need not be adjacent", func(t *testing.T) {
		reminders := groupReminders([]reminderRow{row("1", 8, "A"), row("2", 9, "B"), row("1", 10, "A")})

		require.Len(t, reminders, 2)
		assert.Len(t, reminders[0].Slots, 2)
		assert.Len(t, reminders[1].Slots, 1)
	})

	t.Run("no rows", func(t *testing.T) {
		assert.Empty(t, groupReminders(nil))
	})
}
