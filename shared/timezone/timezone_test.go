package timezone_test

import (
	"testing"
	"time"

	"dipsport/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.False(t, timezone.NewClock().Now().IsZero())
}

func TestStartOfDay(t *testing.T) {
	loc := timezone.GetLocation()
	in := time.Date(2024, 6, 1, 17, 45, 12, 99, loc)

	got := timezone.StartOfDay(in)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), got)
}

func TestDayWindow(t *testing.T) {
	loc := timezone.GetLocation()
	start, end := timezone.DayWindow(time.Date(2024, 6, 2, 9, 0, 0, 0, loc))

	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, loc), end)
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")

	assert.NoError(t, err)
	assert.Equal(t, "2024-01-01", timezone.Format(parsed, "2006-01-02"))
}

func TestDateKey(t *testing.T) {
	loc := timezone.GetLocation()
	late := time.Date(2024, 6, 1, 23, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), timezone.DateKey(late))
}

func TestAsDate(t *testing.T) {
	in := time.Date(2024, 6, 2, 15, 4, 5, 0, time.FixedZone("X", -5*3600))

	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), timezone.AsDate(in))
}

func TestSetLocation(t *testing.T) {
	original := timezone.GetLocation()
	t.Cleanup(func() { timezone.SetLocation(original.String()) })

	timezone.SetLocation("Asia/Jakarta")
	assert.Equal(t, "Asia/Jakarta", timezone.GetLocation().String())

	timezone.SetLocation("Mars/Olympus")
	assert.Equal(t, time.UTC, timezone.GetLocation())
}
