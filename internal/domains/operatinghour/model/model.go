package model

import (
	"time"

	"dipsport/shared/model"
)

const (
	TableName  = "operating_hours"
	EntityName = "operating_hour"

	FieldID        = "id"
	FieldStadiumID = "stadium_id"
	FieldDay       = "day"
	FieldOpenHour  = "open_hour"
	FieldCloseHour = "close_hour"
)

const (
	DayMonday    = "MONDAY"
	DayTuesday   = "TUESDAY"
	DayWednesday = "WEDNESDAY"
	DayThursday  = "THURSDAY"
	DayFriday    = "FRIDAY"
	DaySaturday  = "SATURDAY"
	DaySunday    = "SUNDAY"
)

var weekdays = map[time.Weekday]string{
	time.Monday:    DayMonday,
	time.Tuesday:   DayTuesday,
	time.Wednesday: DayWednesday,
	time.Thursday:  DayThursday,
	time.Friday:    DayFriday,
	time.Saturday:  DaySaturday,
	time.Sunday:    DaySunday,
}

// DayOf maps a calendar date to its stored weekday name.
func DayOf(date time.Time) string {
	return weekdays[date.Weekday()]
}

type OperatingHour struct {
	ID        string `db:"id"`
	StadiumID string `db:"stadium_id"`
	Day       string `db:"day"`
	OpenHour  int    `db:"open_hour"`
	CloseHour int    `db:"close_hour"`
	model.Metadata
}
