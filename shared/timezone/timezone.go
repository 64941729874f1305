package timezone

import (
	"time"

	"dipsport/config"

	"github.com/rs/zerolog/log"
)

const defaultTimezone = "UTC"

var appLocation = time.UTC

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		name = defaultTimezone
	}

	SetLocation(name)
}

// SetLocation switches the application timezone. An unknown IANA name keeps UTC.
func SetLocation(name string) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		appLocation = time.UTC

		return
	}

	appLocation = loc
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

// ToAppTime converts t to the application timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

func GetLocation() *time.Location {
	return appLocation
}

// Parse reads value as wall time in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
