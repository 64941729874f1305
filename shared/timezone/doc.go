// Package timezone pins every calendar computation to the venue's timezone (APP_TIMEZONE,
// UTC when unset). Booking dates, operating hours, lead time and the reminder window
// are all evaluated on the wall clock of that zone.
//
// Services take a Clock instead of calling Now directly:
//
//	clock := timezone.NewClock()
//	tomorrow := timezone.DateKey(clock.Now()).AddDate(0, 0, 1)
//
// DATE columns round-trip as midnight UTC; DateKey and AsDate produce that form.
package timezone
