package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"

	"dipsport/internal/domains/booking/model"
)

const subjectTemplate = `Pengingat: Booking Besok - {{.Code}} | {{.From}}`

const bodyTemplate = `Halo {{.Name}},

Ini adalah pengingat untuk booking Anda besok.

Kode Booking : {{.Code}}
Status Bayar : {{.PaymentStatus}}
Total        : {{if .IsAcademic}}Gratis (akademik){{else}}Rp {{rupiah .TotalPrice}}{{end}}
{{range .Days}}
{{.Date}}
{{- range .Fields}}
  {{.Stadium}} / {{.Field}}: {{join .Hours ", "}}
{{- end}}
{{end}}
Mohon datang tepat waktu. Terima kasih.
{{.From}}
`

var (
	funcs = template.FuncMap{
		"join":   strings.Join,
		"rupiah": rupiah,
	}
	subject = template.Must(template.New("subject").Parse(subjectTemplate))
	body    = template.Must(template.New("body").Funcs(funcs).Parse(bodyTemplate))
)

type reminderView struct {
	model.Booking
	From string
	Days []dayView
}

type dayView struct {
	Date   string
	Fields []fieldView
}

type fieldView struct {
	Stadium string
	Field   string
	Hours   []string
}

// newReminderView groups slots by day then by field, with hours in ascending order.
func newReminderView(reminder model.Reminder, from string) reminderView {
	slots := append([]model.ReminderSlot(nil), reminder.Slots...)
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].BookingDate.Equal(slots[j].BookingDate) {
			return slots[i].BookingDate.Before(slots[j].BookingDate)
		}

		if slots[i].StadiumName != slots[j].StadiumName {
			return slots[i].StadiumName < slots[j].StadiumName
		}

		if slots[i].FieldName != slots[j].FieldName {
			return slots[i].FieldName < slots[j].FieldName
		}

		return slots[i].StartHour < slots[j].StartHour
	})

	view := reminderView{Booking: reminder.Booking, From: from}

	for _, slot := range slots {
		date := slot.BookingDate.Format(time.DateOnly)
		if len(view.Days) == 0 || view.Days[len(view.Days)-1].Date != date {
			view.Days = append(view.Days, dayView{Date: date})
		}

		day := &view.Days[len(view.Days)-1]
		if len(day.Fields) == 0 || day.Fields[len(day.Fields)-1].Field != slot.FieldName ||
			day.Fields[len(day.Fields)-1].Stadium != slot.StadiumName {
			day.Fields = append(day.Fields, fieldView{Stadium: slot.StadiumName, Field: slot.FieldName})
		}

		field := &day.Fields[len(day.Fields)-1]
		field.Hours = append(field.Hours, fmt.Sprintf("%02d:00-%02d:00", slot.StartHour, slot.StartHour+1))
	}

	return view
}

func render(view reminderView) (string, string, error) {
	var subj, text strings.Builder

	if err := subject.Execute(&subj, view); err != nil {
		return "", "", fmt.Errorf("render subject: %w", err)
	}

	if err := body.Execute(&text, view); err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}

	return subj.String(), text.String(), nil
}

// rupiah formats n with dot thousand separators.
func rupiah(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
	}

	digits := strconv.FormatUint(absolute(n), 10)

	var out strings.Builder

	out.WriteString(sign)

	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte('.')
		}

		out.WriteRune(d)
	}

	return out.String()
}

// absolute is |n| as uint64, exact for math.MinInt64.
func absolute(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}

	return uint64(n)
}
