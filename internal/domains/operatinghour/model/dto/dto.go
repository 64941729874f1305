package dto

import (
	"dipsport/internal/domains/operatinghour/model"
	gModel "dipsport/shared/model"
	"dipsport/shared/timezone"

	"github.com/google/uuid"
)

type SetOperatingHourRequest struct {
	Day       string `json:"day"        validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	OpenHour  int    `json:"open_hour"  validate:"min=0,max=23"`
	CloseHour int    `json:"close_hour" validate:"min=1,max=24,gtfield=OpenHour"`
}

func (r *SetOperatingHourRequest) ToModel(stadiumID, actor string) model.OperatingHour {
	return model.OperatingHour{
		ID:        uuid.NewString(),
		StadiumID: stadiumID,
		Day:       r.Day,
		OpenHour:  r.OpenHour,
		CloseHour: r.CloseHour,
		Metadata:  gModel.NewMetadata(actor, timezone.Now()),
	}
}

type OperatingHourResponse struct {
	ID        string `json:"id"`
	StadiumID string `json:"stadium_id"`
	Day       string `json:"day"`
	OpenHour  int    `json:"open_hour"`
	CloseHour int    `json:"close_hour"`
}

func (r *OperatingHourResponse) FromModel(m model.OperatingHour) {
	r.ID = m.ID
	r.StadiumID = m.StadiumID
	r.Day = m.Day
	r.OpenHour = m.OpenHour
	r.CloseHour = m.CloseHour
}

func FromModels(models []model.OperatingHour) []OperatingHourResponse {
	res := make([]OperatingHourResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
