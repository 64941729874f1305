package dto

import (
	"dipsport/internal/domains/facility/model"
	"dipsport/shared"
	gDto "dipsport/shared/dto"
	gModel "dipsport/shared/model"
	"dipsport/shared/timezone"

	"github.com/google/uuid"
)

type CreateFacilityRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (c *CreateFacilityRequest) ToModel(actor string) model.Facility {
	return model.Facility{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

type FacilityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	gDto.Metadata
}

func (r *FacilityResponse) FromModel(m model.Facility) {
	r.ID = m.ID
	r.Name = m.Name
	r.Metadata.FromModel(m.Metadata)
}

type GetFacilitiesResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetFacilitiesResponse) FromModels(models []model.Facility, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Facilities = make([]FacilityResponse, len(models))
	for i, m := range models {
		r.Facilities[i].FromModel(m)
	}
}
