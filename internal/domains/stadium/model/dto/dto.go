package dto

import (
	"mime/multipart"

	facilityModel "dipsport/internal/domains/facility/model"
	"dipsport/internal/domains/stadium/model"
	"dipsport/shared"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	gModel "dipsport/shared/model"
	"dipsport/shared/timezone"

	"github.com/google/uuid"
)

type CreateStadiumRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	MapURL      string `json:"map_url"     validate:"omitempty,url"`
}

func (c *CreateStadiumRequest) ToModel(actor string) model.Stadium {
	return model.Stadium{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		MapURL:      c.MapURL,
		Status:      constant.StatusActive,
		Metadata:    gModel.NewMetadata(actor, timezone.Now()),
	}
}

type UpdateStadiumRequest struct {
	Name        string  `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description *string `db:"description" json:"description" validate:"omitempty,max=2000"`
	MapURL      *string `db:"map_url"     json:"map_url"     validate:"omitempty,url"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

type AddImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile multipart.File        `json:"-"`
}

type ImageResponse struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
}

func (r *ImageResponse) FromModel(m model.Image) {
	r.ID = m.ID
	r.ImageURL = m.ImageURL
}

type FacilityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StadiumResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	MapURL      string             `json:"map_url"`
	Status      string             `json:"status"`
	Images      []ImageResponse    `json:"images,omitempty"`
	Facilities  []FacilityResponse `json:"facilities,omitempty"`
	gDto.Metadata
}

func (r *StadiumResponse) FromModel(m model.Stadium) {
	r.ID = m.ID
	r.Name = m.Name
	r.Description = m.Description
	r.MapURL = m.MapURL
	r.Status = m.Status
	r.Metadata.FromModel(m.Metadata)
}

func (r *StadiumResponse) WithRelations(images []model.Image, facilities []facilityModel.Facility) {
	r.Images = make([]ImageResponse, len(images))
	for i, image := range images {
		r.Images[i].FromModel(image)
	}

	r.Facilities = make([]FacilityResponse, len(facilities))
	for i, facility := range facilities {
		r.Facilities[i] = FacilityResponse{ID: facility.ID, Name: facility.Name}
	}
}

type GetStadiumsResponse struct {
	Stadiums  []StadiumResponse `json:"stadiums"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetStadiumsResponse) FromModels(models []model.Stadium, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Stadiums = make([]StadiumResponse, len(models))
	for i, m := range models {
		r.Stadiums[i].FromModel(m)
	}
}
