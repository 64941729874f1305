package dto

import (
	"mime/multipart"

	"dipsport/internal/domains/field/model"
	"dipsport/shared"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	gModel "dipsport/shared/model"
	"dipsport/shared/timezone"

	"github.com/google/uuid"
)

type CreateFieldRequest struct {
	StadiumID   string `json:"stadium_id"  validate:"required"`
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Price       int64  `json:"price"       validate:"min=0"`
}

func (c *CreateFieldRequest) ToModel(actor string) model.Field {
	return model.Field{
		ID:          uuid.NewString(),
		StadiumID:   c.StadiumID,
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Status:      constant.StatusActive,
		Metadata:    gModel.NewMetadata(actor, timezone.Now()),
	}
}

type UpdateFieldRequest struct {
	Name        string  `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description *string `db:"description" json:"description" validate:"omitempty,max=2000"`
	Price       *int64  `db:"price"       json:"price"       validate:"omitempty,min=0"`
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

type FieldResponse struct {
	ID          string          `json:"id"`
	StadiumID   string          `json:"stadium_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       int64           `json:"price"`
	Status      string          `json:"status"`
	Images      []ImageResponse `json:"images,omitempty"`
	gDto.Metadata
}

func (r *FieldResponse) FromModel(m model.Field) {
	r.ID = m.ID
	r.StadiumID = m.StadiumID
	r.Name = m.Name
	r.Description = m.Description
	r.Price = m.Price
	r.Status = m.Status
	r.Metadata.FromModel(m.Metadata)
}

func (r *FieldResponse) WithImages(images []model.Image) {
	r.Images = make([]ImageResponse, len(images))
	for i, image := range images {
		r.Images[i].FromModel(image)
	}
}

type GetFieldsResponse struct {
	Fields    []FieldResponse `json:"fields"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetFieldsResponse) FromModels(models []model.Field, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Fields = make([]FieldResponse, len(models))
	for i, m := range models {
		r.Fields[i].FromModel(m)
	}
}
