package model

import (
	"time"

	"dipsport/shared/constant"
	"dipsport/shared/model"
)

const (
	TableName  = "fields"
	EntityName = "field"

	FieldID          = "id"
	FieldStadiumID   = "stadium_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldStatus      = "status"
	FieldDeletedAt   = "deleted_at"
)

const (
	ImageTableName  = "field_images"
	ImageEntityName = "field_image"

	FieldImageFieldID = "field_id"
)

const (
	CacheGet    = "field:get"
	CacheGetAll = "field:gets"
)

type Field struct {
	ID          string     `db:"id"`
	StadiumID   string     `db:"stadium_id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Price       int64      `db:"price"`
	Status      string     `db:"status"`
	DeletedAt   *time.Time `db:"deleted_at"`
	model.Metadata
}

// Bookable reports whether new slots may be reserved on the field.
func (f Field) Bookable() bool {
	return f.ID != "" && f.DeletedAt == nil && f.Status == constant.StatusActive
}

type Image struct {
	ID        string    `db:"id"`
	FieldID   string    `db:"field_id"`
	ImageURL  string    `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`
}
