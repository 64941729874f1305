package model

import (
	"time"

	"dipsport/shared/model"
)

const (
	TableName  = "stadiums"
	EntityName = "stadium"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldMapURL      = "map_url"
	FieldStatus      = "status"
	FieldDeletedAt   = "deleted_at"
)

const (
	ImageTableName  = "stadium_images"
	ImageEntityName = "stadium_image"

	FieldImageStadiumID = "stadium_id"
)

const (
	CacheGet    = "stadium:get"
	CacheGetAll = "stadium:gets"
)

type Stadium struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	MapURL      string     `db:"map_url"`
	Status      string     `db:"status"`
	DeletedAt   *time.Time `db:"deleted_at"`
	model.Metadata
}

// Live reports whether the stadium is neither soft-deleted nor missing.
func (s Stadium) Live() bool {
	return s.ID != "" && s.DeletedAt == nil
}

type Image struct {
	ID        string    `db:"id"`
	StadiumID string    `db:"stadium_id"`
	ImageURL  string    `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`
}
