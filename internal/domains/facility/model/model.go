package model

import (
	"time"

	"dipsport/shared/model"
)

const (
	TableName  = "facilities"
	EntityName = "facility"

	FieldID   = "id"
	FieldName = "name"
)

const (
	LinkTableName  = "stadium_facilities"
	LinkEntityName = "stadium_facility"

	FieldLinkStadiumID  = "stadium_id"
	FieldLinkFacilityID = "facility_id"
)

type Facility struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}

type StadiumFacility struct {
	StadiumID  string    `db:"stadium_id"`
	FacilityID string    `db:"facility_id"`
	CreatedAt  time.Time `db:"created_at"`
}
