package dto

import (
	"time"

	"dipsport/shared/constant"
	"dipsport/shared/model"
	"dipsport/shared/timezone"
)

// Metadata is the audit block embedded in every admin-facing response.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

// FromModel renders audit times in the application timezone. Zero times render empty.
func (m *Metadata) FromModel(src model.Metadata) {
	m.CreatedAt = formatAudit(src.CreatedAt)
	m.CreatedBy = src.CreatedBy
	m.ModifiedAt = formatAudit(src.ModifiedAt)
	m.ModifiedBy = src.ModifiedBy
}

func formatAudit(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}
