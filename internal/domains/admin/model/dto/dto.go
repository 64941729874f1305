package dto

import (
	"dipsport/internal/domains/admin/model"
	"dipsport/shared"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/timezone"
)

type AdminResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"is_active"`
	LastLogin *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *AdminResponse) FromModel(m model.Admin) {
	r.ID = m.ID
	r.Name = m.Name
	r.Email = m.Email
	r.Role = m.Role
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)

	if m.LastLogin != nil {
		lastLogin := timezone.Format(*m.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}

type LogResponse struct {
	ID          string `json:"id"`
	AdminID     string `json:"admin_id"`
	Action      string `json:"action"`
	TargetTable string `json:"target_table"`
	TargetID    string `json:"target_id"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func (r *LogResponse) FromModel(m model.Log) {
	r.ID = m.ID
	r.AdminID = m.AdminID
	r.Action = m.Action
	r.TargetTable = m.TargetTable
	r.TargetID = m.TargetID
	r.Description = m.Description
	r.CreatedAt = timezone.Format(m.CreatedAt, constant.DateFormat)
}

type GetLogsResponse struct {
	Logs      []LogResponse `json:"logs"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetLogsResponse) FromModels(models []model.Log, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Logs = make([]LogResponse, len(models))
	for i, m := range models {
		r.Logs[i].FromModel(m)
	}
}
