package model

import (
	"time"

	"dipsport/shared/model"

	"github.com/google/uuid"
)

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldIsActive  = "is_active"
	FieldRole      = "role"
	FieldLastLogin = "last_login"
	FieldPassword  = "password"
)

const (
	LogTableName  = "admin_logs"
	LogEntityName = "admin_log"

	FieldLogAdminID     = "admin_id"
	FieldLogAction      = "action"
	FieldLogTargetTable = "target_table"
	FieldLogCreatedAt   = "created_at"
)

const (
	ActionLogin         = "LOGIN"
	ActionLogout        = "LOGOUT"
	ActionBookingStatus = "UPDATE_BOOKING_STATUS"
	ActionPaymentStatus = "UPDATE_PAYMENT_STATUS"
	ActionStadiumStatus = "UPDATE_STADIUM_STATUS"
	ActionStadiumDelete = "DELETE_STADIUM"
	ActionFieldStatus   = "UPDATE_FIELD_STATUS"
	ActionFieldDelete   = "DELETE_FIELD"
)

type Admin struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	IsActive  bool       `db:"is_active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}

// Log is an append-only audit entry.
type Log struct {
	ID          string    `db:"id"`
	AdminID     string    `db:"admin_id"`
	Action      string    `db:"action"`
	TargetTable string    `db:"target_table"`
	TargetID    string    `db:"target_id"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

func NewLog(adminID, action, targetTable, targetID, description string, at time.Time) Log {
	return Log{
		ID:          uuid.NewString(),
		AdminID:     adminID,
		Action:      action,
		TargetTable: targetTable,
		TargetID:    targetID,
		Description: description,
		CreatedAt:   at,
	}
}
