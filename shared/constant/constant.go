package constant

import (
	"time"
)

// ContextSystem is the actor recorded for writes made outside an authenticated request.
const ContextSystem = "system"

type contextKey string

// Request context keys set by the auth middleware.
const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
)

// Stadium and field lifecycle.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
	RequestParamID      = "id"
	RequestParamCode    = "code"

	RequestMaxMemory = 10 << 20
	FormFile         = "file"
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

// Audit columns shared by every table.
const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
	FieldDeletedAt  = "deleted_at"
)

const PqErrorCodeUniqueViolation = "23505"

const (
	DateFormat = time.RFC3339
	DateOnly   = time.DateOnly
)

// Span scope names.
const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelExternalScopeName   = "external"
	OtelSchedulerScopeName  = "scheduler"
	OtelS3ScopeName         = "s3"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
)

const ContentTypeJSON = "application/json"

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
