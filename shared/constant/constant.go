package constant

import (
	"time"
)

const (
	SystemUser = "system"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	RoleTraveler = "traveler"
	RoleAgent    = "agent"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID   = "id"
	RequestParamName = "name"
	RequestMaxMemory = 10 << 20 // 10 MB
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
)

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation    = "23505"
	PqErrorCodeFkViolation        = "23503"
	PqErrorCodeExclusionViolation = "23P01"
	PqErrorCodeCheckViolation     = "23514"
)

const (
	DateFormat     = time.RFC3339
	DateOnlyFormat = time.DateOnly
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
	OtelKafkaScopeName    = "kafka"
	OtelJWTScopeName      = "jwt"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitReset     = "X-RateLimit-Reset"
	RequestHeaderRetryAfter         = "Retry-After"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderIdempotencyKey     = "Idempotency-Key"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
	ResponseHealthy                   = "OK"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

// Cache prefixes shared across domains. Catalog and reservation writes clear
// CacheAvailability since search results are derived from all three.
const (
	CacheHotel        = "hotel"
	CacheRoom         = "room"
	CacheAvailability = "availability"
	CacheReservation  = "reservation"
)

const (
	Asterix = "*"
	Empty   = ""
)
