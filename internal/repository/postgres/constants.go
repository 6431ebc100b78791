package postgres

import "time"

const (
	poolHealthCheckPeriod = 1 * time.Minute
	poolMaxConnLifetime   = 1 * time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second
)

const (
	errRoleNotFound     = "role not found"
	errUserNotFound     = "user not found"
	errPostNotFound     = "post not found"
	errEventNotFound    = "event not found"
	errDocumentNotFound = "document not found"
	errSlugTaken        = "a role with this slug already exists"
	errSystemRoleFrozen = "system roles cannot be modified or deleted"
)
