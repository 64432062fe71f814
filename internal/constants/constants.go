package constants

import "time"

// Session and context keys
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "task_session"
	ContextKeyID      = "resource_id"
)

// Defaults for new tasks
const (
	DefaultTaskStatus         = "pending"
	DefaultTaskPriority       = "normal"
	DefaultEisenhowerQuadrant = "neither-urgent-nor-important"
)

const (
	DefaultSessionMaxAge = 7 * 24 * time.Hour
	MaxTagNameLength     = 50
	MaxTaskTitleLength   = 150
)
