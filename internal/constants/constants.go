package constants

import "time"

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Validation rules
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// Token lifetimes
const (
	AccessTokenTTL       = 15 * time.Minute
	RefreshTokenTTL      = 7 * 24 * time.Hour
	VerificationTokenTTL = 24 * time.Hour
)

// Rate limiting for auth endpoints
const (
	AuthRateLimit  = 20
	AuthRateWindow = time.Minute
)
