package auth

const (
	ContextKeyUserID      = "user_id"
	ContextKeyPermissions = "permissions"
	ContextKeyRoleSlugs   = "role_slugs"

	headerAuthorization = "Authorization"
	bearerScheme        = "bearer"
	authHeaderParts     = 2

	msgMissingAuthorization    = "missing authorization header"
	msgInvalidOrExpiredToken   = "invalid or expired token"
	msgUserNotAuthenticated    = "user not authenticated"
	msgInvalidUserIDCtx        = "invalid user ID in context"
	msgPermissionCheckFailed   = "could not determine permissions"
	msgMissingCapabilityFmt    = "missing capability: %s"
	msgAdministratorOnly       = "administrator role required"
	msgLeadershipOnly          = "administrator or school leadership role required"
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
)
