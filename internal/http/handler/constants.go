package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	paramID      = "id"
	paramUserID  = "user_id"
	paramSection = "section"

	queryIncludeUnpublished = "include_unpublished"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"

	msgInvalidCredentials  = "invalid email or password"
	msgGenerateTokenFail   = "failed to generate token"
	msgPasswordProcessFail = "failed to process password"

	msgInvalidRoleID       = "invalid role ID"
	msgRoleNotFound        = "role not found"
	msgRoleSlugRequired    = "role slug is required"
	msgSystemRoleImmutable = "system roles cannot be modified or deleted"
	msgSlugAlreadyExists   = "a role with this slug already exists"
	msgListRolesFail       = "failed to list roles"
	msgCreateRoleFail      = "failed to create role"
	msgUpdateRoleFail      = "failed to update role"
	msgDeleteRoleFail      = "failed to delete role"
	msgRoleUpdated         = "role updated"
	msgRoleDeleted         = "role deleted"

	msgInvalidUserID        = "invalid user ID"
	msgUserNotFound         = "user not found"
	msgEmailAlreadyExists   = "a user with this email already exists"
	msgRestrictedRoleDenied = "only administrators can assign administrator or schulleitung roles"
	msgResolveRoleSlugsFail = "failed to resolve role slugs"
	msgSetUserRolesFail     = "failed to update role assignments"
	msgUserRolesUpdated     = "role assignments updated"
	msgListUsersFail        = "failed to list users"
	msgCreateUserFail       = "failed to create user"
	msgDeleteUserFail       = "failed to delete user"
	msgUserDeleted          = "user deleted"

	msgInvalidPostID   = "invalid post ID"
	msgPostNotFound    = "post not found"
	msgListPostsFail   = "failed to list posts"
	msgCreatePostFail  = "failed to create post"
	msgUpdatePostFail  = "failed to update post"
	msgDeletePostFail  = "failed to delete post"
	msgPublishPostFail = "failed to change post publication state"
	msgPostDeleted     = "post deleted"

	msgInvalidEventID   = "invalid event ID"
	msgEventNotFound    = "event not found"
	msgStartsAtRequired = "starts_at is required"
	msgListEventsFail   = "failed to list events"
	msgCreateEventFail  = "failed to create event"
	msgUpdateEventFail  = "failed to update event"
	msgDeleteEventFail  = "failed to delete event"
	msgPublishEventFail = "failed to change event publication state"
	msgEventDeleted     = "event deleted"

	msgInvalidDocumentID  = "invalid document ID"
	msgDocumentNotFound   = "document not found"
	msgListDocumentsFail  = "failed to list documents"
	msgCreateDocumentFail = "failed to register document"
	msgDeleteDocumentFail = "failed to delete document"
	msgUploadURLFail      = "failed to generate upload URL"
	msgDownloadURLFail    = "failed to generate download URL"
	msgDocumentDeleted    = "document deleted"

	msgInvalidSection     = "invalid settings section"
	msgSettingKeyRequired = "setting key is required"
	msgListSettingsFail   = "failed to load settings"
	msgSaveSettingFail    = "failed to save setting"
	msgSettingSaved       = "setting saved"

	msgNotOwnResource = "permission limited to own entries"
)
