package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrPermissionDenied  ErrCode = "PERMISSION_DENIED"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrConflict          ErrCode = "CONFLICT"
	ErrDependencyExists  ErrCode = "DEPENDENCY_EXISTS"
	ErrPasswordConflict  ErrCode = "PASSWORD_ALREADY_IN_USE"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
// Authentication failures share deliberately vague wording: the response
// never reveals whether the password was wrong, the token corrupted, or
// the token expired.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Incorrect password."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "Could not validate credentials."

	case ErrPermissionDenied:
		return "Not enough permissions."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrAdminAccessOnly:
		return "Not enough privileges."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "Resource is still referenced by other records."
	case ErrPasswordConflict:
		return "This password is already in use by another account."

	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File size exceeds the limit."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
