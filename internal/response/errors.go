package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Enrollment ────────────────────────────────────────────────────
	ErrInvalidOrUsedCode ErrCode = "INVALID_OR_USED_CODE"
	ErrAlreadyHasAccess  ErrCode = "ALREADY_HAS_ACCESS"
	ErrAlreadyEnrolled   ErrCode = "ALREADY_ENROLLED"
	ErrClassNotFree      ErrCode = "CLASS_NOT_FOUND_OR_NOT_FREE"

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
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid email or password"
	case ErrEmailTaken:
		return "An account with this email already exists"
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again"
	case ErrTokenRequired:
		return "Authentication token required"
	case ErrTokenInvalid:
		return "Authentication token is invalid"

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource"
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators"

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input"
	case ErrInvalidID:
		return "Invalid ID format"
	case ErrInvalidPayload:
		return "Invalid request payload"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found"
	case ErrConflict:
		return "Resource already exists"
	case ErrDependencyExists:
		return "Cannot delete: still referenced by other data"

	// ─── Enrollment ────────────────────────────────────────────────────
	case ErrInvalidOrUsedCode:
		return "Invalid or already used code"
	case ErrAlreadyHasAccess:
		return "You already have access to this class"
	case ErrAlreadyEnrolled:
		return "Already enrolled in this class"
	case ErrClassNotFree:
		return "Class not found or not free"

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "File upload required"
	case ErrUnsupportedFile:
		return "Unsupported file type"
	case ErrFileTooLarge:
		return "File size exceeds the limit"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later"

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred"
	default:
		return "An unexpected error occurred"
	}
}
