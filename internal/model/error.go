package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeValidation           = "VALIDATION_FAILED"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrCodeEmailTaken           = "EMAIL_TAKEN"
	ErrCodeUserNotFound         = "USER_NOT_FOUND"
	ErrCodePantryNotFound       = "PANTRY_NOT_FOUND"
	ErrCodePantryFull           = "PANTRY_FULL"
	ErrCodeAlreadyMember        = "ALREADY_MEMBER"
	ErrCodeNotMember            = "NOT_MEMBER"
	ErrCodeItemNotFound         = "ITEM_NOT_FOUND"
	ErrCodeShoppingItemNotFound = "SHOPPING_ITEM_NOT_FOUND"
	ErrCodeNotificationNotFound = "NOTIFICATION_NOT_FOUND"
	ErrCodeUnsupportedMedia     = "UNSUPPORTED_MEDIA_TYPE"
	ErrCodeRecipeAPIUnavailable = "RECIPE_API_UNAVAILABLE"
	ErrCodeRateLimited          = "RATE_LIMITED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a form validation error carrying the given message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// Common domain errors
var (
	ErrInvalidCredentials   = NewDomainError(ErrCodeInvalidCredentials, "Invalid email or password")
	ErrEmailTaken           = NewDomainError(ErrCodeEmailTaken, "An account with this email already exists")
	ErrUserNotFound         = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrPantryNotFound       = NewDomainError(ErrCodePantryNotFound, "No pantry exists with this code")
	ErrPantryFull           = NewDomainError(ErrCodePantryFull, "This pantry has reached its member limit")
	ErrAlreadyMember        = NewDomainError(ErrCodeAlreadyMember, "You are already a member of this pantry")
	ErrNotMember            = NewDomainError(ErrCodeNotMember, "You are not a member of this pantry")
	ErrItemNotFound         = NewDomainError(ErrCodeItemNotFound, "Item not found")
	ErrShoppingItemNotFound = NewDomainError(ErrCodeShoppingItemNotFound, "Shopping list item not found")
	ErrNotificationNotFound = NewDomainError(ErrCodeNotificationNotFound, "Notification not found")
	ErrUnsupportedMedia     = NewDomainError(ErrCodeUnsupportedMedia, "Photo must be a JPEG, PNG or WebP image")
	ErrRecipeAPIUnavailable = NewDomainError(ErrCodeRecipeAPIUnavailable, "Recipe search is currently unavailable")
)
