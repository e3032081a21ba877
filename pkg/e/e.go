package e

import "fmt"

var (
	// Internal
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields        = fmt.Errorf("required fields are missing")
	ErrNameRequired         = fmt.Errorf("product name is required")
	ErrDescriptionRequired  = fmt.Errorf("product description is required")
	ErrPriceRequired        = fmt.Errorf("product price is required")
	ErrInvalidCategory      = fmt.Errorf("category must be one of: Herbal Care, Wellness, Lifestyle")
	ErrRatingOutOfRange     = fmt.Errorf("rating must be between 0 and 5")
	ErrNegativeReviews      = fmt.Errorf("reviews count must not be negative")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrDeleteNotConfirmed   = fmt.Errorf("delete requires confirmation")

	// 401 Unauthorized
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrNoSession          = fmt.Errorf("no active session")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrUserNotFound    = fmt.Errorf("admin user not found")

	// 409 Conflict
	ErrSaveInProgress = fmt.Errorf("another submission is already in flight for this session")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
	ErrUploadFailed        = fmt.Errorf("image upload failed")
)

// Wrap annotates err with a call-site message.
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
