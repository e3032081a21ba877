package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/usecase"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

type ErrorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	LoginURL string `json:"login_url,omitempty"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest),
		errors.Is(err, e.ErrExpectedMultipart),
		errors.Is(err, e.ErrMissingFields),
		errors.Is(err, e.ErrNameRequired),
		errors.Is(err, e.ErrDescriptionRequired),
		errors.Is(err, e.ErrPriceRequired),
		errors.Is(err, e.ErrInvalidCategory),
		errors.Is(err, e.ErrRatingOutOfRange),
		errors.Is(err, e.ErrNegativeReviews),
		errors.Is(err, e.ErrFileTooLarge),
		errors.Is(err, e.ErrUnsupportedMediaType),
		errors.Is(err, e.ErrDeleteNotConfirmed):
		return http.StatusBadRequest, unwrapMessage(err)
	case errors.Is(err, e.ErrInvalidCredentials):
		return http.StatusUnauthorized, e.ErrInvalidCredentials.Error()
	case errors.Is(err, e.ErrNoSession):
		return http.StatusUnauthorized, e.ErrNoSession.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrSaveInProgress):
		return http.StatusConflict, e.ErrSaveInProgress.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

// unwrapMessage walks to the sentinel at the end of the wrap chain so the
// client sees the rule, not the call path.
func unwrapMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// DecodeAndValidate binds a JSON body into dst and runs struct validation.
func DecodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest)
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldError := range validationErrors {
				messages = append(messages, formatValidationError(fieldError))
			}
			return e.Wrap(strings.Join(messages, "; "), e.ErrMissingFields)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func formatValidationError(err validator.FieldError) string {
	field := strings.ToLower(err.Field())

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, err.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// parseProductForm builds a draft from the multipart fields. The editor
// defaults apply: rating 4.5 and zero reviews when the fields are absent.
func parseProductForm(r *http.Request) (*domain.ProductDraft, error) {
	draft := domain.NewProductDraft(
		r.FormValue("name"),
		r.FormValue("description"),
		r.FormValue("long_description"),
		r.FormValue("price"),
		domain.Category(r.FormValue("category")),
	)
	draft.Tag = r.FormValue("tag")
	draft.ImageURL = r.FormValue("image_url")

	if v := r.FormValue("rating"); v != "" {
		rating, err := decimal.NewFromString(v)
		if err != nil {
			return nil, e.Wrap(fmt.Sprintf("rating: %s", v), e.ErrStatusBadRequest)
		}
		draft.Rating = rating
	}

	if v := r.FormValue("reviews"); v != "" {
		reviews, err := strconv.Atoi(v)
		if err != nil {
			return nil, e.Wrap(fmt.Sprintf("reviews: %s", v), e.ErrStatusBadRequest)
		}
		draft.Reviews = reviews
	}

	if form := r.MultipartForm; form != nil {
		draft.Benefits = form.Value["benefits"]
	}

	return draft, nil
}

// parseImage reads the optional "image" file. No file selected is a normal
// outcome and returns (nil, nil).
func parseImage(r *http.Request) (*usecase.ProductImage, error) {
	const maxFileSize = 15 << 20

	form := r.MultipartForm
	if form == nil || len(form.File["image"]) == 0 {
		return nil, nil
	}

	fh := form.File["image"][0]
	data, mimeType, err := readFile(fh, maxFileSize)
	if err != nil {
		return nil, err
	}

	return usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename), nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
