package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/usecase"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogUC struct {
	ListProductsFn  func(ctx context.Context) ([]domain.Product, error)
	SaveProductFn   func(ctx context.Context, req *usecase.SaveProductReq) (*domain.Product, error)
	DeleteProductFn func(ctx context.Context, req *usecase.DeleteProductReq) error
}

func (s *stubCatalogUC) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if s.ListProductsFn != nil {
		return s.ListProductsFn(ctx)
	}
	return nil, nil
}

func (s *stubCatalogUC) PublicCatalog(ctx context.Context, category string) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubCatalogUC) SaveProduct(ctx context.Context, req *usecase.SaveProductReq) (*domain.Product, error) {
	if s.SaveProductFn != nil {
		return s.SaveProductFn(ctx, req)
	}
	return &domain.Product{ID: 1, Draft: *req.Draft, CreatedAt: time.Now()}, nil
}

func (s *stubCatalogUC) DeleteProduct(ctx context.Context, req *usecase.DeleteProductReq) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, req)
	}
	return nil
}

// adminRouter mounts the handler behind a guard that always admits sess-1.
func adminRouter(t *testing.T, catalogUC usecase.CatalogUC) *chi.Mux {
	t.Helper()

	log := logger.NewSlogLogger()
	guard := NewSessionGuard(&stubAuthUC{
		CheckFn: func(ctx context.Context, token string) (*domain.Session, error) {
			return domain.NewSession("sess-1", 1, "admin@lishaa.in", time.Now().Add(time.Hour)), nil
		},
	}, log)

	r := chi.NewRouter()
	registerAdminRoutes(r, guard, NewProductHandler(catalogUC, log))
	return r
}

func productForm(t *testing.T, fields map[string]string, benefits []string, imageName string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, b := range benefits {
		require.NoError(t, mw.WriteField("benefits", b))
	}
	if imageName != "" {
		fw, err := mw.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func validFormFields() map[string]string {
	return map[string]string{
		"name":             "Neem Face Wash",
		"description":      "Gentle herbal cleanser",
		"long_description": "A gentle cleanser made from cold-pressed neem extract.",
		"price":            "₹249",
		"category":         "Herbal Care",
	}
}

func TestCreateProduct_MultipartFormIsParsedIntoDraft(t *testing.T) {
	var got *usecase.SaveProductReq
	uc := &stubCatalogUC{
		SaveProductFn: func(ctx context.Context, req *usecase.SaveProductReq) (*domain.Product, error) {
			got = req
			return &domain.Product{ID: 5, Draft: *req.Draft, CreatedAt: time.Now()}, nil
		},
	}
	r := adminRouter(t, uc)

	fields := validFormFields()
	fields["rating"] = "4.2"
	fields["reviews"] = "17"
	body, contentType := productForm(t, fields, []string{"Clears skin", "No parabens"}, "face-wash.jpg")

	req := httptest.NewRequest(http.MethodPost, "/admin/products/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, got)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.Nil(t, got.ProductID)
	assert.Equal(t, "Neem Face Wash", got.Draft.Name)
	assert.Equal(t, domain.CategoryHerbalCare, got.Draft.Category)
	assert.Equal(t, "4.2", got.Draft.Rating.String())
	assert.Equal(t, 17, got.Draft.Reviews)
	assert.Equal(t, []string{"Clears skin", "No parabens"}, got.Draft.Benefits)
	require.NotNil(t, got.Image)
	assert.Equal(t, "face-wash.jpg", got.Image.Name)
	assert.Equal(t, "image/jpeg", got.Image.MimeType)
}

func TestCreateProduct_DefaultsApplyWhenRatingAndReviewsOmitted(t *testing.T) {
	var got *usecase.SaveProductReq
	uc := &stubCatalogUC{
		SaveProductFn: func(ctx context.Context, req *usecase.SaveProductReq) (*domain.Product, error) {
			got = req
			return &domain.Product{ID: 5, Draft: *req.Draft, CreatedAt: time.Now()}, nil
		},
	}
	r := adminRouter(t, uc)

	body, contentType := productForm(t, validFormFields(), nil, "")

	req := httptest.NewRequest(http.MethodPost, "/admin/products/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, got)
	assert.Equal(t, domain.DefaultRatingStr, got.Draft.Rating.String())
	assert.Equal(t, domain.DefaultReviews, got.Draft.Reviews)
	assert.Nil(t, got.Image, "no file selected means no upload request")
}

func TestCreateProduct_RejectsNonMultipartBody(t *testing.T) {
	r := adminRouter(t, &stubCatalogUC{})

	req := httptest.NewRequest(http.MethodPost, "/admin/products/", bytes.NewBufferString(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProduct_CarriesPriorImageURLAndID(t *testing.T) {
	var got *usecase.SaveProductReq
	uc := &stubCatalogUC{
		SaveProductFn: func(ctx context.Context, req *usecase.SaveProductReq) (*domain.Product, error) {
			got = req
			now := time.Now()
			return &domain.Product{ID: *req.ProductID, Draft: *req.Draft, CreatedAt: now, UpdatedAt: &now}, nil
		},
	}
	r := adminRouter(t, uc)

	fields := validFormFields()
	fields["image_url"] = "https://cdn.example.com/products/existing.jpg"
	body, contentType := productForm(t, fields, nil, "")

	req := httptest.NewRequest(http.MethodPut, "/admin/products/42", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, got)
	require.NotNil(t, got.ProductID)
	assert.Equal(t, int64(42), *got.ProductID)
	assert.Equal(t, "https://cdn.example.com/products/existing.jpg", got.Draft.ImageURL)
}

func TestDeleteProduct_ConfirmFlagReachesUseCase(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		confirmed bool
		ucErr     error
		wantCode  int
	}{
		{"confirmed", "?confirm=true", true, nil, http.StatusNoContent},
		{"missing confirm", "", false, e.ErrDeleteNotConfirmed, http.StatusBadRequest},
		{"confirm false", "?confirm=false", false, e.ErrDeleteNotConfirmed, http.StatusBadRequest},
		{"unknown id", "?confirm=true", true, e.ErrProductNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *usecase.DeleteProductReq
			uc := &stubCatalogUC{
				DeleteProductFn: func(ctx context.Context, req *usecase.DeleteProductReq) error {
					got = req
					return tt.ucErr
				},
			}
			r := adminRouter(t, uc)

			req := httptest.NewRequest(http.MethodDelete, "/admin/products/7"+tt.query, nil)
			req.Header.Set("Authorization", "Bearer token")

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			require.NotNil(t, got)
			assert.Equal(t, int64(7), got.ID)
			assert.Equal(t, tt.confirmed, got.Confirmed)
		})
	}
}

func TestSaveProduct_ConflictMapsTo409(t *testing.T) {
	uc := &stubCatalogUC{
		SaveProductFn: func(ctx context.Context, req *usecase.SaveProductReq) (*domain.Product, error) {
			return nil, e.Wrap("CatalogUseCase.SaveProduct", e.ErrSaveInProgress)
		},
	}
	r := adminRouter(t, uc)

	body, contentType := productForm(t, validFormFields(), nil, "")
	req := httptest.NewRequest(http.MethodPost, "/admin/products/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListAdmin_ReturnsProducts(t *testing.T) {
	now := time.Now()
	uc := &stubCatalogUC{
		ListProductsFn: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{
				{ID: 2, Draft: domain.ProductDraft{Name: "Newest", Category: domain.CategoryWellness}, CreatedAt: now},
				{ID: 1, Draft: domain.ProductDraft{Name: "Oldest", Category: domain.CategoryHerbalCare}, CreatedAt: now.Add(-time.Hour)},
			}, nil
		},
	}
	r := adminRouter(t, uc)

	req := httptest.NewRequest(http.MethodGet, "/admin/products/", nil)
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []productResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "Newest", got[0].Name)
	assert.Equal(t, "Oldest", got[1].Name)
}
