package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/usecase"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
)

// maxUploadMemory bounds how much of a multipart body stays in memory.
const maxUploadMemory = 16 << 20

type ProductHandler struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewProductHandler(catalogUC usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

type productResponse struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	LongDescription string     `json:"long_description"`
	Price           string     `json:"price"`
	Category        string     `json:"category"`
	Tag             string     `json:"tag,omitempty"`
	Rating          string     `json:"rating"`
	Reviews         int        `json:"reviews"`
	Benefits        []string   `json:"benefits"`
	ImageURL        string     `json:"image_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:              p.ID,
		Name:            p.Draft.Name,
		Description:     p.Draft.Description,
		LongDescription: p.Draft.LongDescription,
		Price:           p.Draft.Price,
		Category:        p.Draft.Category.String(),
		Tag:             p.Draft.Tag,
		Rating:          p.Draft.Rating.String(),
		Reviews:         p.Draft.Reviews,
		Benefits:        p.Draft.Benefits,
		ImageURL:        p.Draft.ImageURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

// ListPublic godoc
// @Summary      Storefront catalog
// @Tags         products
// @Produce      json
// @Param        category query string false "Filter by category"
// @Success      200 {array} productResponse
// @Failure      500 {object} ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	const op = "ProductHandler.ListPublic"

	products, err := h.catalogUC.PublicCatalog(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Errorf(err, "%s", op)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponses(products))
}

// ListAdmin godoc
// @Summary      Full catalog for the admin dashboard, newest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} productResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /admin/products [get]
func (h *ProductHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	const op = "ProductHandler.ListAdmin"

	products, err := h.catalogUC.ListProducts(r.Context())
	if err != nil {
		h.logger.Errorf(err, "%s", op)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponses(products))
}

// Create godoc
// @Summary      Create a product
// @Description  Multipart form with the product fields and an optional image file.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} productResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /admin/products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, nil)
}

// Update godoc
// @Summary      Replace a product
// @Description  Full-replace update. Omitting the image file keeps the prior image URL sent in the form.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Product ID"
// @Success      200 {object} productResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.save(w, r, &id)
}

func (h *ProductHandler) save(w http.ResponseWriter, r *http.Request, productID *int64) {
	const op = "ProductHandler.save"

	session, err := SessionFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := ensureMultipartForm(r, maxUploadMemory); err != nil {
		WriteError(w, e.Wrap(op, err))
		return
	}

	draft, err := parseProductForm(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	image, err := parseImage(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := h.catalogUC.SaveProduct(r.Context(), usecase.NewSaveProductReq(session.ID, productID, draft, image))
	if err != nil {
		h.logger.Warnf("%s: %v", op, err)
		WriteError(w, err)
		return
	}

	status := http.StatusOK
	if productID == nil {
		status = http.StatusCreated
	}
	WriteSuccess(w, status, toProductResponse(product))
}

// Delete godoc
// @Summary      Delete a product
// @Description  Refused unless the request carries confirm=true.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Product ID"
// @Param        confirm query bool true "Must be true"
// @Success      204 "No Content"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "ProductHandler.Delete"

	id, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"

	if err := h.catalogUC.DeleteProduct(r.Context(), usecase.NewDeleteProductReq(id, confirmed)); err != nil {
		h.logger.Warnf("%s: %v", op, err)
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseProductID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, e.Wrap("product id", e.ErrStatusBadRequest)
	}
	return id, nil
}
