package domain

import (
	"strings"
	"time"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/shopspring/decimal"
)

var (
	ratingMin = decimal.Zero
	ratingMax = decimal.NewFromInt(5)
)

// ProductDraft is the validated input of the product editor. It carries no
// identity: a draft submitted without an existing id becomes an insert, a
// draft paired with an id becomes a full-replace update. The two paths are
// distinguished by type, not by inspecting optional fields.
type ProductDraft struct {
	Name            string
	Description     string
	LongDescription string
	Price           string // display-ready text, e.g. "₹699"
	Category        Category
	Tag             string
	Rating          decimal.Decimal
	Reviews         int
	Benefits        []string
	ImageURL        string // prior URL on edit, empty on create, replaced when a new file is uploaded
}

// Product is a persisted catalog record. Identity and timestamps are assigned
// by the database, never by the client.
type Product struct {
	ID        int64
	Draft     ProductDraft
	CreatedAt time.Time
	UpdatedAt *time.Time
}

const (
	DefaultRatingStr = "4.5"
	DefaultReviews   = 0
)

// NewProductDraft builds a draft with the editor defaults applied: rating 4.5
// and zero reviews unless the caller set them.
func NewProductDraft(name, description, longDescription, price string, category Category) *ProductDraft {
	rating, _ := decimal.NewFromString(DefaultRatingStr)

	return &ProductDraft{
		Name:            name,
		Description:     description,
		LongDescription: longDescription,
		Price:           price,
		Category:        category,
		Rating:          rating,
		Reviews:         DefaultReviews,
	}
}

// Validate checks the draft before any network call is made. The first failed
// rule is returned; a failed validation must never be followed by an upload or
// a record write.
func (d *ProductDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return e.ErrNameRequired
	}

	if strings.TrimSpace(d.Description) == "" || strings.TrimSpace(d.LongDescription) == "" {
		return e.ErrDescriptionRequired
	}

	if strings.TrimSpace(d.Price) == "" {
		return e.ErrPriceRequired
	}

	if !d.Category.Valid() {
		return e.ErrInvalidCategory
	}

	if d.Rating.LessThan(ratingMin) || d.Rating.GreaterThan(ratingMax) {
		return e.ErrRatingOutOfRange
	}

	if d.Reviews < 0 {
		return e.ErrNegativeReviews
	}

	return nil
}

// FilterBenefits drops blank and whitespace-only entries, trimming the rest.
// Runs immediately before submission; the result may legitimately be empty.
func (d *ProductDraft) FilterBenefits() {
	filtered := make([]string, 0, len(d.Benefits))
	for _, b := range d.Benefits {
		if trimmed := strings.TrimSpace(b); trimmed != "" {
			filtered = append(filtered, trimmed)
		}
	}
	d.Benefits = filtered
}
