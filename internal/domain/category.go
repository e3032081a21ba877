package domain

// Category is the closed set of product categories the storefront knows.
type Category string

const (
	CategoryHerbalCare Category = "Herbal Care"
	CategoryWellness   Category = "Wellness"
	CategoryLifestyle  Category = "Lifestyle"
)

// Valid reports whether c is one of the enumerated categories. The editor is a
// closed choice, free text never reaches persistence.
func (c Category) Valid() bool {
	switch c {
	case CategoryHerbalCare, CategoryWellness, CategoryLifestyle:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}
