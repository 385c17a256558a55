package models

// Service is an immutable catalog entry with a fixed base rate.
type Service struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price"`
}

// SparePart is catalog data plus a stock counter. Stock is the single
// source of truth for inventory; availability is derived from it.
type SparePart struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand,omitempty"`
	Model       string  `json:"model,omitempty"`
	Year        string  `json:"year,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (p SparePart) IsAvailable() bool {
	return p.Stock > 0
}

// PartFilter carries the advisory catalog filters from the storefront.
type PartFilter struct {
	Brand string
	Model string
	Year  string
}
