package model

import "time"

// Cake is the sole entity: a rated cake whose name is unique across all live
// records under case-insensitive comparison.
type Cake struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	ImageURL  string    `json:"imageUrl"`
	YumFactor int       `json:"yumFactor"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CakeSummary is the list projection: id, name and image only.
type CakeSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// CakeDraft carries a validated, normalized set of field values for
// create/update. A nil pointer means the field was not supplied, which on
// partial updates leaves the stored value untouched.
type CakeDraft struct {
	Name      *string
	Comment   *string
	ImageURL  *string
	YumFactor *int
}

// FieldViolation describes a single failed validation rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
