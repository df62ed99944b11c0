package client

import "time"

// Cake is the full record returned by the service for get, create and
// update calls.
type Cake struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	ImageURL  string    `json:"imageUrl"`
	YumFactor int       `json:"yumFactor"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CakeSummary is the list projection: just enough for a list view.
type CakeSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// CakeDraft carries the writable fields of a cake. Nil pointers are
// omitted from the request body, which is how partial updates are
// expressed over PUT.
type CakeDraft struct {
	Name      *string `json:"name,omitempty"`
	Comment   *string `json:"comment,omitempty"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	YumFactor *int    `json:"yumFactor,omitempty"`
}

// NewCakeDraft builds a fully populated draft, the shape create expects.
func NewCakeDraft(name, comment, imageURL string, yumFactor int) CakeDraft {
	return CakeDraft{
		Name:      &name,
		Comment:   &comment,
		ImageURL:  &imageURL,
		YumFactor: &yumFactor,
	}
}
