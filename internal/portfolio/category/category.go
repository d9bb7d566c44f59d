package category

import "time"

// Category is a top-level portfolio section owned by one account.
// Creating one also seeds its basic tab pair (see Service.Create).
type Category struct {
	ID        int64     `json:"id"`
	PublicID  string    `json:"publicId"`
	UserID    int64     `json:"-"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
