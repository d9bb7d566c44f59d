package post

import "time"

// Post is the content body attached to a tab. One post per tab; it is
// created empty alongside the tab and filled in later.
type Post struct {
	ID         int64     `json:"id"`
	CategoryID int64     `json:"categoryId"`
	TabID      int64     `json:"tabId"`
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	ImageURL   *string   `json:"imageUrl"`
	Views      int64     `json:"views"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Introduce is a category's one-off introduction blurb. At most one per
// category.
type Introduce struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"categoryId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}
