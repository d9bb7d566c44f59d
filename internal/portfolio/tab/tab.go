package tab

import "time"

// Tab is a user-defined content tab inside a category.
type Tab struct {
	ID         int64     `json:"id"`
	CategoryID int64     `json:"categoryId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BasicTab is the fixed tab pair every category starts with. Exactly one
// row exists per category; only the contents are editable.
type BasicTab struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"categoryId"`
	UserID     int64  `json:"-"`
	Tab1       string `json:"basicTab1"`
	Tab2       string `json:"basicTab2"`
	Content1   string `json:"basicContent1"`
	Content2   string `json:"basicContent2"`
}
