package tag

// Tag is a short label attached to a category (tech stack, topic, etc.).
type Tag struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"-"`
	Name       string `json:"tagName"`
}
