// Package storage keeps uploaded portfolio assets: category attachments, the
// profile image, and the landing-page video. Object bytes live in S3, metadata
// in Postgres, and reads hand out short-lived presigned URLs.
package storage

import "time"

// File kinds. IMAGE and VIDEO are account-level singletons, FILE rows attach
// to a category.
const (
	KindFile  = "FILE"
	KindImage = "IMAGE"
	KindVideo = "VIDEO"
)

type File struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	CategoryID *int64    `json:"categoryId,omitempty"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Key        string    `json:"-"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`

	// URL is a presigned GET filled in on read, never persisted.
	URL string `json:"url,omitempty"`
}
