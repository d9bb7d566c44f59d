package post

import "context"

type Repository interface {
	Create(context context.Context, post *Post) error
	ListByCategory(context context.Context, categoryID int64) ([]*Post, error)
	GetByTab(context context.Context, tabID int64) (*Post, error)
	UpdateByTab(context context.Context, tabID int64, title, content, imageURL *string) error

	CreateIntroduce(context context.Context, introduce *Introduce) error
	GetIntroduceByCategory(context context.Context, categoryID int64) (*Introduce, error)
	UpdateIntroduce(context context.Context, categoryID int64, title, content string) error
}

// ViewCounter tracks per-post view counts in volatile storage. Counts are
// display data; losing them on a cache flush is acceptable.
type ViewCounter interface {
	Increment(context context.Context, postID int64) (int64, error)
	Get(context context.Context, postID int64) (int64, error)
	GetMany(context context.Context, postIDs []int64) (map[int64]int64, error)
}
