package storage

import "context"

type Repository interface {
	Create(ctx context.Context, file *File) error
	GetByID(ctx context.Context, id int64) (*File, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*File, error)
	GetSingleton(ctx context.Context, userID int64, kind string) (*File, error)
	Delete(ctx context.Context, id int64) error
}
