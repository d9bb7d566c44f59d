package tag

import "context"

type Repository interface {
	Create(context context.Context, tag *Tag) error
	ListByCategory(context context.Context, categoryID int64) ([]*Tag, error)
	GetByID(context context.Context, id int64) (*Tag, error)
	UpdateName(context context.Context, id int64, name string) error
	Delete(context context.Context, id int64) error
}
