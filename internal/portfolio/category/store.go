package category

import "context"

type Repository interface {
	Create(context context.Context, category *Category) error
	ListByUser(context context.Context, userID int64) ([]*Category, error)
	GetByID(context context.Context, id int64) (*Category, error)
	UpdateTitle(context context.Context, id int64, title string) error
	Delete(context context.Context, id int64) error
}
