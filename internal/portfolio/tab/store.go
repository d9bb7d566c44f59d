package tab

import "context"

type Repository interface {
	CreateTab(context context.Context, tab *Tab) error
	ListByCategory(context context.Context, categoryID int64) ([]*Tab, error)
	GetTabByID(context context.Context, id int64) (*Tab, error)
	DeleteTab(context context.Context, id int64) error

	CreateBasicTab(context context.Context, basicTab *BasicTab) error
	GetBasicTabByCategory(context context.Context, categoryID int64) (*BasicTab, error)
	UpdateBasicContents(context context.Context, categoryID int64, content1, content2 string) error
}
