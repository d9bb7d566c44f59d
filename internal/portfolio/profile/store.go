package profile

import "context"

type Repository interface {
	CreateMain(ctx context.Context, main *Main) error
	GetMainByUser(ctx context.Context, userID int64) (*Main, error)
	UpdateMain(ctx context.Context, main *Main) error

	CreateSkillCategory(ctx context.Context, category *SkillCategory) error
	GetSkillCategoryByUser(ctx context.Context, userID int64) (*SkillCategory, error)
	RenameSkillCategory(ctx context.Context, id int64, name string) error

	CreateCard(ctx context.Context, card *Card) error
	GetCard(ctx context.Context, skillCategoryID int64, kind, sectionName string) (*Card, error)
	ListCards(ctx context.Context, skillCategoryID int64, kind string) ([]*Card, error)
	UpdateCard(ctx context.Context, card *Card) error
	DeleteCard(ctx context.Context, id int64) error

	UpsertLocation(ctx context.Context, location *Location) error
	GetLocationByUser(ctx context.Context, userID int64) (*Location, error)
}
