package tab

import (
	"context"
	"log/slog"

	"github.com/pofol/folio/internal/platform/validate"
)

// Placeholder content every new category starts with.
const (
	defaultTab1     = "Introduction"
	defaultTab2     = "Resources"
	defaultContent1 = "No introduction yet."
	defaultContent2 = "No resources yet."
)

// PostSeeder creates the empty post shell backing a new tab. Implemented by
// the post domain; declared here so the dependency points outward.
type PostSeeder interface {
	SeedForTab(context context.Context, categoryID, tabID int64) error
}

type Service struct {
	repo   Repository
	posts  PostSeeder
	logger *slog.Logger
}

func NewService(repo Repository, posts PostSeeder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		posts:  posts,
		logger: logger,
	}
}

// SeedDefaults implements the category domain's BasicTabSeeder: every new
// category gets the fixed tab pair with placeholder content.
func (service *Service) SeedDefaults(context context.Context, categoryID, userID int64) error {
	basicTab := &BasicTab{
		CategoryID: categoryID,
		UserID:     userID,
		Tab1:       defaultTab1,
		Tab2:       defaultTab2,
		Content1:   defaultContent1,
		Content2:   defaultContent2,
	}
	return service.repo.CreateBasicTab(context, basicTab)
}

func (service *Service) CreateTab(context context.Context, categoryID int64, name string) (*Tab, error) {
	validator := &validate.Validator{}
	if err := validator.Required("tabName", name).MaxLen("tabName", name, 50).Err(); err != nil {
		return nil, err
	}

	tab := &Tab{CategoryID: categoryID, Name: name}
	if err := service.repo.CreateTab(context, tab); err != nil {
		return nil, err
	}

	// Every tab is backed by exactly one post, created empty up front.
	if service.posts != nil {
		if err := service.posts.SeedForTab(context, categoryID, tab.ID); err != nil {
			return nil, err
		}
	}
	return tab, nil
}

func (service *Service) ListTabs(context context.Context, categoryID int64) ([]*Tab, error) {
	return service.repo.ListByCategory(context, categoryID)
}

func (service *Service) DeleteTab(context context.Context, id int64) error {
	if _, err := service.repo.GetTabByID(context, id); err != nil {
		return err
	}
	return service.repo.DeleteTab(context, id)
}

func (service *Service) GetBasicTabs(context context.Context, categoryID int64) (*BasicTab, error) {
	return service.repo.GetBasicTabByCategory(context, categoryID)
}

// UpdateBasicContents edits the contents of the fixed tab pair. The tab
// names themselves are immutable.
func (service *Service) UpdateBasicContents(context context.Context, categoryID int64, content1, content2 string) error {
	if _, err := service.repo.GetBasicTabByCategory(context, categoryID); err != nil {
		return err
	}
	return service.repo.UpdateBasicContents(context, categoryID, content1, content2)
}
