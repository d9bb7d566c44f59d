package category

import (
	"context"
	"log/slog"

	"github.com/pofol/folio/internal/platform/validate"
)

// BasicTabSeeder creates the default basic-tab pair for a new category.
// Implemented by the tab domain; declared here so the dependency points outward.
type BasicTabSeeder interface {
	SeedDefaults(context context.Context, categoryID, userID int64) error
}

type Service struct {
	repo   Repository
	seeder BasicTabSeeder
	logger *slog.Logger
}

func NewService(repo Repository, seeder BasicTabSeeder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		seeder: seeder,
		logger: logger,
	}
}

// Create persists a new category and seeds its basic tabs with placeholder
// content, so a fresh category renders immediately.
func (service *Service) Create(context context.Context, userID int64, title string) (*Category, error) {
	validator := &validate.Validator{}
	if err := validator.Required("title", title).MaxLen("title", title, 100).Err(); err != nil {
		return nil, err
	}

	category := &Category{UserID: userID, Title: title}
	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	if service.seeder != nil {
		if err := service.seeder.SeedDefaults(context, category.ID, userID); err != nil {
			return nil, err
		}
	}

	service.logger.Info("category_created",
		slog.Int64("category_id", category.ID),
		slog.Int64("user_id", userID),
	)
	return category, nil
}

func (service *Service) List(context context.Context, userID int64) ([]*Category, error) {
	return service.repo.ListByUser(context, userID)
}

func (service *Service) Get(context context.Context, id int64) (*Category, error) {
	return service.repo.GetByID(context, id)
}

func (service *Service) Rename(context context.Context, id int64, title string) error {
	validator := &validate.Validator{}
	if err := validator.Required("title", title).MaxLen("title", title, 100).Err(); err != nil {
		return err
	}

	if _, err := service.repo.GetByID(context, id); err != nil {
		return err
	}
	return service.repo.UpdateTitle(context, id, title)
}

func (service *Service) Delete(context context.Context, id int64) error {
	if _, err := service.repo.GetByID(context, id); err != nil {
		return err
	}
	return service.repo.Delete(context, id)
}
