package tag

import (
	"context"
	"log/slog"

	"github.com/pofol/folio/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) Create(context context.Context, categoryID int64, name string) (*Tag, error) {
	validator := &validate.Validator{}
	if err := validator.Required("tagName", name).MaxLen("tagName", name, 30).Err(); err != nil {
		return nil, err
	}

	tag := &Tag{CategoryID: categoryID, Name: name}
	if err := service.repo.Create(context, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (service *Service) List(context context.Context, categoryID int64) ([]*Tag, error) {
	return service.repo.ListByCategory(context, categoryID)
}

func (service *Service) Rename(context context.Context, id int64, name string) error {
	validator := &validate.Validator{}
	if err := validator.Required("tagName", name).MaxLen("tagName", name, 30).Err(); err != nil {
		return err
	}

	if _, err := service.repo.GetByID(context, id); err != nil {
		return err
	}
	return service.repo.UpdateName(context, id, name)
}

func (service *Service) Delete(context context.Context, id int64) error {
	if _, err := service.repo.GetByID(context, id); err != nil {
		return err
	}
	return service.repo.Delete(context, id)
}
