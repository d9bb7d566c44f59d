package profile

import (
	"context"
	"log/slog"

	"github.com/pofol/folio/internal/platform/validate"
	"github.com/pofol/folio/internal/users/auth"
)

// Defaults written at signup so the landing page renders before the owner
// edits anything.
const (
	defaultGreeting      = "Hello!"
	defaultSmallGreeting = "Welcome to my portfolio."
	defaultIntroduce     = "Introduce yourself here."
	defaultJob           = "Developer"
	defaultSkillSection  = "SKILLS"
	defaultAddress       = "Seoul, South Korea"
	defaultLat           = 37.5665
	defaultLng           = 126.978
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

// Bootstrap seeds the landing-page rows for a freshly registered account:
// a Main block with placeholder text, the skill section, and a location with
// placeholder coordinates.
func (service *Service) Bootstrap(context context.Context, user *auth.User) error {
	main := &Main{
		UserID:        user.ID,
		Greeting:      defaultGreeting,
		SmallGreeting: defaultSmallGreeting,
		Introduce:     defaultIntroduce,
		Name:          user.Nickname,
		Job:           defaultJob,
		WorkYears:     0,
	}
	if err := service.repo.CreateMain(context, main); err != nil {
		return err
	}

	skillCategory := &SkillCategory{UserID: user.ID, Name: defaultSkillSection}
	if err := service.repo.CreateSkillCategory(context, skillCategory); err != nil {
		return err
	}

	location := &Location{
		UserID:  user.ID,
		Lat:     defaultLat,
		Lng:     defaultLng,
		Address: defaultAddress,
		Email:   user.Email,
	}
	if err := service.repo.UpsertLocation(context, location); err != nil {
		return err
	}

	service.logger.Info("profile_bootstrapped", "user_id", user.ID)
	return nil
}

func (service *Service) GetMain(context context.Context, userID int64) (*Main, error) {
	return service.repo.GetMainByUser(context, userID)
}

func (service *Service) UpdateMain(context context.Context, userID int64, input *Main) (*Main, error) {
	validator := &validate.Validator{}
	err := validator.
		Required("greeting", input.Greeting).
		Required("name", input.Name).
		MaxLen("greeting", input.Greeting, 100).
		MaxLen("smallGreeting", input.SmallGreeting, 200).
		MaxLen("name", input.Name, 50).
		MaxLen("job", input.Job, 50).
		Range("workYears", input.WorkYears, 0, 80).
		Err()
	if err != nil {
		return nil, err
	}

	main, err := service.repo.GetMainByUser(context, userID)
	if err != nil {
		return nil, err
	}

	main.Greeting = input.Greeting
	main.SmallGreeting = input.SmallGreeting
	main.Introduce = input.Introduce
	main.Name = input.Name
	main.Job = input.Job
	main.WorkYears = input.WorkYears

	if err := service.repo.UpdateMain(context, main); err != nil {
		return nil, err
	}
	return main, nil
}

func (service *Service) GetSkillCategory(context context.Context, userID int64) (*SkillCategory, error) {
	return service.repo.GetSkillCategoryByUser(context, userID)
}

func (service *Service) RenameSkillCategory(context context.Context, userID int64, name string) (*SkillCategory, error) {
	validator := &validate.Validator{}
	if err := validator.Required("name", name).MaxLen("name", name, 50).Err(); err != nil {
		return nil, err
	}

	category, err := service.repo.GetSkillCategoryByUser(context, userID)
	if err != nil {
		return nil, err
	}
	if err := service.repo.RenameSkillCategory(context, category.ID, name); err != nil {
		return nil, err
	}
	category.Name = name
	return category, nil
}

func (service *Service) CreateCard(context context.Context, userID int64, card *Card) (*Card, error) {
	validator := &validate.Validator{}
	err := validator.
		OneOf("kind", card.Kind, CardKindFirst, CardKindSecond).
		Required("categoryName", card.SectionName).
		Required("title", card.Title).
		MaxLen("categoryName", card.SectionName, 50).
		MaxLen("title", card.Title, 100).
		MaxLen("subTitle", card.SubTitle, 100).
		Err()
	if err != nil {
		return nil, err
	}

	category, err := service.repo.GetSkillCategoryByUser(context, userID)
	if err != nil {
		return nil, err
	}

	card.SkillCategoryID = category.ID
	if err := service.repo.CreateCard(context, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (service *Service) GetCard(context context.Context, userID int64, kind, sectionName string) (*Card, error) {
	category, err := service.repo.GetSkillCategoryByUser(context, userID)
	if err != nil {
		return nil, err
	}
	return service.repo.GetCard(context, category.ID, kind, sectionName)
}

func (service *Service) ListCards(context context.Context, userID int64, kind string) ([]*Card, error) {
	validator := &validate.Validator{}
	if err := validator.OneOf("kind", kind, CardKindFirst, CardKindSecond).Err(); err != nil {
		return nil, err
	}

	category, err := service.repo.GetSkillCategoryByUser(context, userID)
	if err != nil {
		return nil, err
	}
	return service.repo.ListCards(context, category.ID, kind)
}

func (service *Service) UpdateCard(context context.Context, userID int64, card *Card) (*Card, error) {
	validator := &validate.Validator{}
	err := validator.
		Required("categoryName", card.SectionName).
		Required("title", card.Title).
		MaxLen("categoryName", card.SectionName, 50).
		MaxLen("title", card.Title, 100).
		MaxLen("subTitle", card.SubTitle, 100).
		Err()
	if err != nil {
		return nil, err
	}

	category, err := service.repo.GetSkillCategoryByUser(context, userID)
	if err != nil {
		return nil, err
	}

	existing, err := service.repo.GetCard(context, category.ID, card.Kind, card.SectionName)
	if err != nil {
		return nil, err
	}

	existing.SectionName = card.SectionName
	existing.Title = card.Title
	existing.SubTitle = card.SubTitle
	existing.Content = card.Content

	if err := service.repo.UpdateCard(context, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (service *Service) GetLocation(context context.Context, userID int64) (*Location, error) {
	return service.repo.GetLocationByUser(context, userID)
}

func (service *Service) PutLocation(context context.Context, userID int64, input *Location) (*Location, error) {
	validator := &validate.Validator{}
	err := validator.
		Required("address", input.Address).
		MaxLen("address", input.Address, 200).
		MaxLen("phoneNumber", input.PhoneNumber, 30).
		Err()
	if err != nil {
		return nil, err
	}
	if input.Email != "" {
		if err := (&validate.Validator{}).Email("email", input.Email).Err(); err != nil {
			return nil, err
		}
	}

	input.UserID = userID
	if err := service.repo.UpsertLocation(context, input); err != nil {
		return nil, err
	}
	return input, nil
}
