package profile

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofol/folio/internal/users/auth"
)

type memoryRepository struct {
	mains           map[int64]*Main
	skillCategories map[int64]*SkillCategory
	cards           map[int64]*Card
	locations       map[int64]*Location
	nextID          int64
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		mains:           make(map[int64]*Main),
		skillCategories: make(map[int64]*SkillCategory),
		cards:           make(map[int64]*Card),
		locations:       make(map[int64]*Location),
	}
}

func (repository *memoryRepository) id() int64 {
	repository.nextID++
	return repository.nextID
}

func (repository *memoryRepository) CreateMain(_ context.Context, main *Main) error {
	main.ID = repository.id()
	repository.mains[main.UserID] = main
	return nil
}

func (repository *memoryRepository) GetMainByUser(_ context.Context, userID int64) (*Main, error) {
	m, ok := repository.mains[userID]
	if !ok {
		return nil, errNotFound()
	}
	return m, nil
}

func (repository *memoryRepository) UpdateMain(_ context.Context, main *Main) error {
	repository.mains[main.UserID] = main
	return nil
}

func (repository *memoryRepository) CreateSkillCategory(_ context.Context, category *SkillCategory) error {
	category.ID = repository.id()
	repository.skillCategories[category.UserID] = category
	return nil
}

func (repository *memoryRepository) GetSkillCategoryByUser(_ context.Context, userID int64) (*SkillCategory, error) {
	c, ok := repository.skillCategories[userID]
	if !ok {
		return nil, errNotFound()
	}
	return c, nil
}

func (repository *memoryRepository) RenameSkillCategory(_ context.Context, id int64, name string) error {
	for _, c := range repository.skillCategories {
		if c.ID == id {
			c.Name = name
		}
	}
	return nil
}

func (repository *memoryRepository) CreateCard(_ context.Context, card *Card) error {
	card.ID = repository.id()
	repository.cards[card.ID] = card
	return nil
}

func (repository *memoryRepository) GetCard(_ context.Context, skillCategoryID int64, kind, sectionName string) (*Card, error) {
	for _, c := range repository.cards {
		if c.SkillCategoryID == skillCategoryID && c.Kind == kind && c.SectionName == sectionName {
			return c, nil
		}
	}
	return nil, errNotFound()
}

func (repository *memoryRepository) ListCards(_ context.Context, skillCategoryID int64, kind string) ([]*Card, error) {
	cards := make([]*Card, 0)
	for _, c := range repository.cards {
		if c.SkillCategoryID == skillCategoryID && c.Kind == kind {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

func (repository *memoryRepository) UpdateCard(_ context.Context, card *Card) error {
	repository.cards[card.ID] = card
	return nil
}

func (repository *memoryRepository) DeleteCard(_ context.Context, id int64) error {
	delete(repository.cards, id)
	return nil
}

func (repository *memoryRepository) UpsertLocation(_ context.Context, location *Location) error {
	repository.locations[location.UserID] = location
	return nil
}

func (repository *memoryRepository) GetLocationByUser(_ context.Context, userID int64) (*Location, error) {
	l, ok := repository.locations[userID]
	if !ok {
		return nil, errNotFound()
	}
	return l, nil
}

func errNotFound() error {
	return assert.AnError
}

func newTestService(t *testing.T) (*Service, *memoryRepository) {
	t.Helper()
	repository := newMemoryRepository()
	return NewService(repository, slog.New(slog.NewJSONHandler(io.Discard, nil))), repository
}

func TestService_Bootstrap_SeedsMainSkillsAndLocation(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	user := &auth.User{ID: 42, Email: "dev@example.com", Nickname: "dev"}
	require.NoError(t, service.Bootstrap(ctx, user))

	main, err := service.GetMain(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "dev", main.Name)
	assert.Equal(t, defaultGreeting, main.Greeting)
	assert.Zero(t, main.WorkYears)

	category, err := service.GetSkillCategory(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, defaultSkillSection, category.Name)

	location, err := service.GetLocation(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", location.Email)
	assert.InDelta(t, defaultLat, location.Lat, 0.001)
}

func TestService_CreateCard_BindsToOwnSkillCategory(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	user := &auth.User{ID: 7, Email: "a@b.com", Nickname: "a"}
	require.NoError(t, service.Bootstrap(ctx, user))

	card, err := service.CreateCard(ctx, user.ID, &Card{
		Kind:        CardKindFirst,
		SectionName: "Backend",
		Title:       "Go",
	})
	require.NoError(t, err)

	category, err := service.GetSkillCategory(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, card.SkillCategoryID)

	cards, err := service.ListCards(ctx, user.ID, CardKindFirst)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestService_CreateCard_RejectsUnknownKind(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	user := &auth.User{ID: 8, Email: "c@d.com", Nickname: "c"}
	require.NoError(t, service.Bootstrap(ctx, user))

	_, err := service.CreateCard(ctx, user.ID, &Card{
		Kind:        "THIRD",
		SectionName: "Backend",
		Title:       "Go",
	})
	assert.Error(t, err)
}
