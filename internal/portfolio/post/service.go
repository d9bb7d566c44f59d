package post

import (
	"context"
	"log/slog"

	"github.com/pofol/folio/internal/platform/dberr"
	"github.com/pofol/folio/internal/platform/validate"
)

type Service struct {
	repo   Repository
	views  ViewCounter
	logger *slog.Logger
}

func NewService(repo Repository, views ViewCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		views:  views,
		logger: logger,
	}
}

// SeedForTab creates the empty post shell that backs a freshly created
// tab (the tab domain's PostSeeder). Content arrives later through
// UpdateByTab.
func (service *Service) SeedForTab(context context.Context, categoryID, tabID int64) error {
	post := &Post{CategoryID: categoryID, TabID: tabID}
	return service.repo.Create(context, post)
}

// PostSummary is the list projection: title plus live view count.
type PostSummary struct {
	ID    int64   `json:"id"`
	Title *string `json:"title"`
	Views int64   `json:"views"`
}

// ListByCategory returns post summaries with view counts merged in from the
// counter. A counter outage degrades to zero views rather than failing the
// listing.
func (service *Service) ListByCategory(context context.Context, categoryID int64) ([]*PostSummary, error) {
	posts, err := service.repo.ListByCategory(context, categoryID)
	if err != nil {
		return nil, err
	}

	postIDs := make([]int64, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	views, err := service.views.GetMany(context, postIDs)
	if err != nil {
		service.logger.Warn("post_views_unavailable", slog.Any("error", err))
		views = map[int64]int64{}
	}

	summaries := make([]*PostSummary, len(posts))
	for i, p := range posts {
		summaries[i] = &PostSummary{ID: p.ID, Title: p.Title, Views: views[p.ID]}
	}
	return summaries, nil
}

// GetByTab returns the tab's post, counting the read as a view. A tab
// without a post yields an empty post rather than an error, so the frontend
// can render a blank editor.
func (service *Service) GetByTab(context context.Context, tabID int64) (*Post, error) {
	post, err := service.repo.GetByTab(context, tabID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return &Post{TabID: tabID}, nil
		}
		return nil, err
	}

	views, err := service.views.Increment(context, post.ID)
	if err != nil {
		service.logger.Warn("post_view_count_failed", slog.Any("error", err))
	} else {
		post.Views = views
	}
	return post, nil
}

func (service *Service) UpdateByTab(context context.Context, tabID int64, title, content, imageURL *string) error {
	if _, err := service.repo.GetByTab(context, tabID); err != nil {
		return err
	}
	return service.repo.UpdateByTab(context, tabID, title, content, imageURL)
}

func (service *Service) CreateIntroduce(context context.Context, categoryID int64, title, content string) (*Introduce, error) {
	validator := &validate.Validator{}
	if err := validator.Required("title", title).Required("content", content).Err(); err != nil {
		return nil, err
	}

	introduce := &Introduce{CategoryID: categoryID, Title: title, Content: content}
	if err := service.repo.CreateIntroduce(context, introduce); err != nil {
		return nil, err
	}
	return introduce, nil
}

// GetIntroduce returns the category's introduction, or an empty one when
// none has been written yet.
func (service *Service) GetIntroduce(context context.Context, categoryID int64) (*Introduce, error) {
	introduce, err := service.repo.GetIntroduceByCategory(context, categoryID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return &Introduce{CategoryID: categoryID}, nil
		}
		return nil, err
	}
	return introduce, nil
}

func (service *Service) UpdateIntroduce(context context.Context, categoryID int64, title, content string) error {
	if _, err := service.repo.GetIntroduceByCategory(context, categoryID); err != nil {
		return err
	}
	return service.repo.UpdateIntroduce(context, categoryID, title, content)
}
