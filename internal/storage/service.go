package storage

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pofol/folio/internal/platform/apperr"
	"github.com/pofol/folio/internal/platform/dberr"
	"github.com/pofol/folio/internal/platform/validate"
)

// MaxUploadSize caps a single multipart upload.
const MaxUploadSize = 50 << 20 // 50 MiB

type Service struct {
	repo    Repository
	objects *ObjectStore
	logger  *slog.Logger
}

func NewService(repo Repository, objects *ObjectStore, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		objects: objects,
		logger:  logger,
	}
}

// Upload describes one incoming multipart file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        multipart.File
}

func objectKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), filepath.Ext(filename))
}

func (service *Service) UploadToCategory(ctx context.Context, userID, categoryID int64, upload *Upload) (*File, error) {
	if err := validateUpload(upload); err != nil {
		return nil, err
	}

	key := objectKey(fmt.Sprintf("category/%d", categoryID), upload.Filename)
	if err := service.objects.Put(ctx, key, upload.Body, upload.ContentType); err != nil {
		return nil, err
	}

	file := &File{
		UserID:     userID,
		CategoryID: &categoryID,
		Kind:       KindFile,
		Title:      upload.Filename,
		Key:        key,
		Size:       upload.Size,
	}
	if err := service.repo.Create(ctx, file); err != nil {
		return nil, err
	}

	service.logger.Info("file_uploaded", "file_id", file.ID, "category_id", categoryID, "size", file.Size)
	return service.withURL(ctx, file)
}

func (service *Service) ListCategoryFiles(ctx context.Context, categoryID int64) ([]*File, error) {
	files, err := service.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if _, err := service.withURL(ctx, file); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// SetProfileImage replaces the account's profile image. The previous object
// and row are removed before the new one lands.
func (service *Service) SetProfileImage(ctx context.Context, userID int64, upload *Upload) (*File, error) {
	return service.replaceSingleton(ctx, userID, KindImage, "profile-image", upload)
}

func (service *Service) GetProfileImage(ctx context.Context, userID int64) (*File, error) {
	return service.getSingleton(ctx, userID, KindImage)
}

// SetMainVideo replaces the landing-page video the same way.
func (service *Service) SetMainVideo(ctx context.Context, userID int64, upload *Upload) (*File, error) {
	return service.replaceSingleton(ctx, userID, KindVideo, "main-video", upload)
}

func (service *Service) GetMainVideo(ctx context.Context, userID int64) (*File, error) {
	return service.getSingleton(ctx, userID, KindVideo)
}

func (service *Service) DeleteFile(ctx context.Context, userID, id int64) error {
	file, err := service.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if file.UserID != userID {
		return apperr.Forbidden("You do not own this file")
	}

	if err := service.objects.Delete(ctx, file.Key); err != nil {
		return err
	}
	return service.repo.Delete(ctx, id)
}

func (service *Service) replaceSingleton(ctx context.Context, userID int64, kind, prefix string, upload *Upload) (*File, error) {
	if err := validateUpload(upload); err != nil {
		return nil, err
	}

	existing, err := service.repo.GetSingleton(ctx, userID, kind)
	switch {
	case err == nil:
		if err := service.objects.Delete(ctx, existing.Key); err != nil {
			// Keep going: an orphaned object is better than a broken replace.
			service.logger.Warn("stale_object_delete_failed", "key", existing.Key, "error", err)
		}
		if err := service.repo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
	case !dberr.IsNotFound(err):
		return nil, err
	}

	key := objectKey(fmt.Sprintf("%s/%d", prefix, userID), upload.Filename)
	if err := service.objects.Put(ctx, key, upload.Body, upload.ContentType); err != nil {
		return nil, err
	}

	file := &File{
		UserID: userID,
		Kind:   kind,
		Title:  upload.Filename,
		Key:    key,
		Size:   upload.Size,
	}
	if err := service.repo.Create(ctx, file); err != nil {
		return nil, err
	}
	return service.withURL(ctx, file)
}

// getSingleton returns an empty File when the account has none, so clients
// always get a 200 with a stable shape.
func (service *Service) getSingleton(ctx context.Context, userID int64, kind string) (*File, error) {
	file, err := service.repo.GetSingleton(ctx, userID, kind)
	if dberr.IsNotFound(err) {
		return &File{Kind: kind}, nil
	}
	if err != nil {
		return nil, err
	}
	return service.withURL(ctx, file)
}

func (service *Service) withURL(ctx context.Context, file *File) (*File, error) {
	url, err := service.objects.PresignGet(ctx, file.Key)
	if err != nil {
		return nil, err
	}
	file.URL = url
	return file, nil
}

func validateUpload(upload *Upload) error {
	validator := &validate.Validator{}
	return validator.
		Required("file", upload.Filename).
		Custom("file", upload.Size <= 0, "File is empty").
		Custom("file", upload.Size > MaxUploadSize, "File exceeds the upload size limit").
		Err()
}
