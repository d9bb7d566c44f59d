package storage

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pofol/folio/internal/platform/apperr"
	"github.com/pofol/folio/internal/platform/middleware"
	requestutil "github.com/pofol/folio/internal/platform/request"
	"github.com/pofol/folio/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/categories/{categoryId}/files", handler.listCategoryFiles)

	authed := router.With(middleware.RequireAuth)
	authed.Post("/categories/{categoryId}/files", handler.uploadToCategory)
	authed.Delete("/files/{id}", handler.deleteFile)
	authed.Get("/profile/image", handler.getProfileImage)
	authed.Post("/profile/image", handler.setProfileImage)
	authed.Get("/profile/video", handler.getMainVideo)
	authed.Post("/profile/video", handler.setMainVideo)
}

// formUpload pulls the "file" part out of a multipart body. The caller owns
// closing the returned Upload's Body.
func formUpload(request *http.Request) (*Upload, error) {
	if err := request.ParseMultipartForm(MaxUploadSize); err != nil {
		return nil, apperr.ValidationError("Invalid multipart body")
	}

	part, header, err := request.FormFile("file")
	if err != nil {
		return nil, apperr.ValidationError("Missing file field")
	}

	return &Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        part,
	}, nil
}

func (handler *Handler) listCategoryFiles(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	files, err := handler.service.ListCategoryFiles(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, files)
}

func (handler *Handler) uploadToCategory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	upload, err := formUpload(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer upload.Body.Close()

	file, err := handler.service.UploadToCategory(request.Context(), userID, categoryID, upload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, file)
}

func (handler *Handler) deleteFile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	fileID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteFile(request.Context(), userID, fileID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) getProfileImage(writer http.ResponseWriter, request *http.Request) {
	handler.getSingleton(writer, request, handler.service.GetProfileImage)
}

func (handler *Handler) setProfileImage(writer http.ResponseWriter, request *http.Request) {
	handler.setSingleton(writer, request, handler.service.SetProfileImage)
}

func (handler *Handler) getMainVideo(writer http.ResponseWriter, request *http.Request) {
	handler.getSingleton(writer, request, handler.service.GetMainVideo)
}

func (handler *Handler) setMainVideo(writer http.ResponseWriter, request *http.Request) {
	handler.setSingleton(writer, request, handler.service.SetMainVideo)
}

func (handler *Handler) getSingleton(
	writer http.ResponseWriter,
	request *http.Request,
	get func(ctx context.Context, userID int64) (*File, error),
) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, err := get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, file)
}

func (handler *Handler) setSingleton(
	writer http.ResponseWriter,
	request *http.Request,
	set func(ctx context.Context, userID int64, upload *Upload) (*File, error),
) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	upload, err := formUpload(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer upload.Body.Close()

	file, err := set(request.Context(), userID, upload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, file)
}
