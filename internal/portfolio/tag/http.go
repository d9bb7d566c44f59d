package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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
	router.Get("/categories/{categoryId}/tags", handler.listTags)

	authed := router.With(middleware.RequireAuth)
	authed.Post("/categories/{categoryId}/tags", handler.createTag)
	authed.Patch("/tags/{id}", handler.renameTag)
	authed.Delete("/tags/{id}", handler.deleteTag)
}

type tagRequest struct {
	TagName string `json:"tagName"`
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tags, err := handler.service.List(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input tagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), categoryID, input.TagName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) renameTag(writer http.ResponseWriter, request *http.Request) {
	tagID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input tagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Rename(request.Context(), tagID, input.TagName); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	tagID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), tagID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
