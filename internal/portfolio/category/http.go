package category

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
	router.Get("/categories", handler.listCategories)

	authed := router.With(middleware.RequireAuth)
	authed.Post("/categories", handler.createCategory)
	authed.Patch("/categories/{categoryId}", handler.renameCategory)
	authed.Delete("/categories/{categoryId}", handler.deleteCategory)
}

type categoryRequest struct {
	Title string `json:"title"`
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	categories, err := handler.service.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), userID, input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) renameCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Rename(request.Context(), categoryID, input.Title); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), categoryID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
