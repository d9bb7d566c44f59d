package post

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
	router.Get("/categories/{categoryId}/posts", handler.listPosts)
	router.Get("/tabs/{tabId}/post", handler.getPost)
	router.Get("/categories/{categoryId}/introduce", handler.getIntroduce)

	authed := router.With(middleware.RequireAuth)
	authed.Put("/tabs/{tabId}/post", handler.updatePost)
	authed.Post("/categories/{categoryId}/introduce", handler.createIntroduce)
	authed.Patch("/categories/{categoryId}/introduce", handler.updateIntroduce)
}

func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summaries, err := handler.service.ListByCategory(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summaries)
}

func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	tabID, err := requestutil.ID(request, "tabId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetByTab(request.Context(), tabID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

type updatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	tabID, err := requestutil.ID(request, "tabId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updatePostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateByTab(request.Context(), tabID, input.Title, input.Content, input.ImageURL); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

type introduceRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (handler *Handler) getIntroduce(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	introduce, err := handler.service.GetIntroduce(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, introduce)
}

func (handler *Handler) createIntroduce(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input introduceRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateIntroduce(request.Context(), categoryID, input.Title, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateIntroduce(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input introduceRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateIntroduce(request.Context(), categoryID, input.Title, input.Content); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
