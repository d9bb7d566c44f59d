package tab

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

// RegisterRoutes mounts tab routes. Mounted under /categories/{categoryId}/tabs
// plus a flat /tabs/{tabId} for deletion.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/categories/{categoryId}/tabs", handler.listTabs)
	router.Get("/categories/{categoryId}/basic-tabs", handler.getBasicTabs)

	authed := router.With(middleware.RequireAuth)
	authed.Post("/categories/{categoryId}/tabs", handler.createTab)
	authed.Delete("/tabs/{tabId}", handler.deleteTab)
	authed.Patch("/categories/{categoryId}/basic-tabs", handler.updateBasicContents)
}

func (handler *Handler) listTabs(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tabs, err := handler.service.ListTabs(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tabs)
}

func (handler *Handler) createTab(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		TabName string `json:"tabName"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateTab(request.Context(), categoryID, input.TabName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) deleteTab(writer http.ResponseWriter, request *http.Request) {
	tabID, err := requestutil.ID(request, "tabId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTab(request.Context(), tabID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) getBasicTabs(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	basicTab, err := handler.service.GetBasicTabs(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, basicTab)
}

func (handler *Handler) updateBasicContents(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		BasicContent1 string `json:"basicContent1"`
		BasicContent2 string `json:"basicContent2"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBasicContents(request.Context(), categoryID, input.BasicContent1, input.BasicContent2); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
