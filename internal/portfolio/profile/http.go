package profile

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
	// The whole profile surface is owner-scoped, reads included.
	authed := router.With(middleware.RequireAuth)
	authed.Get("/profile/main", handler.getMain)
	authed.Patch("/profile/main", handler.updateMain)
	authed.Get("/profile/skill-category", handler.getSkillCategory)
	authed.Patch("/profile/skill-category", handler.renameSkillCategory)
	authed.Get("/profile/cards", handler.listCards)
	authed.Post("/profile/cards", handler.createCard)
	authed.Put("/profile/cards", handler.updateCard)
	authed.Get("/profile/location", handler.getLocation)
	authed.Put("/profile/location", handler.putLocation)
}

func (handler *Handler) getMain(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	main, err := handler.service.GetMain(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, main)
}

func (handler *Handler) updateMain(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Main
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	main, err := handler.service.UpdateMain(request.Context(), userID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, main)
}

func (handler *Handler) getSkillCategory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.GetSkillCategory(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

type renameSkillCategoryRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) renameSkillCategory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input renameSkillCategoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.RenameSkillCategory(request.Context(), userID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

type cardRequest struct {
	Kind        string `json:"kind"`
	SectionName string `json:"categoryName"`
	Title       string `json:"title"`
	SubTitle    string `json:"subTitle"`
	Content     string `json:"content"`
}

func (handler *Handler) listCards(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind := request.URL.Query().Get("kind")
	sectionName := request.URL.Query().Get("categoryName")

	// With a section name this is a point lookup, otherwise a listing by kind.
	if sectionName != "" {
		card, err := handler.service.GetCard(request.Context(), userID, kind, sectionName)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, card)
		return
	}

	cards, err := handler.service.ListCards(request.Context(), userID, kind)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cards)
}

func (handler *Handler) createCard(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input cardRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	card := &Card{
		Kind:        input.Kind,
		SectionName: input.SectionName,
		Title:       input.Title,
		SubTitle:    input.SubTitle,
		Content:     input.Content,
	}
	created, err := handler.service.CreateCard(request.Context(), userID, card)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateCard(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input cardRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	card := &Card{
		Kind:        input.Kind,
		SectionName: input.SectionName,
		Title:       input.Title,
		SubTitle:    input.SubTitle,
		Content:     input.Content,
	}
	updated, err := handler.service.UpdateCard(request.Context(), userID, card)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) getLocation(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	location, err := handler.service.GetLocation(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, location)
}

func (handler *Handler) putLocation(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Location
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	location, err := handler.service.PutLocation(request.Context(), userID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, location)
}
