// AngelaMos | 2026
// handler.go

package casefile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/advotec/advotec-api/internal/core"
	"github.com/advotec/advotec-api/internal/middleware"
)

const clientNotFound = "Cliente não encontrado ou não pertence a este usuário"

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/fichas", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/{clienteId}", h.Create)
		r.Get("/{clienteId}", h.List)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	clientID, ok := core.PathObjectID(w, r, "clienteId")
	if !ok {
		return
	}

	var req CreateCaseFileRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	file, err := h.service.Create(r.Context(), middleware.GetPrincipal(r.Context()), clientID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, clientNotFound)
			return
		}
		core.JSONError(w, core.InternalError(err, "Erro ao criar ficha"))
		return
	}

	core.Created(w, ToCaseFileResponse(file))
}

// List returns the client's case files, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	clientID, ok := core.PathObjectID(w, r, "clienteId")
	if !ok {
		return
	}

	files, err := h.service.ListForClient(r.Context(), middleware.GetPrincipal(r.Context()), clientID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, clientNotFound)
			return
		}
		core.JSONError(w, core.InternalError(err, "Erro ao listar fichas"))
		return
	}

	core.OK(w, ToCaseFileResponseList(files))
}
