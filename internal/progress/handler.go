// AngelaMos | 2026
// handler.go

package progress

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/advotec/advotec-api/internal/core"
	"github.com/advotec/advotec-api/internal/middleware"
)

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
	r.Route("/andamentos", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/{id}", h.List)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	entry, err := h.service.Create(r.Context(), middleware.GetPrincipal(r.Context()), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUnauthorized):
			core.Unauthorized(w, "")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Ficha não encontrada")
		default:
			core.JSONError(w, core.InternalError(err, "Erro ao criar andamento"))
		}
		return
	}

	core.Created(w, ToEntryResponse(entry))
}

// List returns the entries of the case file named in the path, newest
// first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caseFileID, ok := core.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	entries, err := h.service.ListForCaseFile(r.Context(), caseFileID)
	if err != nil {
		core.JSONError(w, core.InternalError(err, "Erro ao listar andamentos"))
		return
	}

	core.OK(w, ToEntryResponseList(entries))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), middleware.GetPrincipal(r.Context()), id); err != nil {
		switch {
		case errors.Is(err, core.ErrUnauthorized):
			core.Unauthorized(w, "")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Andamento não encontrado")
		default:
			core.JSONError(w, core.InternalError(err, "Erro ao deletar andamento"))
		}
		return
	}

	core.NoContent(w)
}
