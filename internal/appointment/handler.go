// AngelaMos | 2026
// handler.go

package appointment

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
	r.Route("/compromissos", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.List(r.Context(), middleware.GetPrincipal(r.Context()))
	if err != nil {
		h.writeError(w, err, "Erro ao listar compromissos")
		return
	}

	core.OK(w, ToAppointmentResponseList(appointments))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	a, err := h.service.Create(r.Context(), middleware.GetPrincipal(r.Context()), req)
	if err != nil {
		h.writeError(w, err, "Erro ao criar compromisso")
		return
	}

	core.Created(w, ToAppointmentResponse(a))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), middleware.GetPrincipal(r.Context()), id); err != nil {
		h.writeError(w, err, "Erro ao deletar compromisso")
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "Compromisso não encontrado")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "Dados inválidos")
	default:
		core.JSONError(w, core.InternalError(err, fallback))
	}
}
