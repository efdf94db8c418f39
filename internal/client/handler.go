// AngelaMos | 2026
// handler.go

package client

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
	r.Route("/clientes", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/aniversariantes", h.Birthdays)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	client, err := h.service.Create(r.Context(), middleware.GetPrincipal(r.Context()), req)
	if err != nil {
		h.writeError(w, err, "Erro ao criar cliente")
		return
	}

	core.Created(w, ToClientResponse(client))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.List(r.Context(), middleware.GetPrincipal(r.Context()))
	if err != nil {
		h.writeError(w, err, "Erro ao listar clientes")
		return
	}

	core.OK(w, ToClientDetailResponseList(clients))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	client, err := h.service.Get(r.Context(), middleware.GetPrincipal(r.Context()), id)
	if err != nil {
		h.writeError(w, err, "Erro ao buscar cliente")
		return
	}

	core.OK(w, ToClientDetailResponse(client))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	var req ClientRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	client, err := h.service.Update(r.Context(), middleware.GetPrincipal(r.Context()), id, req)
	if err != nil {
		h.writeError(w, err, "Erro ao atualizar cliente")
		return
	}

	core.OK(w, ToClientResponse(client))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), middleware.GetPrincipal(r.Context()), id); err != nil {
		h.writeError(w, err, "Erro ao deletar cliente")
		return
	}

	core.Message(w, "Cliente deletado com sucesso")
}

func (h *Handler) Birthdays(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.BirthdaysToday(r.Context(), middleware.GetPrincipal(r.Context()))
	if err != nil {
		h.writeError(w, err, "Erro ao buscar aniversariantes")
		return
	}

	core.OK(w, ToClientResponseList(clients))
}

func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "Cliente não encontrado")
	case errors.Is(err, ErrCPFInUse):
		core.BadRequest(w, "CPF já está em uso por outro cliente")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "Dados inválidos")
	default:
		core.JSONError(w, core.InternalError(err, fallback))
	}
}
