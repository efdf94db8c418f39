// AngelaMos | 2026
// handler.go

package account

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

// RegisterRoutes mounts the self-service profile endpoints for every
// authenticated account and the management endpoints for masterOnly.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, masterOnly func(http.Handler) http.Handler,
) {
	r.Route("/usuarios", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/perfil", h.GetProfile)
		r.Put("/perfil", h.UpdateProfile)

		r.Group(func(r chi.Router) {
			r.Use(masterOnly)

			r.Post("/", h.CreateAccount)
			r.Get("/", h.ListAccounts)
			r.Get("/{id}", h.GetAccount)
			r.Put("/{id}", h.UpdateAccount)
			r.Delete("/{id}", h.DeleteAccount)
			r.Patch("/{id}/inativar", h.DeactivateAccount)
		})
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.GetProfile(r.Context(), middleware.GetAccountID(r.Context()))
	if err != nil {
		h.writeError(w, err, "Erro ao obter usuário logado.")
		return
	}

	core.OK(w, ToAccountResponse(account))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	_, err := h.service.UpdateProfile(r.Context(), middleware.GetAccountID(r.Context()), req)
	if err != nil {
		h.writeError(w, err, "Erro ao atualizar perfil.")
		return
	}

	core.Message(w, "Usuário atualizado com sucesso.")
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	account, err := h.service.CreateAccount(r.Context(), middleware.GetAccountID(r.Context()), req)
	if err != nil {
		h.writeError(w, err, "Erro ao criar usuário.")
		return
	}

	core.Created(w, ToAccountResponse(account))
}

// ListAccounts accepts optional "busca" and "role" query filters.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	params := ListAccountsParams{
		Search: r.URL.Query().Get("busca"),
		Role:   r.URL.Query().Get("role"),
	}

	accounts, err := h.service.ListAccounts(r.Context(), params)
	if err != nil {
		h.writeError(w, err, "Erro ao listar usuários.")
		return
	}

	core.OK(w, ToAccountResponseList(accounts))
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	account, err := h.service.GetAccount(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Erro ao obter usuário.")
		return
	}

	core.OK(w, ToAccountResponse(account))
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	account, err := h.service.UpdateAccount(r.Context(), middleware.GetAccountID(r.Context()), id, req)
	if err != nil {
		h.writeError(w, err, "Erro ao atualizar usuário.")
		return
	}

	core.OK(w, ToAccountResponse(account))
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteAccount(r.Context(), middleware.GetAccountID(r.Context()), id); err != nil {
		h.writeError(w, err, "Erro ao deletar usuário.")
		return
	}

	core.Message(w, "Usuário deletado com sucesso.")
}

func (h *Handler) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeactivateAccount(r.Context(), middleware.GetAccountID(r.Context()), id); err != nil {
		h.writeError(w, err, "Erro ao inativar usuário.")
		return
	}

	core.Message(w, "Usuário inativado com sucesso.")
}

func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, ErrWrongPassword):
		core.Unauthorized(w, "Senha atual incorreta.")
	case errors.Is(err, ErrEmailExists):
		core.BadRequest(w, "Usuário já existe.")
	case errors.Is(err, ErrAlreadyInactive):
		core.BadRequest(w, "Usuário já está inativo.")
	case errors.Is(err, ErrOwnsRecords):
		core.BadRequest(w, "Usuário possui registros vinculados")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "Dados inválidos")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "Usuário não encontrado.")
	default:
		core.JSONError(w, core.InternalError(err, fallback))
	}
}
