// AngelaMos | 2026
// handler.go

package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/advotec/advotec-api/internal/core"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, masterOnly func(http.Handler) http.Handler,
) {
	r.Route("/logs", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(masterOnly)

		r.Get("/", h.List)
	})
}

// List returns every audit entry, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.List(r.Context())
	if err != nil {
		core.JSONError(w, core.InternalError(err, "Erro ao buscar logs"))
		return
	}

	core.OK(w, ToEntryResponseList(entries))
}
