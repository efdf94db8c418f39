// AngelaMos | 2026
// handler.go

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/advotec/advotec-api/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.Summary)
		r.Get("/clientes-por-mes", h.ClientsPerMonth)
		r.Get("/ranking-advogados", h.LawyerRanking)
	})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		core.JSONError(w, core.InternalError(err, "Erro ao carregar dashboard"))
		return
	}

	core.OK(w, ToSummaryResponse(summary))
}

func (h *Handler) ClientsPerMonth(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.ClientsPerMonth(r.Context())
	if err != nil {
		core.JSONError(w, core.InternalError(err, "Erro ao buscar clientes por mês"))
		return
	}

	core.OK(w, ToMonthCountResponseList(counts))
}

func (h *Handler) LawyerRanking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.service.LawyerRanking(r.Context())
	if err != nil {
		core.JSONError(w, core.InternalError(err, "Erro ao buscar ranking de advogados"))
		return
	}

	core.OK(w, ranking)
}
