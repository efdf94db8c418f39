// AngelaMos | 2026
// dto.go

package appointment

import (
	"strings"
	"time"
)

type CreateAppointmentRequest struct {
	Titulo    string  `json:"titulo"    validate:"required,min=3,max=255"`
	Descricao *string `json:"descricao" validate:"omitempty,max=10000"`
	DataHora  string  `json:"dataHora"  validate:"required,isodate"`
	Tipo      string  `json:"tipo"      validate:"required,oneof=AUDIENCIA REUNIAO PRAZO"`
}

// description drops a blank descricao.
func (r CreateAppointmentRequest) description() *string {
	if r.Descricao == nil || strings.TrimSpace(*r.Descricao) == "" {
		return nil
	}
	return r.Descricao
}

type AppointmentResponse struct {
	ID        string    `json:"id"`
	Titulo    string    `json:"titulo"`
	Descricao *string   `json:"descricao"`
	DataHora  time.Time `json:"dataHora"`
	Tipo      Kind      `json:"tipo"`
	UsuarioID string    `json:"usuarioId"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToAppointmentResponse(a *Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		Titulo:    a.Title,
		Descricao: a.Description,
		DataHora:  a.DateTime,
		Tipo:      a.Kind,
		UsuarioID: a.OwnerID,
		CreatedAt: a.CreatedAt,
	}
}

func ToAppointmentResponseList(appointments []Appointment) []AppointmentResponse {
	responses := make([]AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, ToAppointmentResponse(&appointments[i]))
	}
	return responses
}
