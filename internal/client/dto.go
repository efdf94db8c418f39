// AngelaMos | 2026
// dto.go

package client

import (
	"strings"
	"time"

	"github.com/advotec/advotec-api/internal/casefile"
	"github.com/advotec/advotec-api/internal/core"
)

// ClientRequest is used for both create and update. On update, absent or
// blank optional fields keep their stored value.
type ClientRequest struct {
	Nome            string  `json:"nome"            validate:"required,min=3,max=255"`
	CPF             string  `json:"cpf"             validate:"required,cpf"`
	Telefone        string  `json:"telefone"        validate:"required,min=8,max=32"`
	Endereco        *string `json:"endereco"        validate:"omitempty,max=500"`
	DataAniversario *string `json:"dataAniversario" validate:"omitempty,isodate"`
}

// Birthday returns the parsed birthday, or nil when it was not supplied.
func (r ClientRequest) Birthday() (*time.Time, error) {
	if r.DataAniversario == nil || strings.TrimSpace(*r.DataAniversario) == "" {
		return nil, nil
	}

	t, err := core.ParseISODate(*r.DataAniversario)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

type ClientResponse struct {
	ID              string     `json:"id"`
	Nome            string     `json:"nome"`
	CPF             string     `json:"cpf"`
	Telefone        string     `json:"telefone"`
	Endereco        *string    `json:"endereco"`
	DataAniversario *time.Time `json:"dataAniversario"`
	UsuarioID       string     `json:"usuarioId"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type ClientDetailResponse struct {
	ClientResponse
	Fichas []casefile.CaseFileResponse `json:"fichas"`
}

func ToClientResponse(c *Client) ClientResponse {
	return ClientResponse{
		ID:              c.ID,
		Nome:            c.Name,
		CPF:             c.CPF,
		Telefone:        c.Phone,
		Endereco:        c.Address,
		DataAniversario: c.Birthday,
		UsuarioID:       c.OwnerID,
		CreatedAt:       c.CreatedAt,
	}
}

func ToClientResponseList(clients []Client) []ClientResponse {
	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, ToClientResponse(&clients[i]))
	}
	return responses
}

func ToClientDetailResponse(c *ClientWithCaseFiles) ClientDetailResponse {
	return ClientDetailResponse{
		ClientResponse: ToClientResponse(&c.Client),
		Fichas:         casefile.ToCaseFileResponseList(c.CaseFiles),
	}
}

func ToClientDetailResponseList(clients []ClientWithCaseFiles) []ClientDetailResponse {
	responses := make([]ClientDetailResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, ToClientDetailResponse(&clients[i]))
	}
	return responses
}
