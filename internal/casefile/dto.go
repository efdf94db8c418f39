// AngelaMos | 2026
// dto.go

package casefile

import (
	"time"
)

type CreateCaseFileRequest struct {
	Descricao string `json:"descricao" validate:"required,min=5,max=10000"`
}

type CaseFileResponse struct {
	ID        string    `json:"id"`
	Descricao string    `json:"descricao"`
	Data      time.Time `json:"data"`
	ClienteID string    `json:"clienteId"`
}

func ToCaseFileResponse(c *CaseFile) CaseFileResponse {
	return CaseFileResponse{
		ID:        c.ID,
		Descricao: c.Description,
		Data:      c.Date,
		ClienteID: c.ClientID,
	}
}

func ToCaseFileResponseList(files []CaseFile) []CaseFileResponse {
	responses := make([]CaseFileResponse, 0, len(files))
	for i := range files {
		responses = append(responses, ToCaseFileResponse(&files[i]))
	}
	return responses
}
