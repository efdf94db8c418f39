// AngelaMos | 2026
// dto.go

package progress

import (
	"time"
)

type CreateEntryRequest struct {
	Descricao string `json:"descricao" validate:"required,min=5,max=10000"`
	FichaID   string `json:"fichaId"   validate:"required,mongodb"`
}

type EntryResponse struct {
	ID        string    `json:"id"`
	Descricao string    `json:"descricao"`
	Data      time.Time `json:"data"`
	FichaID   string    `json:"fichaId"`
}

func ToEntryResponse(e *Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Descricao: e.Description,
		Data:      e.Date,
		FichaID:   e.CaseFileID,
	}
}

func ToEntryResponseList(entries []Entry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToEntryResponse(&entries[i]))
	}
	return responses
}
