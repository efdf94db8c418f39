// AngelaMos | 2026
// dto.go

package audit

import (
	"time"
)

type ActorResponse struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

type EntryResponse struct {
	ID         string         `json:"id"`
	Acao       Action         `json:"acao"`
	Tabela     string         `json:"tabela"`
	RegistroID string         `json:"registroId"`
	UsuarioID  string         `json:"usuarioId"`
	Data       time.Time      `json:"data"`
	Usuario    *ActorResponse `json:"usuario"`
}

func ToEntryResponse(e *EntryWithActor) EntryResponse {
	resp := EntryResponse{
		ID:         e.ID,
		Acao:       e.Action,
		Tabela:     e.Table,
		RegistroID: e.RecordID,
		UsuarioID:  e.AccountID,
		Data:       e.CreatedAt,
	}

	if e.ActorName != nil {
		actor := &ActorResponse{Nome: *e.ActorName}
		if e.ActorEmail != nil {
			actor.Email = *e.ActorEmail
		}
		resp.Usuario = actor
	}

	return resp
}

func ToEntryResponseList(entries []EntryWithActor) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToEntryResponse(&entries[i]))
	}
	return responses
}
