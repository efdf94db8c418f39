// AngelaMos | 2026
// dto.go

package dashboard

type MonthCountResponse struct {
	Mes   int `json:"mes"`
	Total int `json:"total"`
}

type SummaryResponse struct {
	TotalClientes int                  `json:"totalClientes"`
	TotalFichas   int                  `json:"totalFichas"`
	FichasPorMes  []MonthCountResponse `json:"fichasPorMes"`
}

type RankingResponse struct {
	Nome  string `json:"nome"`
	Total int    `json:"total"`
}

func ToMonthCountResponseList(counts []MonthCount) []MonthCountResponse {
	responses := make([]MonthCountResponse, 0, len(counts))
	for _, c := range counts {
		responses = append(responses, MonthCountResponse{Mes: c.Month, Total: c.Total})
	}
	return responses
}

func ToSummaryResponse(s *Summary) SummaryResponse {
	return SummaryResponse{
		TotalClientes: s.TotalClients,
		TotalFichas:   s.TotalCaseFiles,
		FichasPorMes:  ToMonthCountResponseList(s.CaseFilesPerMonth),
	}
}
