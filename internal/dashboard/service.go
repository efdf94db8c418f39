// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Service aggregates over every record. Figures are firm-wide for all roles.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary runs its three queries concurrently and fails if any of them does.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var summary Summary

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountClients(gctx)
		summary.TotalClients = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountCaseFiles(gctx)
		summary.TotalCaseFiles = n
		return err
	})
	g.Go(func() error {
		counts, err := s.repo.CaseFilesPerMonth(gctx)
		summary.CaseFilesPerMonth = counts
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	return &summary, nil
}

func (s *Service) ClientsPerMonth(ctx context.Context) ([]MonthCount, error) {
	return s.repo.ClientsPerMonth(ctx)
}

// LawyerRanking lists client counts per owning account, largest first.
// Accounts that no longer exist are shown as "ID <id>".
func (s *Service) LawyerRanking(ctx context.Context) ([]RankingResponse, error) {
	counts, err := s.repo.ClientsPerOwner(ctx)
	if err != nil {
		return nil, err
	}

	ranking := make([]RankingResponse, 0, len(counts))
	for _, c := range counts {
		name := "ID " + c.OwnerID
		if c.Name != nil {
			name = *c.Name
		}
		ranking = append(ranking, RankingResponse{Nome: name, Total: c.Total})
	}

	return ranking, nil
}
