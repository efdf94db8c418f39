// AngelaMos | 2026
// service.go

package progress

import (
	"context"
	"fmt"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/audit"
	"github.com/advotec/advotec-api/internal/core"
)

// Service does not check who owns the parent case file. Any authenticated
// account may add, list and remove entries.
type Service struct {
	repo    Repository
	auditor audit.Auditor
}

func NewService(repo Repository, auditor audit.Auditor) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Create(
	ctx context.Context,
	p *access.Principal,
	req CreateEntryRequest,
) (*Entry, error) {
	if p == nil {
		return nil, fmt.Errorf("create progress entry: %w", core.ErrUnauthorized)
	}

	entry := &Entry{
		ID:          core.NewObjectID(),
		Description: req.Descricao,
		CaseFileID:  req.FichaID,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit.ActionCreate, audit.TableProgress, entry.ID, p.ID)

	return entry, nil
}

func (s *Service) ListForCaseFile(ctx context.Context, caseFileID string) ([]Entry, error) {
	return s.repo.ListByCaseFile(ctx, caseFileID)
}

func (s *Service) Delete(ctx context.Context, p *access.Principal, id string) error {
	if p == nil {
		return fmt.Errorf("delete progress entry: %w", core.ErrUnauthorized)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.ActionDelete, audit.TableProgress, id, p.ID)

	return nil
}
