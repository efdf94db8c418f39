// AngelaMos | 2026
// service.go

package casefile

import (
	"context"
	"fmt"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/audit"
	"github.com/advotec/advotec-api/internal/core"
)

// ClientLocator confirms that a client exists inside a scope. It returns an
// error wrapping core.ErrNotFound when the client is missing or out of scope.
type ClientLocator interface {
	LocateClient(ctx context.Context, scope access.Scope, clientID string) error
}

type Service struct {
	repo    Repository
	clients ClientLocator
	auditor audit.Auditor
}

func NewService(
	repo Repository,
	clients ClientLocator,
	auditor audit.Auditor,
) *Service {
	return &Service{repo: repo, clients: clients, auditor: auditor}
}

func (s *Service) Create(
	ctx context.Context,
	p *access.Principal,
	clientID string,
	req CreateCaseFileRequest,
) (*CaseFile, error) {
	if err := s.clients.LocateClient(ctx, access.ScopeFor(p), clientID); err != nil {
		return nil, err
	}

	file := &CaseFile{
		ID:          core.NewObjectID(),
		Description: req.Descricao,
		ClientID:    clientID,
	}

	if err := s.repo.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("create case file: %w", err)
	}

	s.auditor.Record(ctx, audit.ActionCreate, audit.TableCaseFile, file.ID, p.ID)

	return file, nil
}

func (s *Service) ListForClient(
	ctx context.Context,
	p *access.Principal,
	clientID string,
) ([]CaseFile, error) {
	if err := s.clients.LocateClient(ctx, access.ScopeFor(p), clientID); err != nil {
		return nil, err
	}

	return s.repo.ListByClient(ctx, clientID)
}
