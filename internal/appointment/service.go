// AngelaMos | 2026
// service.go

package appointment

import (
	"context"
	"fmt"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/audit"
	"github.com/advotec/advotec-api/internal/core"
)

type Service struct {
	repo    Repository
	auditor audit.Auditor
}

func NewService(repo Repository, auditor audit.Auditor) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) List(ctx context.Context, p *access.Principal) ([]Appointment, error) {
	if p == nil {
		return nil, fmt.Errorf("list appointments: %w", core.ErrUnauthorized)
	}
	return s.repo.ListByOwner(ctx, p.ID)
}

func (s *Service) Create(
	ctx context.Context,
	p *access.Principal,
	req CreateAppointmentRequest,
) (*Appointment, error) {
	if p == nil {
		return nil, fmt.Errorf("create appointment: %w", core.ErrUnauthorized)
	}

	when, err := core.ParseISODate(req.DataHora)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", core.ErrInvalidInput)
	}

	a := &Appointment{
		ID:          core.NewObjectID(),
		Title:       req.Titulo,
		Description: req.description(),
		DateTime:    when.UTC(),
		Kind:        Kind(req.Tipo),
		OwnerID:     p.ID,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit.ActionCreate, audit.TableAppointment, a.ID, p.ID)

	return a, nil
}

func (s *Service) Delete(ctx context.Context, p *access.Principal, id string) error {
	if p == nil {
		return fmt.Errorf("delete appointment: %w", core.ErrUnauthorized)
	}

	if err := s.repo.Delete(ctx, p.ID, id); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.ActionDelete, audit.TableAppointment, id, p.ID)

	return nil
}
