// AngelaMos | 2026
// service.go

package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/audit"
	"github.com/advotec/advotec-api/internal/casefile"
	"github.com/advotec/advotec-api/internal/core"
)

var ErrCPFInUse = errors.New("cpf already used by another client")

// CaseFileLister loads the case files attached to clients.
type CaseFileLister interface {
	ListByClients(ctx context.Context, clientIDs []string) (map[string][]casefile.CaseFile, error)
}

type Service struct {
	repo      Repository
	caseFiles CaseFileLister
	auditor   audit.Auditor
	now       func() time.Time
}

func NewService(
	repo Repository,
	caseFiles CaseFileLister,
	auditor audit.Auditor,
) *Service {
	return &Service{
		repo:      repo,
		caseFiles: caseFiles,
		auditor:   auditor,
		now:       time.Now,
	}
}

// Create registers a client owned by p. The tax id is not checked for
// uniqueness here; only updates enforce it.
func (s *Service) Create(
	ctx context.Context,
	p *access.Principal,
	req ClientRequest,
) (*Client, error) {
	if p == nil {
		return nil, fmt.Errorf("create client: %w", core.ErrUnauthorized)
	}

	birthday, err := req.Birthday()
	if err != nil {
		return nil, err
	}

	client := &Client{
		ID:       core.NewObjectID(),
		Name:     req.Nome,
		CPF:      req.CPF,
		Phone:    req.Telefone,
		Address:  req.Endereco,
		Birthday: birthday,
		OwnerID:  p.ID,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit.ActionCreate, audit.TableClient, client.ID, p.ID)

	return client, nil
}

func (s *Service) List(
	ctx context.Context,
	p *access.Principal,
) ([]ClientWithCaseFiles, error) {
	clients, err := s.repo.List(ctx, access.ScopeFor(p))
	if err != nil {
		return nil, err
	}

	return s.attachCaseFiles(ctx, clients)
}

func (s *Service) Get(
	ctx context.Context,
	p *access.Principal,
	id string,
) (*ClientWithCaseFiles, error) {
	client, err := s.repo.Get(ctx, access.ScopeFor(p), id)
	if err != nil {
		return nil, err
	}

	withFiles, err := s.attachCaseFiles(ctx, []Client{*client})
	if err != nil {
		return nil, err
	}

	return &withFiles[0], nil
}

// Update replaces the client's fields. The new tax id must not belong to
// any other client, whoever owns it.
func (s *Service) Update(
	ctx context.Context,
	p *access.Principal,
	id string,
	req ClientRequest,
) (*Client, error) {
	client, err := s.repo.Get(ctx, access.ScopeFor(p), id)
	if err != nil {
		return nil, err
	}

	inUse, err := s.repo.CPFInUse(ctx, req.CPF, id)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrCPFInUse
	}

	birthday, err := req.Birthday()
	if err != nil {
		return nil, err
	}

	client.Name = req.Nome
	client.CPF = req.CPF
	client.Phone = req.Telefone
	if req.Endereco != nil {
		client.Address = req.Endereco
	}
	if birthday != nil {
		client.Birthday = birthday
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit.ActionUpdate, audit.TableClient, client.ID, p.ID)

	return client, nil
}

func (s *Service) Delete(ctx context.Context, p *access.Principal, id string) error {
	if _, err := s.repo.Get(ctx, access.ScopeFor(p), id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.ActionDelete, audit.TableClient, id, p.ID)

	return nil
}

// BirthdaysToday lists the visible clients whose birthday is today in UTC,
// the calendar birthdays are stored in.
func (s *Service) BirthdaysToday(
	ctx context.Context,
	p *access.Principal,
) ([]Client, error) {
	today := s.now().UTC()
	return s.repo.BirthdaysOn(ctx, access.ScopeFor(p), int(today.Month()), today.Day())
}

// LocateClient implements casefile.ClientLocator.
func (s *Service) LocateClient(
	ctx context.Context,
	scope access.Scope,
	clientID string,
) error {
	_, err := s.repo.Get(ctx, scope, clientID)
	return err
}

func (s *Service) attachCaseFiles(
	ctx context.Context,
	clients []Client,
) ([]ClientWithCaseFiles, error) {
	ids := make([]string, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID)
	}

	files, err := s.caseFiles.ListByClients(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ClientWithCaseFiles, 0, len(clients))
	for _, c := range clients {
		out = append(out, ClientWithCaseFiles{Client: c, CaseFiles: files[c.ID]})
	}

	return out, nil
}

var _ casefile.ClientLocator = (*Service)(nil)
