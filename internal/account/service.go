// AngelaMos | 2026
// service.go

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/audit"
	"github.com/advotec/advotec-api/internal/auth"
	"github.com/advotec/advotec-api/internal/core"
	"github.com/advotec/advotec-api/internal/middleware"
)

var (
	ErrEmailExists     = errors.New("email already exists")
	ErrWrongPassword   = errors.New("current password does not match")
	ErrAlreadyInactive = errors.New("account already inactive")
	ErrOwnsRecords     = errors.New("account still owns records")
)

type Service struct {
	repo    Repository
	auditor audit.Auditor
}

func NewService(repo Repository, auditor audit.Auditor) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	account, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(account), nil
}

func (s *Service) Create(
	ctx context.Context,
	name, email, passwordHash string,
	role access.Role,
) (*auth.UserInfo, error) {
	account := &Account{
		ID:           core.NewObjectID(),
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	return toUserInfo(account), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	accountID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, accountID, passwordHash)
}

// ResolvePrincipal loads the live state of the account behind a token.
func (s *Service) ResolvePrincipal(
	ctx context.Context,
	id string,
) (*access.Principal, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return account.Principal(), nil
}

func (s *Service) GetProfile(ctx context.Context, accountID string) (*Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("get profile: %w", core.ErrUnauthorized)
	}

	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !account.Active {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}

	return account, nil
}

// UpdateProfile changes the caller's name and email and, when both password
// fields are present, its password after checking the current one.
func (s *Service) UpdateProfile(
	ctx context.Context,
	accountID string,
	req UpdateProfileRequest,
) (*Account, error) {
	account, err := s.GetProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var newHash *string
	if req.ChangesPassword() {
		valid, _, verifyErr := core.VerifyPasswordWithRehash(
			req.SenhaAtual,
			account.PasswordHash,
		)
		if verifyErr != nil {
			return nil, fmt.Errorf("verify password: %w", verifyErr)
		}
		if !valid {
			return nil, ErrWrongPassword
		}

		hash, hashErr := core.HashPassword(req.NovaSenha)
		if hashErr != nil {
			return nil, fmt.Errorf("hash password: %w", hashErr)
		}
		newHash = &hash
	}

	account, err = s.repo.UpdateProfile(
		ctx,
		accountID,
		req.Nome,
		normalizeEmail(req.Email),
		newHash,
	)
	if err != nil {
		return nil, mapWriteError(err)
	}

	s.auditor.Record(ctx, audit.ActionUpdate, audit.TableAccount, account.ID, accountID)

	return account, nil
}

func (s *Service) CreateAccount(
	ctx context.Context,
	actorID string,
	req CreateAccountRequest,
) (*Account, error) {
	role, err := access.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	passwordHash, err := core.HashPassword(req.Senha)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &Account{
		ID:           core.NewObjectID(),
		Name:         req.Nome,
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, mapWriteError(err)
	}

	if actorID == "" {
		actorID = account.ID
	}
	s.auditor.Record(ctx, audit.ActionCreate, audit.TableAccount, account.ID, actorID)

	return account, nil
}

func (s *Service) ListAccounts(
	ctx context.Context,
	params ListAccountsParams,
) ([]Account, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) GetAccount(ctx context.Context, id string) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateAccount(
	ctx context.Context,
	actorID, id string,
	req UpdateAccountRequest,
) (*Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nome != nil {
		account.Name = *req.Nome
	}
	if req.Email != nil {
		account.Email = normalizeEmail(*req.Email)
	}
	if req.Role != nil {
		role, roleErr := access.ParseRole(*req.Role)
		if roleErr != nil {
			return nil, roleErr
		}
		account.Role = role
	}
	if req.Ativo != nil {
		account.Active = *req.Ativo
	}

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, mapWriteError(err)
	}

	s.auditor.Record(ctx, audit.ActionUpdate, audit.TableAccount, account.ID, actorID)

	return account, nil
}

func (s *Service) DeleteAccount(ctx context.Context, actorID, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err)
	}

	s.auditor.Record(ctx, audit.ActionDelete, audit.TableAccount, id, actorID)

	return nil
}

func (s *Service) DeactivateAccount(ctx context.Context, actorID, id string) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !account.Active {
		return ErrAlreadyInactive
	}

	account.Active = false
	if err := s.repo.Update(ctx, account); err != nil {
		return mapWriteError(err)
	}

	s.auditor.Record(ctx, audit.ActionUpdate, audit.TableAccount, id, actorID)

	return nil
}

// EnsureMaster creates the bootstrap MASTER account unless an account with
// that email already exists.
func (s *Service) EnsureMaster(
	ctx context.Context,
	name, email, password string,
) error {
	_, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err == nil {
		slog.InfoContext(ctx, "bootstrap master already present", "email", email)
		return nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("lookup bootstrap master: %w", err)
	}

	account, err := s.CreateAccount(ctx, "", CreateAccountRequest{
		Nome:  name,
		Email: email,
		Senha: password,
		Role:  access.RoleMaster.String(),
	})
	if err != nil {
		return fmt.Errorf("create bootstrap master: %w", err)
	}

	slog.InfoContext(ctx, "bootstrap master created",
		"account_id", account.ID,
		"email", account.Email,
	)
	return nil
}

func mapWriteError(err error) error {
	switch {
	case errors.Is(err, core.ErrDuplicateKey):
		return fmt.Errorf("%w: %w", ErrEmailExists, err)
	case errors.Is(err, core.ErrForeignKey):
		return fmt.Errorf("%w: %w", ErrOwnsRecords, err)
	default:
		return err
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(a *Account) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		Active:       a.Active,
	}
}

var (
	_ auth.UserProvider          = (*Service)(nil)
	_ middleware.AccountResolver = (*Service)(nil)
)
