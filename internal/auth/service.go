// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/audit"
	"github.com/advotec/advotec-api/internal/core"
	"github.com/advotec/advotec-api/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrRegistrationClosed = errors.New("registration disabled")
)

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         access.Role
	Active       bool
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	Create(
		ctx context.Context,
		name, email, passwordHash string,
		role access.Role,
	) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type Service struct {
	jwt               *JWTManager
	userProvider      UserProvider
	blacklist         Blacklist
	auditor           audit.Auditor
	allowRegistration bool
}

type ServiceConfig struct {
	JWT               *JWTManager
	Users             UserProvider
	Blacklist         Blacklist
	Auditor           audit.Auditor
	AllowRegistration bool
}

func NewService(cfg ServiceConfig) *Service {
	return &Service{
		jwt:               cfg.JWT,
		userProvider:      cfg.Users,
		blacklist:         cfg.Blacklist,
		auditor:           cfg.Auditor,
		allowRegistration: cfg.AllowRegistration,
	}
}

// Login returns ErrInvalidCredentials for an unknown email, an inactive
// account and a wrong password alike. A password hash is always checked so
// the three cases cost the same.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*TokenResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Senha, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Senha,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid || !user.Active {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"account_id", user.ID,
				"error", err,
			)
		}
	}

	token, err := s.jwt.CreateAccessToken(user.ID, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &TokenResponse{Token: token}, nil
}

// Register creates a STANDARD account. The new account is recorded as the
// actor of its own creation.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AccountResponse, error) {
	if !s.allowRegistration {
		return nil, ErrRegistrationClosed
	}

	passwordHash, err := core.HashPassword(req.Senha)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(
		ctx,
		req.Nome,
		req.Email,
		passwordHash,
		access.RoleLawyer,
	)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.auditor.Record(ctx, audit.ActionCreate, audit.TableAccount, user.ID, user.ID)

	return &AccountResponse{
		ID:    user.ID,
		Nome:  user.Name,
		Email: user.Email,
		Role:  user.Role.String(),
		Ativo: user.Active,
	}, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *Service) Logout(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) error {
	if claims == nil {
		return fmt.Errorf("logout: %w", core.ErrUnauthorized)
	}
	return s.blacklist.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

// VerifyAccessToken checks the token signature and claims, then the
// revocation list.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

var _ middleware.TokenVerifier = (*Service)(nil)
