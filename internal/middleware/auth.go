// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/core"
	"github.com/advotec/advotec-api/internal/metrics"
)

const (
	PrincipalKey contextKey = "principal"
	ClaimsKey    contextKey = "jwt_claims"
)

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

// AccountResolver loads the live account named by a verified token.
// It returns an error wrapping core.ErrNotFound when the account is gone.
type AccountResolver interface {
	ResolvePrincipal(ctx context.Context, id string) (*access.Principal, error)
}

type AccessTokenClaims struct {
	AccountID string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

// Authenticator verifies the bearer token, resolves the account it names and
// rejects the request unless that account exists and is active.
func Authenticator(
	verifier TokenVerifier,
	accounts AccountResolver,
	m *metrics.Metrics,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				m.AuthFailed("missing_token")
				core.JSONError(w, core.TokenMissingError())
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				m.AuthFailed("invalid_token")
				handleAuthError(w, err)
				return
			}

			principal, err := accounts.ResolvePrincipal(r.Context(), claims.AccountID)
			if err != nil && !errors.Is(err, core.ErrNotFound) {
				core.InternalServerError(w, err)
				return
			}
			if principal == nil || !principal.Active {
				m.AuthFailed("inactive_account")
				core.Unauthorized(w, "Usuário não encontrado ou inativo")
				return
			}

			noteAccount(r.Context(), principal.ID)
			ctx := WithPrincipal(r.Context(), principal)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through only when the authenticated
// principal holds one of roles.
func RequireRole(roles ...access.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := access.Authorize(GetPrincipal(r.Context()), roles...)

			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, core.ErrUnauthorized):
				core.Unauthorized(w, "")
			default:
				core.Forbidden(w, "")
			}
		})
	}
}

func RequireMaster(next http.Handler) http.Handler {
	return RequireRole(access.RoleMaster)(next)
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenRevoked):
		core.JSONError(w, core.TokenRevokedError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func WithPrincipal(ctx context.Context, p *access.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

func GetPrincipal(ctx context.Context) *access.Principal {
	if p, ok := ctx.Value(PrincipalKey).(*access.Principal); ok {
		return p
	}
	return nil
}

func GetAccountID(ctx context.Context) string {
	if p := GetPrincipal(ctx); p != nil {
		return p.ID
	}
	return ""
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*AccessTokenClaims); ok {
		return claims
	}
	return nil
}
