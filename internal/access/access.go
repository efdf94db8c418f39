// AngelaMos | 2026
// access.go

package access

import (
	"fmt"

	"github.com/advotec/advotec-api/internal/core"
)

// Role is the authorization level of an account. Only the values declared
// below are valid.
type Role string

const (
	// RoleMaster sees and manages every record in the practice.
	RoleMaster Role = "MASTER"
	// RoleLawyer sees only records it owns.
	RoleLawyer Role = "ADVOGADO"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMaster, RoleLawyer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("parse role %q: %w", s, core.ErrInvalidInput)
	}
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsPrivileged() bool {
	return r == RoleMaster
}

// Principal is the live account behind an authenticated request.
type Principal struct {
	ID     string
	Name   string
	Email  string
	Role   Role
	Active bool
}

// Authorize allows p when its role is one of roles.
func Authorize(p *Principal, roles ...Role) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("authorize: %w", core.ErrUnauthorized)
	}

	for _, role := range roles {
		if p.Role == role {
			return nil
		}
	}

	return fmt.Errorf("authorize: role %s: %w", p.Role, core.ErrForbidden)
}
