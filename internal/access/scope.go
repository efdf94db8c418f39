// AngelaMos | 2026
// scope.go

package access

import (
	"fmt"
)

// Scope narrows a query to the records a principal may see. The zero value
// matches nothing.
type Scope struct {
	all     bool
	ownerID string
}

// ScopeFor returns match-all for privileged principals and owner-only for
// everyone else.
func ScopeFor(p *Principal) Scope {
	if p == nil {
		return Scope{}
	}
	if p.Role.IsPrivileged() {
		return Scope{all: true}
	}
	return Scope{ownerID: p.ID}
}

// Allows evaluates the scope against a record's owning account.
func (s Scope) Allows(ownerID string) bool {
	if s.all {
		return true
	}
	return s.ownerID != "" && s.ownerID == ownerID
}

// Clause renders the scope as a SQL predicate on column using the
// placeholder $argIdx. It returns the predicate and the arguments it binds.
func (s Scope) Clause(column string, argIdx int) (string, []any) {
	switch {
	case s.all:
		return "TRUE", nil
	case s.ownerID == "":
		return "FALSE", nil
	default:
		return fmt.Sprintf("%s = $%d", column, argIdx), []any{s.ownerID}
	}
}
