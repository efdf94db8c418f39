// AngelaMos | 2026
// repository_memory_test.go

package account

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/advotec/advotec-api/internal/core"
)

type memoryRepository struct {
	mu       sync.Mutex
	accounts map[string]Account
	owners   map[string]bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		accounts: make(map[string]Account),
		owners:   make(map[string]bool),
	}
}

func (m *memoryRepository) emailTaken(email, exceptID string) bool {
	for id, a := range m.accounts {
		if id != exceptID && a.Email == email {
			return true
		}
	}
	return false
}

func (m *memoryRepository) Create(_ context.Context, a *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.emailTaken(a.Email, "") {
		return fmt.Errorf("create account: %w", core.ErrDuplicateKey)
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.accounts[a.ID] = *a
	return nil
}

func (m *memoryRepository) GetByID(_ context.Context, id string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	return &a, nil
}

func (m *memoryRepository) GetByEmail(_ context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("get account by email: %w", core.ErrNotFound)
}

func (m *memoryRepository) Update(_ context.Context, a *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.accounts[a.ID]
	if !ok {
		return fmt.Errorf("update account: %w", core.ErrNotFound)
	}
	if m.emailTaken(a.Email, a.ID) {
		return fmt.Errorf("update account: %w", core.ErrDuplicateKey)
	}
	a.PasswordHash = stored.PasswordHash
	a.UpdatedAt = time.Now()
	m.accounts[a.ID] = *a
	return nil
}

func (m *memoryRepository) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	a.PasswordHash = hash
	m.accounts[id] = a
	return nil
}

func (m *memoryRepository) UpdateProfile(
	_ context.Context,
	id, name, email string,
	hash *string,
) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok || !a.Active {
		return nil, fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if m.emailTaken(email, id) {
		return nil, fmt.Errorf("update profile: %w", core.ErrDuplicateKey)
	}
	a.Name = name
	a.Email = email
	if hash != nil {
		a.PasswordHash = *hash
	}
	a.UpdatedAt = time.Now()
	m.accounts[id] = a
	return &a, nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[id]; !ok {
		return fmt.Errorf("delete account: %w", core.ErrNotFound)
	}
	if m.owners[id] {
		return fmt.Errorf("delete account: %w", core.ErrForeignKey)
	}
	delete(m.accounts, id)
	return nil
}

func (m *memoryRepository) List(_ context.Context, params ListAccountsParams) ([]Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	params.Normalize()

	var out []Account
	for _, a := range m.accounts {
		if params.Role != "" && a.Role.String() != params.Role {
			continue
		}
		if params.Search != "" &&
			!strings.Contains(strings.ToLower(a.Name+" "+a.Email), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
