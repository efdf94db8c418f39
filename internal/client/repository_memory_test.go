// AngelaMos | 2026
// repository_memory_test.go

package client

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/casefile"
	"github.com/advotec/advotec-api/internal/core"
)

type memoryRepository struct {
	mu      sync.Mutex
	clients map[string]Client
	calls   int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{clients: make(map[string]Client)}
}

func (m *memoryRepository) touch() {
	m.calls++
}

func (m *memoryRepository) Create(_ context.Context, c *Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.clients[c.ID] = *c
	return nil
}

func (m *memoryRepository) Get(_ context.Context, scope access.Scope, id string) (*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	c, ok := m.clients[id]
	if !ok || !scope.Allows(c.OwnerID) {
		return nil, fmt.Errorf("get client: %w", core.ErrNotFound)
	}
	return &c, nil
}

func (m *memoryRepository) List(_ context.Context, scope access.Scope) ([]Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	out := []Client{}
	for _, c := range m.clients {
		if scope.Allows(c.OwnerID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryRepository) Update(_ context.Context, c *Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	if _, ok := m.clients[c.ID]; !ok {
		return fmt.Errorf("update client: %w", core.ErrNotFound)
	}
	c.UpdatedAt = time.Now()
	m.clients[c.ID] = *c
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	if _, ok := m.clients[id]; !ok {
		return fmt.Errorf("delete client: %w", core.ErrNotFound)
	}
	delete(m.clients, id)
	return nil
}

func (m *memoryRepository) CPFInUse(_ context.Context, cpf, exceptID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	for id, c := range m.clients {
		if id != exceptID && c.CPF == cpf {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepository) BirthdaysOn(
	_ context.Context,
	scope access.Scope,
	month, day int,
) ([]Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	out := []Client{}
	for _, c := range m.clients {
		if !scope.Allows(c.OwnerID) || c.Birthday == nil {
			continue
		}
		b := c.Birthday.UTC()
		if int(b.Month()) == month && b.Day() == day {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryRepository) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type memoryCaseFiles struct {
	byClient map[string][]casefile.CaseFile
}

func (m *memoryCaseFiles) ListByClients(
	_ context.Context,
	ids []string,
) (map[string][]casefile.CaseFile, error) {
	out := make(map[string][]casefile.CaseFile, len(ids))
	for _, id := range ids {
		if files, ok := m.byClient[id]; ok {
			out[id] = files
		}
	}
	return out, nil
}
