// AngelaMos | 2026
// service_test.go

package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/audit"
	"github.com/advotec/advotec-api/internal/audit/audittest"
	"github.com/advotec/advotec-api/internal/core"
	"github.com/advotec/advotec-api/internal/middleware"
)

type memoryRepository struct {
	mu           sync.Mutex
	appointments map[string]Appointment
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{appointments: make(map[string]Appointment)}
}

func (m *memoryRepository) Create(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.appointments[a.ID] = *a
	return nil
}

func (m *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Appointment{}
	for _, a := range m.appointments {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out, nil
}

func (m *memoryRepository) Delete(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.appointments[id]
	if !ok || a.OwnerID != ownerID {
		return fmt.Errorf("delete appointment: %w", core.ErrNotFound)
	}
	delete(m.appointments, id)
	return nil
}

var (
	master  = &access.Principal{ID: "aaaaaaaaaaaaaaaaaaaaaaaa", Role: access.RoleMaster, Active: true}
	lawyerA = &access.Principal{ID: "bbbbbbbbbbbbbbbbbbbbbbbb", Role: access.RoleLawyer, Active: true}
)

func request(titulo, dataHora, tipo string) CreateAppointmentRequest {
	return CreateAppointmentRequest{Titulo: titulo, DataHora: dataHora, Tipo: tipo}
}

func TestListIsOwnOnlyAndAscending(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepository(), &audittest.Auditor{})

	if _, err := svc.Create(ctx, lawyerA, request("Audiência trabalhista", "2026-05-10T14:00:00Z", "AUDIENCIA")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, lawyerA, request("Prazo contestação", "2026-05-02", "PRAZO")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, master, request("Reunião sócios", "2026-05-01T09:00", "REUNIAO")); err != nil {
		t.Fatalf("create: %v", err)
	}

	own, err := svc.List(ctx, lawyerA)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("lawyer sees %d appointments, want 2", len(own))
	}
	if own[0].Title != "Prazo contestação" {
		t.Errorf("first = %q, want earliest appointment first", own[0].Title)
	}

	// MASTER gets no wider view of the agenda.
	mine, _ := svc.List(ctx, master)
	if len(mine) != 1 || mine[0].OwnerID != master.ID {
		t.Errorf("master list = %+v", mine)
	}
}

func TestDeleteOthersAppointmentIsNotFound(t *testing.T) {
	ctx := context.Background()
	auditor := &audittest.Auditor{}
	svc := NewService(newMemoryRepository(), auditor)

	a, err := svc.Create(ctx, lawyerA, request("Audiência cível", "2026-06-01", "AUDIENCIA"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, master, a.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("master deleting lawyer's appointment: want ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, lawyerA, a.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	entries := auditor.Entries()
	if len(entries) != 2 {
		t.Fatalf("want 2 audit entries, got %d", len(entries))
	}
	if entries[0].Action != audit.ActionCreate || entries[0].Table != audit.TableAppointment {
		t.Errorf("create audit = %+v", entries[0])
	}
	if entries[1].Action != audit.ActionDelete || entries[1].RecordID != a.ID || entries[1].ActorID != lawyerA.ID {
		t.Errorf("delete audit = %+v", entries[1])
	}
}

func TestBlankDescriptionStoredAsNull(t *testing.T) {
	blank := "   "
	req := request("Reunião", "2026-06-01", "REUNIAO")
	req.Descricao = &blank

	a, err := NewService(newMemoryRepository(), &audittest.Auditor{}).Create(context.Background(), lawyerA, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Description != nil {
		t.Errorf("description = %q, want nil", *a.Description)
	}
}

func newRouter(svc *Service) http.Handler {
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithPrincipal(req.Context(), lawyerA)))
		})
	})
	return r
}

func TestHandlerRoutes(t *testing.T) {
	h := newRouter(NewService(newMemoryRepository(), &audittest.Auditor{}))

	body := `{"titulo":"Audiência","dataHora":"2026-07-01T10:00:00Z","tipo":"AUDIENCIA"}`
	req := httptest.NewRequest(http.MethodPost, "/compromissos", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", rec.Code, rec.Body.String())
	}

	var created AppointmentResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Tipo != KindHearing || created.UsuarioID != lawyerA.ID {
		t.Errorf("created = %+v", created)
	}

	for _, bad := range []string{
		`{"titulo":"Au","dataHora":"2026-07-01","tipo":"AUDIENCIA"}`,
		`{"titulo":"Audiência","dataHora":"amanhã","tipo":"AUDIENCIA"}`,
		`{"titulo":"Audiência","dataHora":"2026-07-01","tipo":"VIAGEM"}`,
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/compromissos", strings.NewReader(bad)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", bad, rec.Code)
		}
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/compromissos/xyz", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id: status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/compromissos/"+created.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/compromissos", nil))
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("list after delete: %d %s", rec.Code, rec.Body.String())
	}
}
