// AngelaMos | 2026
// service_test.go

package casefile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/audit"
	"github.com/advotec/advotec-api/internal/audit/audittest"
	"github.com/advotec/advotec-api/internal/core"
	"github.com/advotec/advotec-api/internal/middleware"
)

type memoryRepository struct {
	mu    sync.Mutex
	files []CaseFile
	clock time.Time
}

func (m *memoryRepository) Create(_ context.Context, f *CaseFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clock = m.clock.Add(time.Minute)
	f.Date = m.clock
	m.files = append(m.files, *f)
	return nil
}

func (m *memoryRepository) ListByClient(_ context.Context, clientID string) ([]CaseFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []CaseFile{}
	for _, f := range m.files {
		if f.ClientID == clientID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memoryRepository) ListByClients(ctx context.Context, ids []string) (map[string][]CaseFile, error) {
	out := make(map[string][]CaseFile)
	for _, id := range ids {
		files, _ := m.ListByClient(ctx, id)
		out[id] = files
	}
	return out, nil
}

// ownerLocator knows which account owns each client.
type ownerLocator map[string]string

func (o ownerLocator) LocateClient(_ context.Context, scope access.Scope, id string) error {
	owner, ok := o[id]
	if !ok || !scope.Allows(owner) {
		return fmt.Errorf("locate client: %w", core.ErrNotFound)
	}
	return nil
}

var (
	master    = &access.Principal{ID: "aaaaaaaaaaaaaaaaaaaaaaaa", Role: access.RoleMaster, Active: true}
	lawyerA   = &access.Principal{ID: "bbbbbbbbbbbbbbbbbbbbbbbb", Role: access.RoleLawyer, Active: true}
	lawyerB   = &access.Principal{ID: "cccccccccccccccccccccccc", Role: access.RoleLawyer, Active: true}
	clientOfA = "dddddddddddddddddddddddd"
)

func newTestService() (*Service, *memoryRepository, *audittest.Auditor) {
	repo := &memoryRepository{clock: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	auditor := &audittest.Auditor{}
	locator := ownerLocator{clientOfA: lawyerA.ID}
	return NewService(repo, locator, auditor), repo, auditor
}

func TestCreateRequiresVisibleClient(t *testing.T) {
	svc, repo, auditor := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, lawyerB, clientOfA, CreateCaseFileRequest{Descricao: "Audiência inicial"})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("other owner: want ErrNotFound, got %v", err)
	}
	if len(repo.files) != 0 || len(auditor.Entries()) != 0 {
		t.Fatal("rejected create must not write or audit")
	}

	file, err := svc.Create(ctx, master, clientOfA, CreateCaseFileRequest{Descricao: "Audiência inicial"})
	if err != nil {
		t.Fatalf("master create: %v", err)
	}

	entries := auditor.Entries()
	want := audittest.Entry{Action: audit.ActionCreate, Table: audit.TableCaseFile, RecordID: file.ID, ActorID: master.ID}
	if len(entries) != 1 || entries[0] != want {
		t.Errorf("audit = %+v, want [%+v]", entries, want)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for _, d := range []string{"Primeira ficha", "Segunda ficha", "Terceira ficha"} {
		if _, err := svc.Create(ctx, lawyerA, clientOfA, CreateCaseFileRequest{Descricao: d}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	files, err := svc.ListForClient(ctx, lawyerA, clientOfA)
	if err != nil {
		t.Fatalf("ListForClient: %v", err)
	}
	if len(files) != 3 || files[0].Description != "Terceira ficha" {
		t.Errorf("files = %+v", files)
	}

	if _, err := svc.ListForClient(ctx, lawyerB, clientOfA); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("other owner list: want ErrNotFound, got %v", err)
	}
}

func TestHandlerRoutes(t *testing.T) {
	svc, _, _ := newTestService()
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithPrincipal(req.Context(), lawyerA)))
		})
	})

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(http.MethodPost, "/fichas/xyz", `{"descricao":"Audiência inicial"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed client id: status = %d", rec.Code)
	}
	if rec := send(http.MethodPost, "/fichas/"+clientOfA, `{"descricao":"curt"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("short descricao: status = %d", rec.Code)
	}
	if rec := send(http.MethodPost, "/fichas/"+core.NewObjectID(), `{"descricao":"Audiência inicial"}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown client: status = %d", rec.Code)
	}
	if rec := send(http.MethodPost, "/fichas/"+clientOfA, `{"descricao":"Audiência inicial"}`); rec.Code != http.StatusCreated {
		t.Errorf("create: status = %d: %s", rec.Code, rec.Body.String())
	}

	rec := send(http.MethodGet, "/fichas/"+clientOfA, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"clienteId":"`+clientOfA+`"`) {
		t.Errorf("list: status = %d body = %s", rec.Code, rec.Body.String())
	}
}
