// AngelaMos | 2026
// handler_test.go

package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/middleware"
)

// principalFromHeader stands in for the token verifier: the X-Test-Account
// header picks one of the fixture principals.
func principalFromHeader(next http.Handler) http.Handler {
	accounts := map[string]*access.Principal{
		"master": master,
		"a":      lawyerA,
		"b":      lawyerB,
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := accounts[r.Header.Get("X-Test-Account")]
		next.ServeHTTP(w, r.WithContext(middleware.WithPrincipal(r.Context(), p)))
	})
}

func newClientRouter(f *fixture) http.Handler {
	r := chi.NewRouter()
	NewHandler(f.svc).RegisterRoutes(r, principalFromHeader)
	return r
}

func call(h http.Handler, account, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Account", account)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMalformedIDRejectedBeforeStoreAccess(t *testing.T) {
	f := newFixture()
	h := newClientRouter(f)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/clientes/123", ""},
		{http.MethodPut, "/clientes/not-an-object-id", `{"nome":"Carlos","cpf":"12345678901","telefone":"11999990000"}`},
		{http.MethodDelete, "/clientes/ABCDEFABCDEFABCDEFABCDEF0", ""},
	} {
		rec := call(h, "a", tc.method, tc.path, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s %s: status = %d, want 400", tc.method, tc.path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "ID inválido") {
			t.Errorf("%s %s: body = %s", tc.method, tc.path, rec.Body.String())
		}
	}

	if n := f.repo.callCount(); n != 0 {
		t.Errorf("store was touched %d times", n)
	}
}

func TestCreateThenCrossAccountNotFound(t *testing.T) {
	f := newFixture()
	h := newClientRouter(f)

	rec := call(h, "a", http.MethodPost, "/clientes",
		`{"nome":"Carlos Pereira","cpf":"12345678901","telefone":"11999990000","dataAniversario":""}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}

	var created ClientResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.UsuarioID != lawyerA.ID || created.DataAniversario != nil {
		t.Errorf("created = %+v", created)
	}

	rec = call(h, "b", http.MethodGet, "/clientes/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-account get: status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"erro":"Cliente não encontrado"`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	rec = call(h, "master", http.MethodGet, "/clientes/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("master get: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"fichas":[]`) {
		t.Errorf("detail should carry an empty fichas list: %s", rec.Body.String())
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture()
	h := newClientRouter(f)

	rec := call(h, "a", http.MethodPost, "/clientes",
		`{"nome":"Al","cpf":"123.456.789-01","telefone":"123"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body struct {
		Erro     string `json:"erro"`
		Detalhes []struct {
			Campo string `json:"campo"`
		} `json:"detalhes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Erro != "Dados inválidos" {
		t.Errorf("erro = %q", body.Erro)
	}

	fields := map[string]bool{}
	for _, d := range body.Detalhes {
		fields[d.Campo] = true
	}
	for _, want := range []string{"nome", "cpf", "telefone"} {
		if !fields[want] {
			t.Errorf("missing detail for %q in %+v", want, body.Detalhes)
		}
	}
}

func TestUpdateCPFConflictMessage(t *testing.T) {
	f := newFixture()
	h := newClientRouter(f)
	f.create(t, lawyerB, "Daniela Rocha", "12345678901")
	mine := f.create(t, lawyerA, "Carlos Pereira", "55555555555")

	rec := call(h, "a", http.MethodPut, "/clientes/"+mine.ID,
		`{"nome":"Carlos Pereira","cpf":"12345678901","telefone":"11999990000"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "CPF já está em uso por outro cliente") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestBirthdaysRouteNotShadowedByID(t *testing.T) {
	f := newFixture()
	h := newClientRouter(f)

	rec := call(h, "a", http.MethodGet, "/clientes/aniversariantes", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}
