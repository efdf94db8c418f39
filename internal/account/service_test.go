// AngelaMos | 2026
// service_test.go

package account

import (
	"context"
	"errors"
	"testing"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/audit"
	"github.com/advotec/advotec-api/internal/audit/audittest"
	"github.com/advotec/advotec-api/internal/core"
)

func newTestService() (*Service, *memoryRepository, *audittest.Auditor) {
	repo := newMemoryRepository()
	auditor := &audittest.Auditor{}
	return NewService(repo, auditor), repo, auditor
}

func seedAccount(t *testing.T, svc *Service, name, email string, role access.Role) *Account {
	t.Helper()

	a, err := svc.CreateAccount(context.Background(), "", CreateAccountRequest{
		Nome:  name,
		Email: email,
		Senha: "segredo123",
		Role:  role.String(),
	})
	if err != nil {
		t.Fatalf("CreateAccount(%s): %v", email, err)
	}
	return a
}

func TestCreateAccountRejectsExistingEmail(t *testing.T) {
	svc, _, auditor := newTestService()
	master := seedAccount(t, svc, "Maria Souza", "maria@example.com", access.RoleMaster)

	_, err := svc.CreateAccount(context.Background(), master.ID, CreateAccountRequest{
		Nome:  "Outra Maria",
		Email: "MARIA@example.com",
		Senha: "segredo123",
		Role:  "ADVOGADO",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists, got %v", err)
	}

	if n := len(auditor.Entries()); n != 1 {
		t.Errorf("only the seed should be audited, got %d entries", n)
	}
}

func TestCreateAccountAuditsActor(t *testing.T) {
	svc, _, auditor := newTestService()
	master := seedAccount(t, svc, "Maria Souza", "maria@example.com", access.RoleMaster)

	lawyer, err := svc.CreateAccount(context.Background(), master.ID, CreateAccountRequest{
		Nome:  "Joao Alves",
		Email: "joao@example.com",
		Senha: "segredo123",
		Role:  "ADVOGADO",
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	entries := auditor.Entries()
	last := entries[len(entries)-1]
	want := audittest.Entry{
		Action:   audit.ActionCreate,
		Table:    audit.TableAccount,
		RecordID: lawyer.ID,
		ActorID:  master.ID,
	}
	if last != want {
		t.Errorf("audit entry = %+v, want %+v", last, want)
	}

	if entries[0].ActorID != master.ID {
		t.Errorf("self-created seed should name itself as actor, got %q", entries[0].ActorID)
	}
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	svc, repo, auditor := newTestService()
	a := seedAccount(t, svc, "Joao Alves", "joao@example.com", access.RoleLawyer)
	before := len(auditor.Entries())

	_, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileRequest{
		Nome:       "Joao Alves",
		Email:      "joao@example.com",
		SenhaAtual: "errada",
		NovaSenha:  "novasenha123",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("want ErrWrongPassword, got %v", err)
	}
	if len(auditor.Entries()) != before {
		t.Error("failed profile update must not be audited")
	}

	_, err = svc.UpdateProfile(context.Background(), a.ID, UpdateProfileRequest{
		Nome:       "Joao P. Alves",
		Email:      "joao@example.com",
		SenhaAtual: "segredo123",
		NovaSenha:  "novasenha123",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), a.ID)
	ok, err := core.VerifyPassword("novasenha123", stored.PasswordHash)
	if err != nil || !ok {
		t.Errorf("new password should verify, ok=%v err=%v", ok, err)
	}
	if stored.Name != "Joao P. Alves" {
		t.Errorf("name = %q", stored.Name)
	}

	entries := auditor.Entries()
	last := entries[len(entries)-1]
	if last.Action != audit.ActionUpdate || last.RecordID != a.ID || last.ActorID != a.ID {
		t.Errorf("audit entry = %+v", last)
	}
}

func TestUpdateProfileIgnoresLoneNewPassword(t *testing.T) {
	svc, repo, _ := newTestService()
	a := seedAccount(t, svc, "Joao Alves", "joao@example.com", access.RoleLawyer)

	_, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileRequest{
		Nome:      "Joao Alves",
		Email:     "joao@example.com",
		NovaSenha: "novasenha123",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), a.ID)
	if ok, _ := core.VerifyPassword("segredo123", stored.PasswordHash); !ok {
		t.Error("password must not change without senhaAtual")
	}
}

// deactivatingRepository deactivates the account right before the profile
// write lands, as a concurrent PATCH /usuarios/{id}/inativar would.
type deactivatingRepository struct {
	*memoryRepository
}

func (r deactivatingRepository) UpdateProfile(
	ctx context.Context,
	id, name, email string,
	hash *string,
) (*Account, error) {
	r.mu.Lock()
	a := r.accounts[id]
	a.Active = false
	r.accounts[id] = a
	r.mu.Unlock()

	return r.memoryRepository.UpdateProfile(ctx, id, name, email, hash)
}

func TestUpdateProfileKeepsConcurrentDeactivation(t *testing.T) {
	repo := newMemoryRepository()
	auditor := &audittest.Auditor{}
	svc := NewService(deactivatingRepository{repo}, auditor)
	a := seedAccount(t, svc, "Joao Alves", "joao@example.com", access.RoleLawyer)
	before := len(auditor.Entries())

	_, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileRequest{
		Nome:  "Joao P. Alves",
		Email: "joao@example.com",
	})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), a.ID)
	if stored.Active {
		t.Error("profile edit must not reactivate a deactivated account")
	}
	if stored.Name != "Joao Alves" {
		t.Errorf("name = %q, want unchanged", stored.Name)
	}
	if len(auditor.Entries()) != before {
		t.Error("rejected profile update must not be audited")
	}
}

// failingProfileRepository fails the profile write.
type failingProfileRepository struct {
	*memoryRepository
}

func (failingProfileRepository) UpdateProfile(
	context.Context,
	string, string, string,
	*string,
) (*Account, error) {
	return nil, errors.New("db down")
}

func TestUpdateProfileFailureLeavesAccountUntouched(t *testing.T) {
	repo := newMemoryRepository()
	auditor := &audittest.Auditor{}
	svc := NewService(failingProfileRepository{repo}, auditor)
	a := seedAccount(t, svc, "Joao Alves", "joao@example.com", access.RoleLawyer)
	before := len(auditor.Entries())

	_, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileRequest{
		Nome:       "Nome Novo",
		Email:      "novo@example.com",
		SenhaAtual: "segredo123",
		NovaSenha:  "novasenha123",
	})
	if err == nil {
		t.Fatal("want error from failed write")
	}

	stored, _ := repo.GetByID(context.Background(), a.ID)
	if stored.Name != "Joao Alves" || stored.Email != "joao@example.com" {
		t.Errorf("stored = %q %q, want unchanged", stored.Name, stored.Email)
	}
	if ok, _ := core.VerifyPassword("segredo123", stored.PasswordHash); !ok {
		t.Error("old password should still verify")
	}
	if len(auditor.Entries()) != before {
		t.Error("failed profile update must not be audited")
	}
}

func TestUpdateProfileEmailCollision(t *testing.T) {
	svc, _, _ := newTestService()
	seedAccount(t, svc, "Maria Souza", "maria@example.com", access.RoleMaster)
	a := seedAccount(t, svc, "Joao Alves", "joao@example.com", access.RoleLawyer)

	_, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileRequest{
		Nome:  "Joao Alves",
		Email: "maria@example.com",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("want ErrEmailExists, got %v", err)
	}
}

func TestDeactivateAccount(t *testing.T) {
	svc, _, _ := newTestService()
	master := seedAccount(t, svc, "Maria Souza", "maria@example.com", access.RoleMaster)
	lawyer := seedAccount(t, svc, "Joao Alves", "joao@example.com", access.RoleLawyer)

	if err := svc.DeactivateAccount(context.Background(), master.ID, lawyer.ID); err != nil {
		t.Fatalf("DeactivateAccount: %v", err)
	}

	p, err := svc.ResolvePrincipal(context.Background(), lawyer.ID)
	if err != nil {
		t.Fatalf("ResolvePrincipal: %v", err)
	}
	if p.Active {
		t.Error("principal should be inactive")
	}

	err = svc.DeactivateAccount(context.Background(), master.ID, lawyer.ID)
	if !errors.Is(err, ErrAlreadyInactive) {
		t.Errorf("second deactivate: want ErrAlreadyInactive, got %v", err)
	}

	err = svc.DeactivateAccount(context.Background(), master.ID, core.NewObjectID())
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("unknown id: want ErrNotFound, got %v", err)
	}
}

func TestDeleteAccountOwningClients(t *testing.T) {
	svc, repo, auditor := newTestService()
	master := seedAccount(t, svc, "Maria Souza", "maria@example.com", access.RoleMaster)
	lawyer := seedAccount(t, svc, "Joao Alves", "joao@example.com", access.RoleLawyer)
	repo.owners[lawyer.ID] = true
	before := len(auditor.Entries())

	err := svc.DeleteAccount(context.Background(), master.ID, lawyer.ID)
	if !errors.Is(err, ErrOwnsRecords) {
		t.Fatalf("want ErrOwnsRecords, got %v", err)
	}
	if len(auditor.Entries()) != before {
		t.Error("failed delete must not be audited")
	}

	repo.owners[lawyer.ID] = false
	if err := svc.DeleteAccount(context.Background(), master.ID, lawyer.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, err := svc.GetAccount(context.Background(), lawyer.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("deleted account should be gone, got %v", err)
	}
}

func TestEnsureMasterIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()

	for range 2 {
		if err := svc.EnsureMaster(context.Background(), "Administrador", "admin@example.com", "segredo123"); err != nil {
			t.Fatalf("EnsureMaster: %v", err)
		}
	}

	accounts, _ := repo.List(context.Background(), ListAccountsParams{})
	if len(accounts) != 1 {
		t.Fatalf("want one account, got %d", len(accounts))
	}
	if accounts[0].Role != access.RoleMaster {
		t.Errorf("role = %q, want MASTER", accounts[0].Role)
	}
}
