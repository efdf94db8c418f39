// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("segredo123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash = %q, want argon2id encoding", hash)
	}

	if ok, err := VerifyPassword("segredo123", hash); err != nil || !ok {
		t.Errorf("correct password: ok=%v err=%v", ok, err)
	}
	if ok, _ := VerifyPassword("segredo124", hash); ok {
		t.Error("wrong password accepted")
	}
}

func TestBcryptHashIsUpgraded(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	stored := string(legacy)

	ok, newHash, err := VerifyPasswordTimingSafe("segredo123", &stored)
	if err != nil || !ok {
		t.Fatalf("verify: ok=%v err=%v", ok, err)
	}
	if !strings.HasPrefix(newHash, "$argon2id$") {
		t.Errorf("rehash = %q, want argon2id", newHash)
	}
}

func TestTimingSafeWithoutHash(t *testing.T) {
	ok, newHash, err := VerifyPasswordTimingSafe("dummy_password_for_timing_attack_prevention", nil)
	if ok || newHash != "" || err != nil {
		t.Errorf("missing hash: ok=%v rehash=%q err=%v", ok, newHash, err)
	}
}
