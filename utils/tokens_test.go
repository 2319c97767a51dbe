package utils

import (
	"testing"
	"time"

	"procureBack/internal/models"
)

func TestNewManagerRequiresSigningKey(t *testing.T) {
	if _, err := NewManager("", time.Hour); err == nil {
		t.Fatal("want error for empty signing key")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewManager("test-signing-key", time.Hour)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	user := models.User{ID: 7, MainAccountID: 1, Email: "sub@one.test", Type: models.TypeSeller, Role: models.RoleSub}
	token, err := m.NewToken(user)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != 7 || claims.MainAccountID != 1 || claims.Email != "sub@one.test" {
		t.Fatalf("claims do not survive the round trip: %+v", claims)
	}
	if claims.EffectiveAccountID() != 1 {
		t.Fatalf("want effective account 1, got %d", claims.EffectiveAccountID())
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	signer, _ := NewManager("key-one", time.Hour)
	verifier, _ := NewManager("key-two", time.Hour)

	token, err := signer.NewToken(models.User{ID: 1, Email: "a@b.test"})
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("want error for token signed with another key")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m, _ := NewManager("test-signing-key", time.Nanosecond)

	token, err := m.NewToken(models.User{ID: 1, Email: "a@b.test"})
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	time.Sleep(time.Second + 10*time.Millisecond)
	if _, err := m.Parse(token); err == nil {
		t.Fatal("want error for expired token")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	m, _ := NewManager("test-signing-key", time.Hour)
	if _, err := m.Parse("not-a-jwt"); err == nil {
		t.Fatal("want error for malformed token")
	}
}
