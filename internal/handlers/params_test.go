package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"procureBack/internal/models"
)

func TestGetParam(t *testing.T) {
	t.Run("router-style colon key", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/tenders/10?:id=10", nil)
		if got := getParam(r, "id"); got != "10" {
			t.Fatalf("want %q, got %q", "10", got)
		}
	})

	t.Run("plain query key", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/quotations/my-quotation?tenderId=10", nil)
		if got := getParam(r, "tenderId"); got != "10" {
			t.Fatalf("want %q, got %q", "10", got)
		}
	})

	t.Run("absent", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/tenders", nil)
		if got := getParam(r, "id"); got != "" {
			t.Fatalf("want empty, got %q", got)
		}
	})
}

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := models.Claims{UserID: 7, Email: "sub@one.test", MainAccountID: 1}
	ctx := ContextWithClaims(context.Background(), claims)

	got, ok := ClaimsFromContext(ctx)
	if !ok {
		t.Fatal("claims not found in context")
	}
	if got.UserID != 7 || got.EffectiveAccountID() != 1 {
		t.Fatalf("claims changed in transit: %+v", got)
	}

	if _, ok := ClaimsFromContext(context.Background()); ok {
		t.Fatal("empty context must not yield claims")
	}
}
