package handlers

import (
	"context"

	"procureBack/internal/models"
)

type contextKey string

const claimsContextKey = contextKey("claims")

func ContextWithClaims(ctx context.Context, claims models.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

func ClaimsFromContext(ctx context.Context) (models.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(models.Claims)
	return claims, ok
}
