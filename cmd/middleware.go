package main

import (
	"fmt"
	"net/http"

	"procureBack/internal/handlers"
	"procureBack/internal/models"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authenticate reads the raw token from the Authorization header. The token
// is sent as-is, without a Bearer prefix. A missing token is 401; an invalid
// or expired one is 403.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			app.clientError(w, http.StatusUnauthorized, "authorization header missing")
			return
		}

		claims, err := app.tokens.Parse(token)
		if err != nil {
			app.clientError(w, http.StatusForbidden, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.ContextWithClaims(r.Context(), claims)))
	})
}

// requireType gates a route on the account type; admins pass every gate.
func (app *application) requireType(accountType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := handlers.ClaimsFromContext(r.Context())
			if !ok {
				app.clientError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if claims.Type != accountType && claims.Type != models.TypeAdmin {
				app.clientError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
