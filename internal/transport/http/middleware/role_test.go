package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	jwtinfra "github.com/crystal-land-academy/api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
)

func requestWithClaims(role string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	claims := &jwtinfra.Claims{UserID: "user-1", Role: role}
	return r.WithContext(context.WithValue(r.Context(), ClaimsKey, claims))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireRole("admin")(okHandler()).ServeHTTP(rec, requestWithClaims("admin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_RejectsOtherRole(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireRole("admin")(okHandler()).ServeHTTP(rec, requestWithClaims("teacher"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_RejectsMissingClaims(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireRole("admin")(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_AllowsAnyListedRole(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireRole("admin", "teacher")(okHandler()).ServeHTTP(rec, requestWithClaims("teacher"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
