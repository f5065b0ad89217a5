package handler

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/crystal-land-academy/api/internal/application/pin"
	"github.com/crystal-land-academy/api/internal/config"
	"github.com/crystal-land-academy/api/internal/domain"
	jwtinfra "github.com/crystal-land-academy/api/internal/infrastructure/jwt"
	"github.com/crystal-land-academy/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePinStore is an in-memory pin table.
type fakePinStore struct {
	mu   sync.Mutex
	pins map[string]domain.Pin
}

func newFakePinStore() *fakePinStore {
	return &fakePinStore{pins: make(map[string]domain.Pin)}
}

func (f *fakePinStore) PutIfAbsent(ctx context.Context, p *domain.Pin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pins[p.Pin]; ok {
		return fmt.Errorf("pin already exists: %w", domain.ErrConflict)
	}
	f.pins[p.Pin] = *p
	return nil
}

func (f *fakePinStore) Get(ctx context.Context, pinValue string) (*domain.Pin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[pinValue]
	if !ok {
		return nil, fmt.Errorf("pin not found: %w", domain.ErrNotFound)
	}
	return &p, nil
}

func (f *fakePinStore) Exists(ctx context.Context, pinValue string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.pins[pinValue]
	return ok, nil
}

// --- helpers ---

// newTestJWTProvider generates a fresh RSA key pair and returns a *jwtinfra.Provider.
func newTestJWTProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privKey)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))

	p, err := jwtinfra.NewProvider(&config.Config{
		JWTPrivateKeyPath: privPath,
		JWTPublicKeyPath:  pubPath,
		JWTExpiry:         24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

// newPinRouter mounts the PIN endpoints with the real auth and role gates.
func newPinRouter(t *testing.T, provider *jwtinfra.Provider) (chi.Router, *fakePinStore) {
	t.Helper()
	store := newFakePinStore()
	h := NewPinHandler(pin.NewService(store, nil, nil))

	r := chi.NewRouter()
	r.Post("/verify-pin", h.Verify)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(provider))
		r.Use(middleware.RequireRole(domain.RoleAdmin))
		r.Post("/generate-pin", h.Generate)
	})
	return r, store
}

func bearerReq(t *testing.T, p *jwtinfra.Provider, method, target, userID, role string, body []byte) *http.Request {
	t.Helper()
	token, err := p.Sign(userID, role)
	require.NoError(t, err)
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

// --- tests ---

// Generate as admin, verify, verify again: the pin stays valid because
// verification never marks it used.
func TestPinLifecycle_GenerateThenVerifyTwice(t *testing.T) {
	provider := newTestJWTProvider(t)
	router, _ := newPinRouter(t, provider)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, bearerReq(t, provider, http.MethodPost, "/generate-pin", "admin-1", domain.RoleAdmin, nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "success", env.Status)
	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	pinValue, _ := data["pin"].(string)
	assert.Regexp(t, regexp.MustCompile(`^\d{11}$`), pinValue)

	verifyBody, _ := json.Marshal(map[string]string{"pin": pinValue})
	for i := 0; i < 2; i++ {
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/verify-pin", bytes.NewReader(verifyBody)))
		require.Equal(t, http.StatusOK, rec.Code, "verification %d", i+1)
		assert.Equal(t, "success", decodeEnvelope(t, rec).Status)
	}
}

func TestGeneratePin_RequiresAdmin(t *testing.T) {
	provider := newTestJWTProvider(t)
	router, _ := newPinRouter(t, provider)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, bearerReq(t, provider, http.MethodPost, "/generate-pin", "teacher-1", domain.RoleTeacher, nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGeneratePin_RequiresBearer(t *testing.T) {
	provider := newTestJWTProvider(t)
	router, _ := newPinRouter(t, provider)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate-pin", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyPin_BadFormat(t *testing.T) {
	provider := newTestJWTProvider(t)
	router, _ := newPinRouter(t, provider)

	body, _ := json.Marshal(map[string]string{"pin": "123"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/verify-pin", bytes.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Invalid PIN format.", env.Message)
}

func TestVerifyPin_Unknown(t *testing.T) {
	provider := newTestJWTProvider(t)
	router, _ := newPinRouter(t, provider)

	body, _ := json.Marshal(map[string]string{"pin": "99999999999"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/verify-pin", bytes.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PIN does not exist.", decodeEnvelope(t, rec).Message)
}

func TestVerifyPin_Expired(t *testing.T) {
	provider := newTestJWTProvider(t)
	router, store := newPinRouter(t, provider)
	store.pins["11111111111"] = domain.Pin{
		Pin:       "11111111111",
		CreatedAt: time.Now().Add(-31 * 24 * time.Hour),
		ExpiresAt: time.Now().Add(-24 * time.Hour),
	}

	body, _ := json.Marshal(map[string]string{"pin": "11111111111"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/verify-pin", bytes.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PIN has expired.", decodeEnvelope(t, rec).Message)
}

func TestVerifyPin_AlreadyUsed(t *testing.T) {
	provider := newTestJWTProvider(t)
	router, store := newPinRouter(t, provider)
	store.pins["22222222222"] = domain.Pin{
		Pin:       "22222222222",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
		IsUsed:    true,
	}

	body, _ := json.Marshal(map[string]string{"pin": "22222222222"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/verify-pin", bytes.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PIN has already been used.", decodeEnvelope(t, rec).Message)
}
