package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-token-registry/internal/domain"
)

func generateKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	return key, string(publicPEM)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	key, publicPEM := generateKey(t)
	otherKey, _ := generateKey(t)
	cfg := AuthConfig{JWTPublicKey: publicPEM, APIKeys: []string{"operator-key"}}

	valid := signToken(t, key, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expired := signToken(t, key, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	foreign := signToken(t, otherKey, jwt.RegisteredClaims{Subject: "alice"})
	badSubject := signToken(t, key, jwt.RegisteredClaims{Subject: "Not A Name"})

	tests := []struct {
		name        string
		header      string
		signers     string
		wantOK      bool
		wantType    string
		wantSigners domain.Signers
	}{
		{name: "missing header", header: "", wantOK: false},
		{name: "malformed header", header: "Bearer", wantOK: false},
		{name: "unsupported scheme", header: "Basic abc", wantOK: false},
		{name: "valid jwt", header: "Bearer " + valid, wantOK: true, wantType: "jwt", wantSigners: domain.Signers{"alice"}},
		{name: "expired jwt", header: "Bearer " + expired, wantOK: false},
		{name: "jwt from another key", header: "Bearer " + foreign, wantOK: false},
		{name: "jwt with invalid subject", header: "Bearer " + badSubject, wantOK: false},
		{name: "api key with signers", header: "ApiKey operator-key", signers: "registry, alice,registry", wantOK: true, wantType: "apikey", wantSigners: domain.Signers{"registry", "alice"}},
		{name: "api key without signers", header: "ApiKey operator-key", wantOK: false},
		{name: "api key with invalid signer", header: "ApiKey operator-key", signers: "ALICE", wantOK: false},
		{name: "unknown api key", header: "ApiKey nope", signers: "alice", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Authenticate(tt.header, tt.signers, cfg)
			assert.Equal(t, tt.wantOK, result.Success)
			if !tt.wantOK {
				assert.Error(t, result.Error)
				return
			}
			assert.NoError(t, result.Error)
			assert.Equal(t, tt.wantType, result.AuthType)
			assert.Equal(t, tt.wantSigners, result.Signers)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := AuthConfig{APIKeys: []string{"operator-key"}}

	router := gin.New()
	router.Use(RequestID())
	router.POST("/signed", Auth(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"signers": Signers(c)})
	})

	t.Run("rejects unauthenticated requests", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/signed", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
		assert.NotEmpty(t, w.Header().Get(REQUEST_ID_HEADER))
	})

	t.Run("exposes signers to handlers", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/signed", nil)
		req.Header.Set("Authorization", "ApiKey operator-key")
		req.Header.Set(SIGNERS_HEADER, "alice")
		req.Header.Set(REQUEST_ID_HEADER, "req-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"signers":["alice"]}`, w.Body.String())
		assert.Equal(t, "req-1", w.Header().Get(REQUEST_ID_HEADER))
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"internal_error"`)
}
