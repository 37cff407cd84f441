package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/service"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type authFixture struct {
	jwt    *jwt.JWTService
	tokens *service.TokenStore
	mw     *AuthMiddleware
}

func newAuthFixture(t *testing.T, accessExpiry time.Duration) *authFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: accessExpiry, RefreshExpiry: time.Hour})
	tokens := service.NewTokenStore(client, newTestLogger())
	return &authFixture{
		jwt:    jwtService,
		tokens: tokens,
		mw:     NewAuthMiddleware(jwtService, tokens, newTestLogger()),
	}
}

// issue returns a whitelisted access token
func (f *authFixture) issue(t *testing.T, userID uuid.UUID, roleID int) string {
	t.Helper()
	access, accessID, err := f.jwt.GenerateAccessToken(userID, "u@example.com", roleID)
	require.NoError(t, err)
	_, refreshID, err := f.jwt.GenerateRefreshToken(userID, "u@example.com", roleID)
	require.NoError(t, err)
	require.NoError(t, f.tokens.StorePair(t.Context(), userID, accessID, time.Hour, refreshID, time.Hour))
	return access
}

func echoIdentity(t *testing.T, wantUser uuid.UUID, wantRole int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		require.True(t, ok)
		roleID, _ := GetRoleIDFromContext(r.Context())
		assert.Equal(t, wantUser, userID)
		assert.Equal(t, wantRole, roleID)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	f := newAuthFixture(t, time.Hour)
	userID := uuid.New()
	token := f.issue(t, userID, entity.RoleIDPharmacy)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.mw.Authenticate(echoIdentity(t, userID, entity.RoleIDPharmacy)).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthenticate_Failures(t *testing.T) {
	f := newAuthFixture(t, time.Hour)
	expired := newAuthFixture(t, -time.Minute)

	userID := uuid.New()
	revoked, _, err := f.jwt.GenerateAccessToken(userID, "u@example.com", entity.RoleIDPatient)
	require.NoError(t, err)
	expiredToken, _, err := expired.jwt.GenerateAccessToken(userID, "u@example.com", entity.RoleIDPatient)
	require.NoError(t, err)
	refresh, _, err := f.jwt.GenerateRefreshToken(userID, "u@example.com", entity.RoleIDPatient)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message i18n.Message
	}{
		{"missing", "", i18n.MsgTokenRequired},
		{"bad scheme", "Basic abc", i18n.MsgTokenInvalid},
		{"garbage", "Bearer not.a.jwt", i18n.MsgTokenInvalid},
		{"expired", "Bearer " + expiredToken, i18n.MsgTokenExpired},
		{"refresh token", "Bearer " + refresh, i18n.MsgTokenInvalid},
		{"not whitelisted", "Bearer " + revoked, i18n.MsgTokenRevoked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			f.mw.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("next must not run")
			})).ServeHTTP(rec, r)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message.EN)
		})
	}
}

func TestAuthenticateWebSocket_QueryToken(t *testing.T) {
	f := newAuthFixture(t, time.Hour)
	userID := uuid.New()
	token := f.issue(t, userID, entity.RoleIDPatient)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/chat/ws?token="+token, nil)
	rec := httptest.NewRecorder()
	f.mw.AuthenticateWebSocket(echoIdentity(t, userID, entity.RoleIDPatient)).ServeHTTP(rec, r)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Plain routes ignore the query parameter
	rec = httptest.NewRecorder()
	f.mw.Authenticate(echoIdentity(t, userID, entity.RoleIDPatient)).ServeHTTP(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_RevokedAfterLogout(t *testing.T) {
	f := newAuthFixture(t, time.Hour)
	userID := uuid.New()
	token := f.issue(t, userID, entity.RoleIDPatient)

	_, err := f.tokens.RevokeAll(t.Context(), userID)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.mw.Authenticate(echoIdentity(t, userID, entity.RoleIDPatient)).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.MsgTokenRevoked.EN)
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RequireAdmin(ok).ServeHTTP(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	r = r.WithContext(WithClaims(r.Context(), uuid.New(), "p@example.com", entity.RoleIDPatient, "jti"))
	rec = httptest.NewRecorder()
	RequireAdmin(ok).ServeHTTP(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	RequireRole(entity.RoleIDPatient, entity.RoleIDDoctor)(ok).ServeHTTP(rec, r)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
