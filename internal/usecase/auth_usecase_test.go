package usecase

import (
	"testing"
	"time"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/service"
	"dawaksahl-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindWithProfile(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return f.FindByID(db, id)
}

func (f *fakeUserRepo) UpdateFields(_ *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	if at, ok := fields["last_login_at"].(time.Time); ok {
		f.users[id].LastLoginAt = &at
	}
	return nil
}

type authFixture struct {
	usecase *authUsecase
	tokens  *service.TokenStore
	audit   *recordingAudit
	user    *entity.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db, _ := newMockDB(t)
	_, client := newTestRedis(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		ID:       uuid.New(),
		Email:    "patient@example.com",
		Password: string(hash),
		RoleID:   entity.RoleIDPatient,
		IsActive: true,
	}

	f := &authFixture{
		tokens: service.NewTokenStore(client, newTestLogger()),
		audit:  &recordingAudit{},
		user:   user,
	}
	f.usecase = &authUsecase{
		db:       db,
		log:      newTestLogger(),
		userRepo: &fakeUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}},
		jwtService: jwt.NewJWTService(config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  time.Hour,
			RefreshExpiry: 24 * time.Hour,
		}),
		tokens:       f.tokens,
		auditService: f.audit,
	}
	return f
}

func TestLogin_IssuesWhitelistedTokens(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.usecase.Login(t.Context(), &dto.LoginRequest{Email: " patient@example.com ", Password: "Secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	require.NotNil(t, resp.User)

	claims, err := f.usecase.jwtService.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	valid, err := f.tokens.IsAccessValid(t.Context(), f.user.ID, claims.TokenID)
	require.NoError(t, err)
	assert.True(t, valid)

	assert.NotNil(t, f.user.LastLoginAt)
	assert.Equal(t, []string{entity.AuditActionUserLogin}, f.audit.actions())
}

func TestLogin_Failures(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.usecase.Login(t.Context(), &dto.LoginRequest{Email: "patient@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.usecase.Login(t.Context(), &dto.LoginRequest{Email: "nobody@example.com", Password: "Secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	f.user.IsActive = false
	_, err = f.usecase.Login(t.Context(), &dto.LoginRequest{Email: "patient@example.com", Password: "Secret123"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
	assert.Empty(t, f.audit.entries)
}

func TestRefreshToken_RotatesOnce(t *testing.T) {
	f := newAuthFixture(t)
	login, err := f.usecase.Login(t.Context(), &dto.LoginRequest{Email: "patient@example.com", Password: "Secret123"})
	require.NoError(t, err)

	rotated, err := f.usecase.RefreshToken(t.Context(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	_, err = f.usecase.RefreshToken(t.Context(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = f.usecase.RefreshToken(t.Context(), &dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
