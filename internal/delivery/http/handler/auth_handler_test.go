package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthUsecase struct {
	usecase.AuthUsecase
	login    func(req *dto.LoginRequest) (*dto.TokenResponse, error)
	register func(req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	logout   *dto.LogoutRequest
}

func (f *fakeAuthUsecase) Login(_ context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return f.login(req)
}

func (f *fakeAuthUsecase) RegisterPatient(_ context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	return f.register(req)
}

func (f *fakeAuthUsecase) Logout(_ context.Context, req *dto.LogoutRequest) error {
	f.logout = req
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	fake := &fakeAuthUsecase{login: func(req *dto.LoginRequest) (*dto.TokenResponse, error) {
		assert.Equal(t, "patient@example.com", req.Email)
		return &dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}, nil
	}}
	h := NewAuthHandler(fake, validator.NewValidator())

	r := newRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(t, dto.LoginRequest{Email: "patient@example.com", Password: "Secret123"}), nil)
	rec := serve(h.Login, r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, i18n.MsgLoginSuccess.EN, body.Message)

	var tokens dto.TokenResponse
	require.NoError(t, json.Unmarshal(body.Data, &tokens))
	assert.Equal(t, "access", tokens.AccessToken)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	fake := &fakeAuthUsecase{login: func(*dto.LoginRequest) (*dto.TokenResponse, error) {
		return nil, usecase.ErrInvalidCredentials
	}}
	h := NewAuthHandler(fake, validator.NewValidator())

	r := newRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(t, dto.LoginRequest{Email: "patient@example.com", Password: "wrong"}), nil)
	rec := serve(h.Login, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, i18n.MsgInvalidCredentials.EN, body.Message)
	assert.Equal(t, i18n.MsgInvalidCredentials.AR, body.MessageAr)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	fake := &fakeAuthUsecase{register: func(*dto.RegisterPatientRequest) (*dto.UserResponse, error) {
		t.Fatal("usecase must not be called for an invalid request")
		return nil, nil
	}}
	h := NewAuthHandler(fake, validator.NewValidator())

	r := newRequest(http.MethodPost, "/api/v1/auth/register", jsonBody(t, map[string]string{
		"email":    "not-an-email",
		"password": "weak",
	}), nil)
	rec := serve(h.RegisterPatient, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeEnvelope(t, rec).Errors
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "first_name")
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	fake := &fakeAuthUsecase{register: func(*dto.RegisterPatientRequest) (*dto.UserResponse, error) {
		return nil, usecase.ErrEmailAlreadyExists
	}}
	h := NewAuthHandler(fake, validator.NewValidator())

	r := newRequest(http.MethodPost, "/api/v1/auth/register", jsonBody(t, dto.RegisterPatientRequest{
		Email:     "patient@example.com",
		Password:  "Secret123",
		FirstName: "Ali",
		LastName:  "Saleh",
	}), nil)
	rec := serve(h.RegisterPatient, r)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, i18n.MsgEmailExists.EN, decodeEnvelope(t, rec).Message)
}

func TestAuthHandler_LogoutWithoutBody(t *testing.T) {
	fake := &fakeAuthUsecase{}
	h := NewAuthHandler(fake, validator.NewValidator())

	rec := serve(h.Logout, newRequest(http.MethodPost, "/api/v1/auth/logout", http.NoBody, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fake.logout)
	assert.Empty(t, fake.logout.RefreshToken)
}
