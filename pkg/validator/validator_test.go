package validator

import (
	"testing"

	"dawaksahl-api/pkg/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Language string `json:"preferred_language" validate:"omitempty,lang"`
	Rating   int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&signup{
		Email:    "patient@example.com",
		Password: "Secret123",
		Phone:    "+967 777 123 456",
		Language: "ar",
		Rating:   4,
	})
	assert.NoError(t, err)
}

func TestValidate_PasswordRules(t *testing.T) {
	v := NewValidator()
	for _, pw := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		err := v.Validate(&signup{Email: "a@b.co", Password: pw})
		require.Error(t, err, pw)
		errs := v.FormatValidationErrors(err, i18n.English)
		assert.Contains(t, errs, "password", pw)
	}
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&signup{Email: "not-an-email", Password: "Secret123", Rating: 9, Language: "fr"})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err, i18n.English)
	assert.Equal(t, []string{"email must be a valid email address"}, errs["email"])
	assert.Equal(t, []string{"rating must be less than or equal to 5"}, errs["rating"])
	assert.Contains(t, errs, "preferred_language")
}

func TestFormatValidationErrors_Arabic(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&signup{})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err, i18n.Arabic)
	require.Len(t, errs["email"], 1)
	assert.Equal(t, "الحقل email مطلوب", errs["email"][0])
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.FormatValidationErrors(assert.AnError, i18n.English))
}
