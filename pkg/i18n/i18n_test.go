package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   Lang
	}{
		{"empty falls back", "", Arabic},
		{"plain english", "en", English},
		{"regional english", "en-US,en;q=0.9", English},
		{"regional arabic", "ar-SA", Arabic},
		{"quality ordering", "en;q=0.3, ar;q=0.9", Arabic},
		{"unsupported falls back", "fr-FR", Arabic},
		{"garbage falls back", ";;;", Arabic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.header, Arabic))
		})
	}
}

func TestNegotiate_EnglishFallback(t *testing.T) {
	assert.Equal(t, English, Negotiate("", English))
	assert.Equal(t, English, Negotiate("de", English))
}

func TestMessageIn(t *testing.T) {
	assert.Equal(t, "Success", MsgSuccess.In(English))
	assert.Equal(t, "نجح", MsgSuccess.In(Arabic))
	assert.Equal(t, "only", Message{EN: "only"}.In(Arabic))
}

func TestPick(t *testing.T) {
	assert.Equal(t, "Panadol", Pick(English, "Panadol", "بنادول"))
	assert.Equal(t, "بنادول", Pick(Arabic, "Panadol", "بنادول"))
	assert.Equal(t, "Panadol", Pick(Arabic, "Panadol", ""))
	assert.Equal(t, "بنادول", Pick(English, "", "بنادول"))
}

func TestContextRoundTrip(t *testing.T) {
	assert.Equal(t, Arabic, FromContext(context.Background()))
	ctx := WithLang(context.Background(), English)
	assert.Equal(t, English, FromContext(ctx))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "جاهز", StatusLabel("ready").AR)
	assert.Equal(t, "mystery", StatusLabel("mystery").EN)
}

func TestCatalogIsBilingual(t *testing.T) {
	catalog := []Message{
		MsgSuccess, MsgBadRequest, MsgUnauthorized, MsgForbidden, MsgNotFound,
		MsgMethodNotAllowed, MsgConflict, MsgFileTooLarge, MsgUnsupportedFileType,
		MsgUnprocessable, MsgValidationError, MsgRateLimited, MsgInternalError,
		MsgTokenRequired, MsgTokenInvalid, MsgTokenExpired, MsgTokenRevoked,
		MsgEmailExists, MsgOrderCreated, MsgPrescriptionUploaded, MsgReviewExists,
		NotifyOrderStatusBody, NotifyReviewBody,
	}
	for _, m := range catalog {
		assert.NotEmpty(t, m.EN)
		assert.NotEmpty(t, m.AR, "missing arabic for %q", m.EN)
	}
	for status, m := range StatusLabels {
		assert.NotEmpty(t, m.AR, "missing arabic label for %s", status)
	}
}

func TestMessageFormat(t *testing.T) {
	msg := NotifyOrderStatusBody.Format("DWK-20250101-ABCDEF", StatusLabel("delivered"))
	assert.Equal(t, "Order DWK-20250101-ABCDEF is now delivered", msg.EN)
	assert.Equal(t, "الطلب DWK-20250101-ABCDEF أصبح تم التوصيل", msg.AR)

	stars := NotifyReviewBody.Format(4)
	assert.Equal(t, "Your pharmacy received a 4-star review", stars.EN)
}
