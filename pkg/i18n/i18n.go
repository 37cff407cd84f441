// Package i18n holds the bilingual message catalog and Accept-Language negotiation.
package i18n

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

type Lang string

const (
	Arabic  Lang = "ar"
	English Lang = "en"
)

// Message is a text pair rendered on every response, one side per language.
type Message struct {
	EN string
	AR string
}

// In returns the side for lang, falling back to English.
func (m Message) In(lang Lang) string {
	if lang == Arabic && m.AR != "" {
		return m.AR
	}
	return m.EN
}

// Format fills the placeholders of both sides. Message arguments render in the matching language.
func (m Message) Format(args ...interface{}) Message {
	en := make([]interface{}, len(args))
	ar := make([]interface{}, len(args))
	for i, arg := range args {
		if msg, ok := arg.(Message); ok {
			en[i], ar[i] = msg.EN, msg.AR
			continue
		}
		en[i], ar[i] = arg, arg
	}
	return Message{EN: fmt.Sprintf(m.EN, en...), AR: fmt.Sprintf(m.AR, ar...)}
}

var matcher = language.NewMatcher([]language.Tag{
	language.Arabic,
	language.English,
})

// Parse maps a loose language string ("ar", "AR", "en-US") to a supported Lang.
func Parse(raw string, fallback Lang) Lang {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ar":
		return Arabic
	case "en":
		return English
	}
	return Negotiate(raw, fallback)
}

// Negotiate picks the best supported language for an Accept-Language header.
func Negotiate(acceptLanguage string, fallback Lang) Lang {
	if strings.TrimSpace(acceptLanguage) == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	if index == 0 {
		return Arabic
	}
	return English
}

// Pick returns the localized value, or the other side if the preferred one is empty.
func Pick(lang Lang, en, ar string) string {
	if lang == Arabic {
		if ar != "" {
			return ar
		}
		return en
	}
	if en != "" {
		return en
	}
	return ar
}

type ctxKey struct{}

func WithLang(ctx context.Context, lang Lang) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// FromContext returns the request language, Arabic when none was negotiated.
func FromContext(ctx context.Context) Lang {
	if lang, ok := ctx.Value(ctxKey{}).(Lang); ok {
		return lang
	}
	return Arabic
}
