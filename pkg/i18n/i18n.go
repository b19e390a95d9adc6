// Package i18n resolves the request language and translates public error
// messages. French is the portal's primary language.
package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	French  = language.French
	English = language.English

	supported = []language.Tag{French, English}
	matcher   = language.NewMatcher(supported)
)

type ctxKey struct{}

// Translator resolves language tags and renders catalog messages.
type Translator struct {
	fallback language.Tag
	catalog  *catalog.Builder
}

// New builds a translator; defaultLang falls back to French when unsupported.
func New(defaultLang string) *Translator {
	fallback := French
	if tag, err := language.Parse(strings.TrimSpace(defaultLang)); err == nil {
		_, idx, conf := matcher.Match(tag)
		if conf != language.No {
			fallback = supported[idx]
		}
	}
	return &Translator{fallback: fallback, catalog: buildCatalog()}
}

// Default returns the fallback language.
func (t *Translator) Default() language.Tag {
	return t.fallback
}

// Match picks the best supported language for an Accept-Language header value.
func (t *Translator) Match(acceptLanguage string) language.Tag {
	if strings.TrimSpace(acceptLanguage) == "" {
		return t.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return t.fallback
	}
	return supported[idx]
}

// Translate renders the message registered under key, or ok=false when none exists.
func (t *Translator) Translate(tag language.Tag, key string) (string, bool) {
	lang := baseOf(tag)
	if _, ok := translations[lang]; !ok {
		lang = baseOf(t.fallback)
	}
	if _, ok := translations[lang][key]; !ok {
		return "", false
	}
	printer := message.NewPrinter(language.Make(lang), message.Catalog(t.catalog))
	return printer.Sprintf(key), true
}

func baseOf(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// WithLanguage stores the resolved language on ctx.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// LanguageFrom returns the language stored on ctx.
func LanguageFrom(ctx context.Context) (language.Tag, bool) {
	if ctx == nil {
		return language.Und, false
	}
	tag, ok := ctx.Value(ctxKey{}).(language.Tag)
	return tag, ok
}

func buildCatalog() *catalog.Builder {
	builder := catalog.NewBuilder(catalog.Fallback(French))
	for lang, messages := range translations {
		tag := language.Make(lang)
		for key, msg := range messages {
			_ = builder.SetString(tag, key, msg)
		}
	}
	return builder
}

type localizerKey struct{}

// Attach stores both the resolved language and the translator on ctx so
// response writers can localize without holding a translator themselves.
func (t *Translator) Attach(ctx context.Context, tag language.Tag) context.Context {
	ctx = WithLanguage(ctx, tag)
	return context.WithValue(ctx, localizerKey{}, t)
}

// Localize translates key for the language attached to ctx.
func Localize(ctx context.Context, key string) (string, bool) {
	if ctx == nil {
		return "", false
	}
	t, ok := ctx.Value(localizerKey{}).(*Translator)
	if !ok || t == nil {
		return "", false
	}
	tag, ok := LanguageFrom(ctx)
	if !ok {
		tag = t.fallback
	}
	return t.Translate(tag, key)
}
