package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTranslationService struct {
	value string
	err   error
}

func (s stubTranslationService) Translate(context.Context, string, string, map[string]any) (string, error) {
	return s.value, s.err
}

func TestResolveLocalizedValue(t *testing.T) {
	t.Parallel()
	values := map[string]string{
		"en":    "Budget remaining",
		"af":    "Begroting oor",
		"af-na": "Begroting beskikbaar",
	}
	assert.Equal(t, "Begroting beskikbaar", ResolveLocalizedValue(values, "af-NA", "fallback"))
	assert.Equal(t, "Begroting oor", ResolveLocalizedValue(values, "af_ZA", "fallback"))
	assert.Equal(t, "Budget remaining", ResolveLocalizedValue(values, "fr", "Budget remaining"))
	assert.Equal(t, "x", ResolveLocalizedValue(nil, "af", "x"))
}

func TestTranslationsFallBackToDefaultLocale(t *testing.T) {
	t.Parallel()
	tr := Translations{"dashboard.recent.title": {"default": "Latest"}}
	out, err := tr.Translate(context.Background(), "dashboard.recent.title", "de", nil)
	assert.NoError(t, err)
	assert.Equal(t, "Latest", out)

	out, _ = tr.Translate(context.Background(), "missing", "de", nil)
	assert.Equal(t, "", out)
}

func TestTranslateOrFallback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	assert.Equal(t, "Paneel", translateOrFallback(ctx, stubTranslationService{value: "Paneel"}, "dashboard.navbar.brand", "af", "Dashboard", nil))
	assert.Equal(t, "Dashboard", translateOrFallback(ctx, stubTranslationService{err: errors.New("boom")}, "dashboard.navbar.brand", "af", "Dashboard", nil))
	assert.Equal(t, "dashboard.navbar.brand", translateOrFallback(ctx, nil, "dashboard.navbar.brand", "af", "", nil))
}
