package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symrand/adapters/generator"
	"symrand/app"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	kernel := app.NewKernel(generator.NewMersenneTwister(), nil)
	a, err := NewApp(Config{Prefix: "/docs/"}, kernel.Docs(), nil)
	require.NoError(t, err)
	return a
}

func TestIndexListsBuiltins(t *testing.T) {
	a := newTestApp(t)

	w := httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, name := range []string{"RandomInteger", "RandomReal", "RandomComplex", "RandomChoice", "RandomSample", "SeedRandom", "$RandomState"} {
		assert.Contains(t, body, `href="/docs/builtins/`+name+`"`)
	}
}

func TestBuiltinPageRendersMarkdown(t *testing.T) {
	a := newTestApp(t)

	w := httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/builtins/RandomReal", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<h1>RandomReal</h1>")
	assert.Contains(t, w.Body.String(), "<code>RandomReal[]</code>")
}

func TestUnknownBuiltinIsNotFound(t *testing.T) {
	a := newTestApp(t)

	w := httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/builtins/RandomVariate", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenderMarkdown(t *testing.T) {
	html := RenderMarkdown("`SeedRandom[n]` resets the *generator*.")
	assert.Contains(t, html, "<code>SeedRandom[n]</code>")
	assert.Contains(t, html, "<em>generator</em>")
}
