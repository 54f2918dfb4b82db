package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"symrand/internal"
	"symrand/ports"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// App serves the builtin documentation
type App struct {
	router    *chi.Mux
	builtins  map[string]ports.Builtin
	order     []ports.Builtin
	templates *template.Template
	prefix    string
	logger    *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	// Prefix is the path the app is mounted under, used in links
	Prefix string
}

// NewApp creates the documentation app for builtins
func NewApp(config Config, builtins []ports.Builtin, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.NewDiscardLogger()
	}
	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		builtins:  make(map[string]ports.Builtin, len(builtins)),
		order:     builtins,
		templates: templates,
		prefix:    strings.TrimSuffix(config.Prefix, "/"),
		logger:    logger.Named("docs"),
	}
	for _, b := range builtins {
		app.builtins[b.Name()] = b
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app, nil
}

// ServeHTTP implements http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/builtins/{name}", a.handleBuiltin)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.render(w, "index.html", map[string]any{
		"Prefix":   a.prefix,
		"Builtins": a.order,
	})
}

func (a *App) handleBuiltin(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	b, ok := a.builtins[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	a.render(w, "builtin.html", map[string]any{
		"Prefix": a.prefix,
		"Name":   b.Name(),
		"Body":   template.HTML(RenderMarkdown(b.Doc())),
	})
}

func (a *App) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, name, data); err != nil {
		a.logger.Error("render %s: %v", name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// RenderMarkdown converts builtin documentation to HTML
func RenderMarkdown(doc string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.SkipHTML})
	return string(markdown.ToHTML([]byte(doc), p, renderer))
}
