// Package api serves the sampling kernel over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"symrand/app"
	"symrand/domain/core"
	"symrand/domain/expr"
	"symrand/internal"
	apperrors "symrand/internal/errors"
	"symrand/internal/evaluation"
	"symrand/internal/randstate"
	"symrand/internal/summary"
	"symrand/ports"
)

// EvaluateRequest is the body of POST /v1/evaluate
type EvaluateRequest struct {
	Session string    `json:"session"`
	Expr    expr.JSON `json:"expr"`
	Summary bool      `json:"summary"`
}

// EvaluateResponse is the reply of POST /v1/evaluate
type EvaluateResponse struct {
	Session   string           `json:"session"`
	Result    expr.JSON        `json:"result"`
	InputForm string           `json:"input_form"`
	Messages  []ports.Message  `json:"messages"`
	Summary   *summary.Summary `json:"summary,omitempty"`
}

// StateResponse is the reply of GET /v1/state
type StateResponse struct {
	Session string `json:"session"`
	State   string `json:"state"`
}

// Handler evaluates expressions against per-session random states. The
// kernel owns a single generator, so at most one evaluation runs at a time.
type Handler struct {
	kernel *app.Kernel
	repo   ports.ConfigRepository
	sem    *semaphore.Weighted
	logger *internal.Logger
}

// NewHandler creates a handler
func NewHandler(kernel *app.Kernel, repo ports.ConfigRepository, logger *internal.Logger) *Handler {
	if logger == nil {
		logger = internal.NewDiscardLogger()
	}
	return &Handler{
		kernel: kernel,
		repo:   repo,
		sem:    semaphore.NewWeighted(1),
		logger: logger.Named("api"),
	}
}

// Register mounts the routes on r
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Health)
	v1 := r.Group("/v1")
	v1.POST("/evaluate", h.Evaluate)
	v1.GET("/state", h.State)
}

// NewRouter builds a gin engine serving h
func NewRouter(h *Handler, mode string) *gin.Engine {
	gin.SetMode(mode)
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())
	h.Register(r)
	return r
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Evaluate evaluates one expression in a session
func (h *Handler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error(), "code": apperrors.CodeInvalidInput})
		return
	}
	if req.Expr.Expr == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expr is required", "code": apperrors.CodeInvalidInput})
		return
	}

	sessionID := core.NewSessionID()
	if req.Session != "" {
		id, err := core.ParseSessionID(req.Session)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": apperrors.CodeInvalidInput})
			return
		}
		sessionID = id
	}

	result, ev, ok := h.evaluate(c, sessionID, req.Expr.Expr)
	if !ok {
		return
	}

	resp := EvaluateResponse{
		Session:   sessionID.String(),
		Result:    expr.JSON{Expr: result},
		InputForm: result.String(),
		Messages:  ev.Messages(),
	}
	if resp.Messages == nil {
		resp.Messages = []ports.Message{}
	}
	if req.Summary {
		if s, ok := summary.Of(result); ok {
			resp.Summary = s
		}
	}
	c.JSON(http.StatusOK, resp)
}

// State returns the Random State Value of a session
func (h *Handler) State(c *gin.Context) {
	sessionID, err := core.ParseSessionID(c.Query("session"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": apperrors.CodeInvalidInput})
		return
	}

	result, _, ok := h.evaluate(c, sessionID, expr.NewSymbol(randstate.StateName))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, StateResponse{Session: sessionID.String(), State: result.String()})
}

// evaluate runs the kernel under the semaphore. On failure it has already
// written the error response.
func (h *Handler) evaluate(c *gin.Context, sessionID core.SessionID, e expr.Expr) (expr.Expr, *evaluation.Evaluation, bool) {
	ctx := c.Request.Context()
	if err := h.sem.Acquire(ctx, 1); err != nil {
		appErr := apperrors.InternalError("request cancelled while waiting")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": appErr.Message, "code": appErr.Code})
		return nil, nil, false
	}
	defer h.sem.Release(1)

	ev := evaluation.New(sessionID, h.repo.Scoped(sessionID), h.logger)
	result, err := h.kernel.Evaluate(ctx, ev, e)
	if err != nil {
		code := apperrors.GetCode(err)
		h.logger.Error("evaluation of %s failed (%s): %v", e, code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": code})
		return nil, nil, false
	}
	return result, ev, true
}
