package web

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"lifeplan/internal/audit"
	"lifeplan/internal/form"
	"lifeplan/internal/middleware"
	"lifeplan/internal/recommendation"
	"lifeplan/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	registry *session.Registry
	client   recommendation.Client
	logger   *zap.Logger
	pending  sync.WaitGroup

	// base outlives any single request; Shutdown cancels it so pending
	// submissions stop waiting on the upstream.
	base   context.Context
	cancel context.CancelFunc
}

func NewHandler(registry *session.Registry, client recommendation.Client, logger *zap.Logger) *Handler {
	base, cancel := context.WithCancel(context.Background())
	return &Handler{
		registry: registry,
		client:   client,
		logger:   logger,
		base:     base,
		cancel:   cancel,
	}
}

// GET /
func (h *Handler) Page(c *gin.Context) {
	f := h.registry.Form(c.Request.Context(), middleware.SessionID(c))

	notice := f.TakeNotice()
	c.HTML(http.StatusOK, "page", NewView(f.Snapshot(), notice))
}

// POST /submit
func (h *Handler) Submit(c *gin.Context) {
	id := middleware.SessionID(c)
	f := h.registry.Form(c.Request.Context(), id)

	var data recommendation.FormData
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	if err := f.Update(data); err != nil && !errors.Is(err, form.ErrInputsDisabled) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := f.Begin(); err != nil {
		// already pending: the page keeps polling the first submission
		h.logger.Info("submission ignored", zap.String("session", id), zap.Error(err))
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	ctx := audit.WithSession(h.base, id)

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		_ = f.Finish(ctx)
	}()

	c.Redirect(http.StatusSeeOther, "/")
}

// GET /status
func (h *Handler) Status(c *gin.Context) {
	snap := h.registry.Form(c.Request.Context(), middleware.SessionID(c)).Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"state":           snap.State,
		"loading":         snap.Loading(),
		"submitted":       snap.Submitted(),
		"data":            snap.Data,
		"recommendations": snap.Recommendations,
		"notice":          snap.Notice,
	})
}

// POST /api/recommendation
//
// Passes a JSON form straight through to the recommendation service for
// front ends hosted elsewhere.
func (h *Handler) Recommend(c *gin.Context) {
	var data recommendation.FormData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recs, err := h.client.Recommend(c.Request.Context(), data)
	if err != nil {
		h.logger.Warn("proxied recommendation failed", zap.String("message", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": form.ErrorNotice})
		return
	}

	if recs == nil {
		recs = []recommendation.Recommendation{}
	}
	c.JSON(http.StatusOK, recommendation.Response{Data: recs})
}

// Wait blocks until every submission started by Submit has completed.
func (h *Handler) Wait() {
	h.pending.Wait()
}

// Shutdown cancels pending submissions, which then settle as failures, and
// waits for them until ctx is done.
func (h *Handler) Shutdown(ctx context.Context) error {
	h.cancel()

	done := make(chan struct{})
	go func() {
		h.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
