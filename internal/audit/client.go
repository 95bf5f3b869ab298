package audit

import (
	"context"
	"errors"
	"time"

	"lifeplan/internal/recommendation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sessionKey struct{}

// WithSession tags ctx so recorded submissions carry the browser session.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

func sessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// Client records every call made through the wrapped recommendation client.
// A failing recorder is logged and never fails the call itself.
type Client struct {
	next     recommendation.Client
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

func NewClient(next recommendation.Client, recorder Recorder, logger *zap.Logger) *Client {
	return &Client{
		next:     next,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

func (c *Client) Recommend(ctx context.Context, data recommendation.FormData) ([]recommendation.Recommendation, error) {
	start := c.now()
	recs, err := c.next.Recommend(ctx, data)

	s := Submission{
		ID:          uuid.NewString(),
		SessionID:   sessionFrom(ctx),
		Data:        data,
		Outcome:     OutcomeSuccess,
		ResultCount: len(recs),
		Duration:    c.now().Sub(start),
		CreatedAt:   start.UTC(),
	}

	var statusErr *recommendation.StatusError
	if errors.As(err, &statusErr) {
		code := statusErr.Code
		s.StatusCode = &code
	}
	if err != nil {
		s.Outcome = OutcomeFailure
		s.ResultCount = 0
		s.Error = err.Error()
	}

	c.logger.Info("recommendation request",
		zap.String("id", s.ID),
		zap.String("session", s.SessionID),
		zap.String("outcome", s.Outcome),
		zap.Int("results", s.ResultCount),
		zap.Duration("duration", s.Duration),
	)

	if recErr := c.recorder.Record(context.WithoutCancel(ctx), s); recErr != nil {
		c.logger.Warn("failed to record submission", zap.String("id", s.ID), zap.Error(recErr))
	}

	return recs, err
}
