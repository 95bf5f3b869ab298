package audit

import (
	"time"

	"lifeplan/internal/recommendation"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Submission is one outbound recommendation call.
type Submission struct {
	ID          string
	SessionID   string
	Data        recommendation.FormData
	Outcome     string
	StatusCode  *int
	ResultCount int
	Error       string
	Duration    time.Duration
	CreatedAt   time.Time
}
