package audit

import (
	"context"
	"sync"
)

// Recorder defines the data-access contract for submission history.
type Recorder interface {
	Record(ctx context.Context, s Submission) error
}

type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Submission) error { return nil }

// MemoryRecorder keeps submissions in process.
type MemoryRecorder struct {
	mu          sync.Mutex
	submissions []Submission
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (m *MemoryRecorder) Record(_ context.Context, s Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = append(m.submissions, s)
	return nil
}

func (m *MemoryRecorder) Submissions() []Submission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Submission(nil), m.submissions...)
}
