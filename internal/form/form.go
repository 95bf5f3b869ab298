package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"lifeplan/internal/currency"
	"lifeplan/internal/recommendation"

	"go.uber.org/zap"
)

// ErrorNotice is the toast shown for any failed submission.
const ErrorNotice = "Something went wrong. Please try again."

var (
	ErrUnknownField       = errors.New("unknown form field")
	ErrInputsDisabled     = errors.New("inputs are disabled while a submission is pending")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

// Snapshot is a point-in-time copy of a form.
type Snapshot struct {
	Data            recommendation.FormData         `json:"data"`
	State           State                           `json:"state"`
	Recommendations []recommendation.Recommendation `json:"recommendations"`
	Notice          string                          `json:"notice,omitempty"`
}

func (s Snapshot) Loading() bool   { return s.State == Submitting }
func (s Snapshot) Submitted() bool { return s.State != Idle }

// Form holds the state of one user's form and drives its submission.
type Form struct {
	mu      sync.Mutex
	snap    Snapshot
	pending recommendation.FormData
	// claimed is set once a Finish has taken the pending request.
	claimed bool
	client  recommendation.Client
	logger  *zap.Logger

	// notifyMu orders observer calls so the last one always sees the
	// latest state.
	notifyMu sync.Mutex
	onChange func(Snapshot)
}

func New(client recommendation.Client, logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Form{client: client, logger: logger}
}

// OnChange registers fn to be called with a fresh snapshot after every
// state change. fn runs without the form lock held, but calls never overlap.
func (f *Form) OnChange(fn func(Snapshot)) {
	f.mu.Lock()
	f.onChange = fn
	f.mu.Unlock()
}

// Set updates one field. Income keeps digits only.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	if err := f.set(field, value); err != nil {
		f.mu.Unlock()
		return err
	}
	f.mu.Unlock()

	f.notify()
	return nil
}

// Update applies every field of data.
func (f *Form) Update(data recommendation.FormData) error {
	f.mu.Lock()
	for _, kv := range [][2]string{
		{"age", data.Age},
		{"income", data.Income},
		{"dependents", data.Dependents},
		{"risk", data.Risk},
	} {
		if err := f.set(kv[0], kv[1]); err != nil {
			f.mu.Unlock()
			return err
		}
	}
	f.mu.Unlock()

	f.notify()
	return nil
}

func (f *Form) set(field, value string) error {
	if f.snap.State == Submitting {
		return ErrInputsDisabled
	}

	switch field {
	case "age":
		f.snap.Data.Age = value
	case "income":
		f.snap.Data.Income = currency.Digits(value)
	case "dependents":
		f.snap.Data.Dependents = value
	case "risk":
		f.snap.Data.Risk = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Begin moves the form to Submitting and freezes the data to send.
func (f *Form) Begin() error {
	f.mu.Lock()
	if f.snap.State == Submitting {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}

	f.snap.State = Submitting
	f.snap.Recommendations = nil
	f.snap.Notice = ""
	f.pending = f.snap.Data
	f.claimed = false
	f.mu.Unlock()

	f.notify()
	return nil
}

// Finish sends the data frozen by Begin and records the outcome. The form
// never stays in Submitting after Finish returns, whatever the client does.
// Only the first Finish after a Begin sends anything; later calls return nil.
func (f *Form) Finish(ctx context.Context) (err error) {
	f.mu.Lock()
	if f.snap.State != Submitting || f.claimed {
		f.mu.Unlock()
		return nil
	}
	f.claimed = true
	data := f.pending
	f.mu.Unlock()

	var recs []recommendation.Recommendation

	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("Unexpected error", zap.Any("error", r))
			err = fmt.Errorf("unexpected error: %v", r)
		}
		f.complete(recs, err)
	}()

	recs, err = f.client.Recommend(ctx, data)
	if err != nil {
		f.logger.Warn("recommendation request failed", zap.String("message", err.Error()))
	}
	return err
}

// Submit is Begin followed by Finish.
func (f *Form) Submit(ctx context.Context) error {
	if err := f.Begin(); err != nil {
		return err
	}
	return f.Finish(ctx)
}

func (f *Form) complete(recs []recommendation.Recommendation, err error) {
	f.mu.Lock()
	if err != nil {
		f.snap.State = Failed
		f.snap.Recommendations = nil
		f.snap.Notice = ErrorNotice
	} else {
		f.snap.State = Succeeded
		if recs == nil {
			recs = []recommendation.Recommendation{}
		}
		f.snap.Recommendations = recs
	}
	f.claimed = false
	f.mu.Unlock()

	f.notify()
}

// Snapshot returns a copy of the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.copyLocked()
}

// TakeNotice returns the pending notification and clears it.
func (f *Form) TakeNotice() string {
	f.mu.Lock()
	notice := f.snap.Notice
	f.snap.Notice = ""
	f.mu.Unlock()

	if notice != "" {
		f.notify()
	}
	return notice
}

// Restore replaces the state with snap. A snapshot caught mid-submission
// has lost its request, so it comes back as a failure.
func (f *Form) Restore(snap Snapshot) {
	f.mu.Lock()
	f.snap = snap
	if snap.Recommendations != nil {
		f.snap.Recommendations = append([]recommendation.Recommendation{}, snap.Recommendations...)
	}
	if f.snap.State == Submitting {
		f.snap.State = Failed
		f.snap.Recommendations = nil
		f.snap.Notice = ErrorNotice
	}
	f.claimed = false
	f.mu.Unlock()
}

func (f *Form) copyLocked() Snapshot {
	out := f.snap
	if f.snap.Recommendations != nil {
		out.Recommendations = append([]recommendation.Recommendation{}, f.snap.Recommendations...)
	}
	return out
}

func (f *Form) notify() {
	f.notifyMu.Lock()
	defer f.notifyMu.Unlock()

	f.mu.Lock()
	fn := f.onChange
	snap := f.copyLocked()
	f.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}
