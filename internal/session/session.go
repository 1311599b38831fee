// Package session models the confirm-then-save flow as an explicit workflow
// object scoped to one ticket-submission attempt: created when the structure
// gate accepts a draft, consumed exactly once by the save step, discarded by
// a new evaluation.
package session

import (
	"errors"
	"time"

	"github.com/tms-tools/supporthub/internal/domain/models"
)

var (
	ErrNotAccepted     = errors.New("workflow requires an accepted verdict")
	ErrAlreadyConsumed = errors.New("workflow already consumed")
)

// Workflow is a short-lived, single-use handle for persisting one accepted
// draft. Not safe for concurrent use; each submission attempt owns its own.
type Workflow struct {
	draft    string
	verdict  models.GateVerdict
	created  time.Time
	consumed bool
}

// NewWorkflow starts a save workflow from an accepted gate verdict.
func NewWorkflow(draft string, verdict models.GateVerdict) (*Workflow, error) {
	if !verdict.Accepted || verdict.Summary == nil {
		return nil, ErrNotAccepted
	}
	return &Workflow{
		draft:   draft,
		verdict: verdict,
		created: time.Now(),
	}, nil
}

// Consume hands out the verdict for persistence. A second call fails: the
// confirm-then-save flow saves one accepted evaluation at most once.
func (w *Workflow) Consume() (models.GateVerdict, error) {
	if w.consumed {
		return models.GateVerdict{}, ErrAlreadyConsumed
	}
	w.consumed = true
	return w.verdict, nil
}

// Draft returns the draft text the verdict was produced for.
func (w *Workflow) Draft() string {
	return w.draft
}

// CreatedAt reports when the gate accepted the draft.
func (w *Workflow) CreatedAt() time.Time {
	return w.created
}
