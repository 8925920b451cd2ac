// Package booking runs the verified-booking workflow: a code is requested
// for a tentative booking, the backend returns a session key, and the
// booking is created only with a matching code inside that session.
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotelindigo/internal/apiclient"
)

type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseCodeRequested Phase = "code_requested"
	PhaseCodeEntered   Phase = "code_entered"
	PhaseConfirmed     Phase = "confirmed"
	PhaseFailed        Phase = "failed"
)

const DefaultCodeMinLength = 6

// Confirmation is what is kept of the last booking the backend accepted.
type Confirmation struct {
	Type        Type            `json:"type"`
	Reference   string          `json:"reference"`
	ResourceID  int64           `json:"resource_id"`
	Booking     json.RawMessage `json:"booking,omitempty"`
	ConfirmedAt time.Time       `json:"confirmed_at"`
}

type Snapshot struct {
	Phase            Phase         `json:"phase"`
	Type             Type          `json:"type,omitempty"`
	AwaitingCode     bool          `json:"awaiting_code"`
	Draft            *Request      `json:"draft,omitempty"`
	Error            string        `json:"error,omitempty"`
	LastConfirmation *Confirmation `json:"last_confirmation,omitempty"`
}

type Option func(*Workflow)

func WithCodeMinLength(n int) Option {
	return func(w *Workflow) {
		if n > 0 {
			w.minCode = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// WithOnChange is called after every phase change with the new snapshot.
func WithOnChange(fn func(Snapshot)) Option {
	return func(w *Workflow) { w.onChange = fn }
}

// WithOnConfirmed is called once per booking the backend accepted.
func WithOnConfirmed(fn func(ctx context.Context, c Confirmation)) Option {
	return func(w *Workflow) { w.onConfirmed = fn }
}

// Workflow is the single booking dialog of the session. Calls are safe from
// several goroutines; network calls run without the lock held.
type Workflow struct {
	gateway Gateway
	avail   AvailabilityChecker
	session SessionChecker
	minCode int
	now     func() time.Time

	onChange    func(Snapshot)
	onConfirmed func(ctx context.Context, c Confirmation)

	mu         sync.Mutex
	gen        uint64
	phase      Phase
	draft      variant
	request    *Request
	sessionKey string
	code       string
	lastErr    string
	last       *Confirmation
}

func NewWorkflow(gateway Gateway, avail AvailabilityChecker, session SessionChecker, opts ...Option) *Workflow {
	w := &Workflow{
		gateway: gateway,
		avail:   avail,
		session: session,
		minCode: DefaultCodeMinLength,
		now:     time.Now,
		phase:   PhaseIdle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Workflow) snapshotLocked() Snapshot {
	s := Snapshot{
		Phase:            w.phase,
		AwaitingCode:     w.sessionKey != "",
		Error:            w.lastErr,
		LastConfirmation: w.last,
	}
	if w.draft != nil {
		s.Type = w.draft.kind()
	}
	if w.request != nil {
		req := *w.request
		s.Draft = &req
	}
	return s
}

// Start validates req, pre-checks the slot and asks the backend for a
// verification code. A new Start replaces any session held before.
func (w *Workflow) Start(ctx context.Context, req Request) (Snapshot, error) {
	if w.session != nil && !w.session.Authenticated(ctx) {
		return w.Snapshot(), ErrLoginRequired
	}
	v, err := req.variant()
	if err != nil {
		return w.Snapshot(), err
	}

	if cand, ok := v.candidate(); ok && w.avail != nil {
		status, err := w.avail.Check(ctx, cand)
		switch {
		case err != nil:
			// the backend checks again when the code is requested
			log.Printf("booking_precheck type=%s resource_id=%d error=%q", v.kind(), v.resourceID(), err.Error())
		case status.Occupied:
			return w.Snapshot(), &OccupiedError{Type: v.kind(), FreeAt: status.FreeAt}
		}
	}

	w.mu.Lock()
	w.gen++
	gen := w.gen
	w.sessionKey = ""
	w.code = ""
	w.mu.Unlock()

	path, payload := v.codeRequest()
	key, err := w.gateway.RequestCode(ctx, path, payload)
	if err == nil && key == "" {
		err = ErrNoSession
	}

	w.mu.Lock()
	if gen != w.gen {
		w.mu.Unlock()
		return w.Snapshot(), ErrSuperseded
	}
	if err != nil {
		w.phase = PhaseFailed
		w.lastErr = apiclient.MessageOf(err, "Not available")
		snap := w.snapshotLocked()
		w.mu.Unlock()
		w.notify(snap)
		return snap, err
	}
	w.phase = PhaseCodeRequested
	w.draft = v
	w.request = &req
	w.sessionKey = key
	w.lastErr = ""
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.notify(snap)
	log.Printf("booking_code_requested type=%s resource_id=%d", v.kind(), v.resourceID())
	return snap, nil
}

// Confirm submits code with the held session key. A short code or a missing
// session fails before anything is sent. On failure the key is kept so the
// user can retry.
func (w *Workflow) Confirm(ctx context.Context, code string) (*Confirmation, error) {
	code = strings.TrimSpace(code)
	if len(code) < w.minCode {
		return nil, ErrCodeTooShort
	}

	w.mu.Lock()
	if w.sessionKey == "" || w.draft == nil {
		w.mu.Unlock()
		return nil, ErrNoSession
	}
	w.phase = PhaseCodeEntered
	w.code = code
	w.lastErr = ""
	gen := w.gen
	v := w.draft
	key := w.sessionKey
	snap := w.snapshotLocked()
	w.mu.Unlock()
	w.notify(snap)

	path, payload := v.creation(code, key)
	raw, err := w.gateway.Create(ctx, path, payload)

	w.mu.Lock()
	if gen != w.gen {
		w.mu.Unlock()
		return nil, ErrSuperseded
	}
	if err != nil {
		w.phase = PhaseFailed
		w.lastErr = apiclient.MessageOf(err, "Error processing the reservation")
		snap := w.snapshotLocked()
		w.mu.Unlock()
		w.notify(snap)
		return nil, err
	}

	conf := &Confirmation{
		Type:        v.kind(),
		Reference:   reference(v.kind(), raw),
		ResourceID:  v.resourceID(),
		Booking:     raw,
		ConfirmedAt: w.now(),
	}
	w.phase = PhaseConfirmed
	w.last = conf
	w.draft = nil
	w.request = nil
	w.sessionKey = ""
	w.code = ""
	snap = w.snapshotLocked()
	w.mu.Unlock()

	log.Printf("booking_confirmed type=%s reference=%s", conf.Type, conf.Reference)
	if w.onConfirmed != nil {
		w.onConfirmed(ctx, *conf)
	}
	w.notify(snap)
	return conf, nil
}

// Dismiss closes the dialog. The session key, code and draft are dropped and
// results of calls still in flight are ignored.
func (w *Workflow) Dismiss() Snapshot {
	w.mu.Lock()
	w.gen++
	w.phase = PhaseIdle
	w.draft = nil
	w.request = nil
	w.sessionKey = ""
	w.code = ""
	w.lastErr = ""
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.notify(snap)
	return snap
}

func (w *Workflow) LastConfirmation() (Confirmation, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return Confirmation{}, ErrNoConfirmation
	}
	return *w.last, nil
}

func (w *Workflow) notify(s Snapshot) {
	if w.onChange != nil {
		w.onChange(s)
	}
}

// reference builds a readable booking reference from the created resource's
// id, or a random one when the backend sent none.
func reference(t Type, raw json.RawMessage) string {
	var created struct {
		ID json.Number `json:"id"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &created); err != nil {
			created.ID = ""
		}
	}
	if created.ID != "" {
		return fmt.Sprintf("%s-%s", strings.ToUpper(string(t)), created.ID)
	}
	return fmt.Sprintf("%s-%s", strings.ToUpper(string(t)), strings.ToUpper(uuid.NewString()[:8]))
}
