// Package drag contains the drag/resize interaction state machine.
//
// The machine owns the live-edit session: pointer-down starts tracking,
// pointer-move updates the proposed bounds and re-runs the constraint checks,
// pointer-up commits or snaps back. Rollback is free before commit because no
// store mutation happens while tracking.
package drag

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/gantt/internal/core/schedule"
	"github.com/example/gantt/internal/core/timescale"
	"github.com/example/gantt/internal/models"
)

// Mode identifies what part of the milestone the gesture grabbed.
type Mode string

// Gesture modes.
const (
	ModeMove        Mode = "move"
	ModeResizeStart Mode = "resize-start"
	ModeResizeEnd   Mode = "resize-end"
)

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMove, ModeResizeStart, ModeResizeEnd:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown drag mode %q (expected move, resize-start or resize-end)", s)
	}
}

// State is the machine state: Idle or Tracking. Commit and cancel resolve
// back to Idle within a single call, so they are not observable states.
type State int

// Machine states.
const (
	StateIdle State = iota
	StateTracking
)

// Session is the ephemeral state of one active gesture.
type Session struct {
	MilestoneID    string
	Mode           Mode
	OriginStart    time.Time
	OriginEnd      time.Time
	PointerOriginX float64
	LiveStart      time.Time
	LiveEnd        time.Time
	Valid          bool
	Conflicts      []string // sibling overlaps, advisory while tracking
	Violations     []string // dependency order violations, advisory while tracking
}

// CommitResult describes a successful commit: the updated milestone plus the
// origin bounds the caller needs to roll back on persistence failure.
type CommitResult struct {
	Milestone   *models.Milestone
	OriginStart time.Time
	OriginEnd   time.Time
}

// Machine is the drag/resize state machine. At most one session is active at
// a time; single-threaded by design, driven from the host's event loop.
type Machine struct {
	store       *schedule.Store
	mapper      timescale.Mapper
	minDuration time.Duration

	state   State
	session *Session
}

// NewMachine creates an idle machine. minDuration is the resize floor; zero
// falls back to one unit of the mapper's scale.
func NewMachine(store *schedule.Store, mapper timescale.Mapper, minDuration time.Duration) *Machine {
	if minDuration <= 0 {
		minDuration = mapper.Scale.Unit()
	}
	return &Machine{store: store, mapper: mapper, minDuration: minDuration}
}

// State returns the current machine state.
func (m *Machine) State() State {
	return m.state
}

// Active returns a copy of the live session, or nil when idle. The copy lets
// the renderer draw in-progress bounds without reaching into machine state.
func (m *Machine) Active() *Session {
	if m.state != StateTracking {
		return nil
	}
	c := *m.session
	c.Conflicts = append([]string(nil), m.session.Conflicts...)
	c.Violations = append([]string(nil), m.session.Violations...)
	return &c
}

// SetMapper swaps the geometry mapper. A scale change invalidates every
// pixel position captured so far, so any tracking session is cancelled.
func (m *Machine) SetMapper(mapper timescale.Mapper) {
	if m.state == StateTracking {
		m.cancel()
	}
	m.mapper = mapper
}

// Begin starts tracking a gesture on an editable milestone. A pointer-down
// while already tracking is rejected and the active session stays untouched.
func (m *Machine) Begin(milestoneID string, mode Mode, pointerX float64) error {
	if m.state == StateTracking {
		return ErrSessionActive
	}
	target, err := m.store.Get(milestoneID)
	if err != nil {
		return err
	}
	if !target.Editable {
		return fmt.Errorf("%w: %s", ErrNotEditable, milestoneID)
	}

	m.session = &Session{
		MilestoneID:    milestoneID,
		Mode:           mode,
		OriginStart:    target.Start,
		OriginEnd:      target.End,
		PointerOriginX: pointerX,
		LiveStart:      target.Start,
		LiveEnd:        target.End,
	}
	m.state = StateTracking
	m.revalidate()
	return nil
}

// Update recomputes the live bounds from the current pointer position and
// re-runs the constraint checks. Conflicts are advisory: tracking continues
// and the session just flips Valid.
func (m *Machine) Update(pointerX float64) error {
	if m.state != StateTracking {
		return ErrNoSession
	}
	s := m.session
	delta := m.mapper.DeltaDuration(pointerX - s.PointerOriginX)

	switch s.Mode {
	case ModeMove:
		s.LiveStart = s.OriginStart.Add(delta)
		s.LiveEnd = s.OriginEnd.Add(delta)
	case ModeResizeStart:
		start := s.OriginStart.Add(delta)
		floor := s.OriginEnd.Add(-m.minDuration)
		if start.After(floor) {
			start = floor
		}
		s.LiveStart = start
		s.LiveEnd = s.OriginEnd
	case ModeResizeEnd:
		end := s.OriginEnd.Add(delta)
		floor := s.OriginStart.Add(m.minDuration)
		if end.Before(floor) {
			end = floor
		}
		s.LiveStart = s.OriginStart
		s.LiveEnd = end
	}

	m.revalidate()
	return nil
}

// End resolves the session on pointer-up. A valid session commits the live
// bounds to the store; an invalid one is discarded and the milestone snaps
// back to its origin bounds.
func (m *Machine) End() (*CommitResult, error) {
	if m.state != StateTracking {
		return nil, ErrNoSession
	}
	s := m.session

	// Authoritative re-check at commit time.
	m.revalidate()
	if !s.Valid {
		conflicts := append(append([]string(nil), s.Conflicts...), s.Violations...)
		m.cancel()
		return nil, fmt.Errorf("%w: %s", ErrCommitConflict, strings.Join(conflicts, ", "))
	}

	target, err := m.store.Get(s.MilestoneID)
	if err != nil {
		m.cancel()
		return nil, err
	}
	target.Start = s.LiveStart
	target.End = s.LiveEnd
	if err := m.store.Upsert(target); err != nil {
		m.cancel()
		return nil, err
	}

	committed, err := m.store.Get(s.MilestoneID)
	if err != nil {
		m.cancel()
		return nil, err
	}
	result := &CommitResult{
		Milestone:   committed,
		OriginStart: s.OriginStart,
		OriginEnd:   s.OriginEnd,
	}
	m.cancel()
	return result, nil
}

// Cancel discards the session without mutating the store.
func (m *Machine) Cancel() error {
	if m.state != StateTracking {
		return ErrNoSession
	}
	m.cancel()
	return nil
}

func (m *Machine) cancel() {
	m.state = StateIdle
	m.session = nil
}

// revalidate runs the overlap and dependency-order checks against the live
// bounds and updates the session's validity.
func (m *Machine) revalidate() {
	s := m.session
	candidate, err := m.store.Get(s.MilestoneID)
	if err != nil {
		s.Valid = false
		return
	}
	candidate.Start = s.LiveStart
	candidate.End = s.LiveEnd

	s.Conflicts = schedule.CheckOverlap(candidate, m.store.Siblings(s.MilestoneID))
	s.Violations = schedule.CheckDependencyOrder(candidate, func(id string) (*models.Milestone, bool) {
		dep, err := m.store.Get(id)
		return dep, err == nil
	})
	s.Valid = len(s.Conflicts) == 0 && len(s.Violations) == 0
}
