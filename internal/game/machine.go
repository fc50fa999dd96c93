// Package game implements the per-player progress state machine.
//
// A player alternates between two phases on every level: first the level's flag
// has to be found, then a location riddle is handed out whose unlock code opens the
// next level. Transitions here are pure; persisting them is the caller's job.
package game

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/dtroode/quicksnatch-server/internal/catalog"
	"github.com/dtroode/quicksnatch-server/internal/model"
)

// CongratulationsPath is where finished players are sent.
const CongratulationsPath = "/congratulations"

// LevelPath is the view of level n.
func LevelPath(n int) string {
	return fmt.Sprintf("/level/%d", n)
}

// HintPath is the location hint view of level n.
func HintPath(n int) string {
	return fmt.Sprintf("/location_hint/%d", n)
}

// RedirectError tells the caller the requested action does not match the
// player's position and where the player belongs instead.
type RedirectError struct {
	Path string
	Err  error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("%s, redirect to %s", e.Err, e.Path)
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a successful transition.
type Result struct {
	Progress model.Progress
	Redirect string
	Message  string
}

// Machine applies transitions against a catalog.
type Machine struct {
	catalog  *catalog.Catalog
	assigner Assigner
}

// NewMachine creates a Machine.
func NewMachine(c *catalog.Catalog, assigner Assigner) *Machine {
	return &Machine{catalog: c, assigner: assigner}
}

// Catalog returns the catalog the machine plays on.
func (m *Machine) Catalog() *catalog.Catalog {
	return m.catalog
}

// Position is the path matching the player's current state.
func (m *Machine) Position(p model.Progress) string {
	switch p.Phase {
	case model.PhaseCompleted:
		return CongratulationsPath
	case model.PhaseAwaitingLocation:
		return HintPath(p.CurrentLevel)
	default:
		return LevelPath(p.CurrentLevel)
	}
}

func (m *Machine) redirect(p model.Progress, err error) error {
	return &RedirectError{Path: m.Position(p), Err: err}
}

// ViewLevel returns level data when the player is looking for that level's flag.
func (m *Machine) ViewLevel(p model.Progress, level int) (model.Level, error) {
	if !m.catalog.ValidLevel(level) {
		return model.Level{}, m.redirect(p, model.ErrInvalidLevel)
	}
	if p.Phase != model.PhaseAwaitingFlag || p.CurrentLevel != level {
		return model.Level{}, m.redirect(p, model.ErrWrongPhase)
	}
	return m.catalog.Level(level)
}

// ViewHint returns the assigned hint when the player is looking for that level's location.
func (m *Machine) ViewHint(p model.Progress, level int) (model.Hint, error) {
	if !m.catalog.ValidLevel(level) {
		return model.Hint{}, m.redirect(p, model.ErrInvalidLevel)
	}
	if p.Phase != model.PhaseAwaitingLocation || p.CurrentLevel != level || p.AssignedHint == nil {
		return model.Hint{}, m.redirect(p, model.ErrWrongPhase)
	}
	return m.catalog.Hint(*p.AssignedHint)
}

// SubmitFlag verifies a flag for level and, on a match, assigns a location hint.
func (m *Machine) SubmitFlag(p model.Progress, level int, candidate string, now time.Time) (Result, error) {
	if !m.catalog.ValidLevel(level) {
		return Result{}, m.redirect(p, model.ErrInvalidLevel)
	}
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return Result{}, model.ErrEmptySubmission
	}
	if p.Phase != model.PhaseAwaitingFlag || p.CurrentLevel != level {
		return Result{}, m.redirect(p, model.ErrWrongPhase)
	}

	lvl, err := m.catalog.Level(level)
	if err != nil {
		return Result{}, err
	}
	if !Matches(lvl.Flag, candidate) {
		return Result{}, model.ErrIncorrectFlag
	}

	next, err := m.assigner.Assign(p.Clone(), level)
	if err != nil {
		return Result{}, fmt.Errorf("failed to assign location hint: %w", err)
	}
	next.Phase = model.PhaseAwaitingLocation
	next.Version = p.Version + 1
	next.UpdatedAt = now

	return Result{
		Progress: next,
		Redirect: HintPath(level),
		Message:  "Flag correct! Proceed to find the location.",
	}, nil
}

// SubmitLocation verifies the unlock code of the assigned hint and advances the player.
func (m *Machine) SubmitLocation(p model.Progress, level int, candidate string, now time.Time) (Result, error) {
	if !m.catalog.ValidLevel(level) {
		return Result{}, m.redirect(p, model.ErrInvalidLevel)
	}
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return Result{}, model.ErrEmptySubmission
	}
	if p.Phase != model.PhaseAwaitingLocation || p.CurrentLevel != level || p.AssignedHint == nil {
		return Result{}, m.redirect(p, model.ErrWrongPhase)
	}

	hint, err := m.catalog.Hint(*p.AssignedHint)
	if err != nil {
		return Result{}, err
	}
	if !Matches(hint.Code, candidate) {
		return Result{}, model.ErrIncorrectCode
	}

	next := p.Clone()
	if !next.HasCompleted(level) {
		next.CompletedLevels = append(next.CompletedLevels, level)
	}
	next.AssignedHint = nil
	next.CurrentLevel = level + 1
	next.LevelStartedAt = now
	at := now
	next.LastSubmissionAt = &at
	next.Version = p.Version + 1
	next.UpdatedAt = now

	if next.CurrentLevel > m.catalog.TotalLevels() {
		next.Phase = model.PhaseCompleted
		return Result{
			Progress: next,
			Redirect: CongratulationsPath,
			Message:  "Congratulations! You have completed all levels!",
		}, nil
	}

	next.Phase = model.PhaseAwaitingFlag
	return Result{
		Progress: next,
		Redirect: LevelPath(next.CurrentLevel),
		Message:  fmt.Sprintf("Location verified! Moving to level %d", next.CurrentLevel),
	}, nil
}

// Matches compares a submitted secret with the expected one in constant time.
func Matches(expected, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(candidate)) == 1
}
