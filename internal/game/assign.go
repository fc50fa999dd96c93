package game

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// Assigner picks the location hint handed out after a correct flag.
// It returns p with AssignedHint (and any bookkeeping) updated.
type Assigner interface {
	Assign(p model.Progress, level int) (model.Progress, error)
}

// StaticAssigner hands out the hint defined for the level itself.
type StaticAssigner struct {
	hintCount int
}

// NewStaticAssigner creates a StaticAssigner over a pool of hintCount hints.
func NewStaticAssigner(hintCount int) *StaticAssigner {
	return &StaticAssigner{hintCount: hintCount}
}

// Assign implements Assigner.
func (a *StaticAssigner) Assign(p model.Progress, level int) (model.Progress, error) {
	idx := level - 1
	if idx < 0 || idx >= a.hintCount {
		return p, model.ErrNoHintAvailable
	}
	p.AssignedHint = &idx
	return p, nil
}

// RandomAssigner draws uniformly from the hints the player has not seen in the
// current cycle. The cycle restarts once every hint has been handed out.
// Draw state lives in the player's progress, so players never share a pool.
type RandomAssigner struct {
	hintCount int

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomAssigner creates a RandomAssigner drawing from src.
func NewRandomAssigner(hintCount int, src rand.Source) *RandomAssigner {
	return &RandomAssigner{hintCount: hintCount, rnd: rand.New(src)}
}

// Assign implements Assigner.
func (a *RandomAssigner) Assign(p model.Progress, _ int) (model.Progress, error) {
	if a.hintCount <= 0 {
		return p, model.ErrNoHintAvailable
	}

	available := a.remaining(p.UsedHints)
	if len(available) == 0 {
		p.UsedHints = []int{}
		available = a.remaining(nil)
	}

	a.mu.Lock()
	idx := available[a.rnd.IntN(len(available))]
	a.mu.Unlock()

	p.AssignedHint = &idx
	p.UsedHints = append(p.UsedHints, idx)
	return p, nil
}

func (a *RandomAssigner) remaining(used []int) []int {
	out := make([]int, 0, a.hintCount)
	for i := 0; i < a.hintCount; i++ {
		if !slices.Contains(used, i) {
			out = append(out, i)
		}
	}
	return out
}
