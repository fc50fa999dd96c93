// Package catalog holds the static level and location hint tables the game is played on.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// Catalog is an immutable lookup of levels and location hints.
type Catalog struct {
	levels []model.Level
	hints  []model.Hint
}

// New validates the tables and builds a Catalog.
// Levels must be numbered 1..N without gaps and every level needs a flag.
func New(levels []model.Level, hints []model.Hint) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("catalog has no levels")
	}
	if len(hints) == 0 {
		return nil, fmt.Errorf("catalog has no location hints")
	}

	c := &Catalog{
		levels: make([]model.Level, len(levels)),
		hints:  make([]model.Hint, len(hints)),
	}

	for i, lvl := range levels {
		if lvl.Number != i+1 {
			return nil, fmt.Errorf("level at position %d is numbered %d", i+1, lvl.Number)
		}
		if strings.TrimSpace(lvl.Flag) == "" {
			return nil, fmt.Errorf("level %d has no flag", lvl.Number)
		}
		c.levels[i] = lvl
	}

	for i, h := range hints {
		if strings.TrimSpace(h.Code) == "" {
			return nil, fmt.Errorf("hint %q has no code", h.Title)
		}
		h.Index = i
		c.hints[i] = h
	}

	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultLevels(), DefaultHints())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// WithFlags returns a copy of the catalog with flags replaced by overrides.
// Keys are level numbers as strings, matching how they arrive from the environment.
func (c *Catalog) WithFlags(overrides map[string]string) (*Catalog, error) {
	levels := make([]model.Level, len(c.levels))
	copy(levels, c.levels)

	for key, flag := range overrides {
		n, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("invalid level number %q in flag overrides: %w", key, err)
		}
		if n < 1 || n > len(levels) {
			return nil, fmt.Errorf("flag override for level %d: %w", n, model.ErrInvalidLevel)
		}
		levels[n-1].Flag = strings.TrimSpace(flag)
	}

	return New(levels, c.hints)
}

// TotalLevels is the number of playable levels.
func (c *Catalog) TotalLevels() int {
	return len(c.levels)
}

// ValidLevel reports whether n is a playable level number.
func (c *Catalog) ValidLevel(n int) bool {
	return n >= 1 && n <= len(c.levels)
}

// Level returns the definition of level n.
func (c *Catalog) Level(n int) (model.Level, error) {
	if !c.ValidLevel(n) {
		return model.Level{}, model.ErrInvalidLevel
	}
	return c.levels[n-1], nil
}

// Levels returns a copy of all level definitions.
func (c *Catalog) Levels() []model.Level {
	out := make([]model.Level, len(c.levels))
	copy(out, c.levels)
	return out
}

// HintCount is the size of the location hint pool.
func (c *Catalog) HintCount() int {
	return len(c.hints)
}

// Hint returns the hint with pool index idx.
func (c *Catalog) Hint(idx int) (model.Hint, error) {
	if idx < 0 || idx >= len(c.hints) {
		return model.Hint{}, model.ErrNoHintAvailable
	}
	return c.hints[idx], nil
}
