package model

import "context"

// Level describes a single challenge.
type Level struct {
	Number      int    `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CurlCommand string `json:"curl_command"`
	Flag        string `json:"-"`
}

// Hint is a location riddle with its unlock code.
type Hint struct {
	Index  int    `json:"-"`
	Title  string `json:"title"`
	Riddle string `json:"riddle"`
	Code   string `json:"-"`
}

// LevelInfo is the terminal descriptor a front end renders for a level.
type LevelInfo struct {
	Level       int               `json:"level"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Prompt      string            `json:"prompt"`
	Files       map[string]string `json:"files"`
	Hints       []string          `json:"hints"`
}

// LevelInfoSource loads level descriptors from an external location.
// Implementations return ErrNotFound when the level has no descriptor.
type LevelInfoSource interface {
	LoadLevelInfo(ctx context.Context, level int) (LevelInfo, error)
}
