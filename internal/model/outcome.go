package model

// Outcome is the result of an accepted submission.
type Outcome struct {
	Success  bool
	Message  string
	Redirect string
}

// Position is a player's progress together with the view they belong on.
type Position struct {
	Progress Progress
	Redirect string
}

// LevelState is how a level looks from a player's point of view.
type LevelState string

const (
	LevelStateCompleted LevelState = "completed"
	LevelStateCurrent   LevelState = "current"
	LevelStateLocked    LevelState = "locked"
)

// LevelStatus is a catalog entry annotated with the player's state on it.
type LevelStatus struct {
	Level int
	Title string
	State LevelState
}

// TokenPair is an access token and the refresh token that renews it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Tokens   TokenPair
	Redirect string
}
