package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/quicksnatch-server/internal/game"
	"github.com/dtroode/quicksnatch-server/internal/logger"
	"github.com/dtroode/quicksnatch-server/internal/model"
)

// GameService defines the player actions exposed over HTTP.
type GameService interface {
	Progress(ctx context.Context, userID uuid.UUID) (model.Position, error)
	Levels(ctx context.Context, userID uuid.UUID) ([]model.LevelStatus, error)
	ViewLevel(ctx context.Context, userID uuid.UUID, level int) (model.Level, error)
	ViewHint(ctx context.Context, userID uuid.UUID, level int) (model.Hint, error)
	SubmitFlag(ctx context.Context, userID uuid.UUID, level int, flag string) (model.Outcome, error)
	SubmitLocation(ctx context.Context, userID uuid.UUID, level int, code string) (model.Outcome, error)
	LevelInfo(ctx context.Context, level int) (model.LevelInfo, error)
	LevelTime(ctx context.Context, userID uuid.UUID, level int) (string, error)
}

// Game handles HTTP endpoints of the game itself.
type Game struct {
	gameService    GameService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewGame creates a new Game handler.
func NewGame(gameService GameService, contextManager model.ContextManager, logger *logger.Logger) *Game {
	return &Game{
		gameService:    gameService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type progressResponse struct {
	Level           int    `json:"level"`
	Phase           string `json:"phase"`
	CompletedLevels []int  `json:"completed_levels"`
	Redirect        string `json:"redirect"`
}

type levelStatusResponse struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	State string `json:"state"`
}

type hintResponse struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Riddle string `json:"riddle"`
}

type flagRequest struct {
	Flag string `json:"flag"`
}

type codeRequest struct {
	Code string `json:"code"`
}

type timeResponse struct {
	TimeSpent string `json:"time_spent"`
}

// Progress returns the player's state and the view they belong on.
func (h *Game) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	pos, err := h.gameService.Progress(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	completed := pos.Progress.CompletedLevels
	if completed == nil {
		completed = []int{}
	}
	writeJSON(w, http.StatusOK, progressResponse{
		Level:           pos.Progress.CurrentLevel,
		Phase:           string(pos.Progress.Phase),
		CompletedLevels: completed,
		Redirect:        pos.Redirect,
	})
}

// Levels returns every level with the player's state on it.
func (h *Game) Levels(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	levels, err := h.gameService.Levels(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	resp := make([]levelStatusResponse, 0, len(levels))
	for _, l := range levels {
		resp = append(resp, levelStatusResponse{Level: l.Level, Title: l.Title, State: string(l.State)})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ViewLevel shows a level, or redirects when the player is elsewhere.
func (h *Game) ViewLevel(w http.ResponseWriter, r *http.Request) {
	userID, level, ok := h.userAndLevel(w, r)
	if !ok {
		return
	}

	lvl, err := h.gameService.ViewLevel(r.Context(), userID, level)
	if err != nil {
		h.viewError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lvl)
}

// ViewHint shows the assigned location hint, or redirects when the player is elsewhere.
func (h *Game) ViewHint(w http.ResponseWriter, r *http.Request) {
	userID, level, ok := h.userAndLevel(w, r)
	if !ok {
		return
	}

	hint, err := h.gameService.ViewHint(r.Context(), userID, level)
	if err != nil {
		h.viewError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, hintResponse{Level: level, Title: hint.Title, Riddle: hint.Riddle})
}

// SubmitFlag verifies a flag.
func (h *Game) SubmitFlag(w http.ResponseWriter, r *http.Request) {
	userID, level, ok := h.userAndLevel(w, r)
	if !ok {
		return
	}

	var req flagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	outcome, err := h.gameService.SubmitFlag(r.Context(), userID, level, req.Flag)
	h.writeOutcome(w, outcome, err, model.SubmissionKindFlag, game.LevelPath(level))
}

// SubmitLocation verifies a location code.
func (h *Game) SubmitLocation(w http.ResponseWriter, r *http.Request) {
	userID, level, ok := h.userAndLevel(w, r)
	if !ok {
		return
	}

	var req codeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	outcome, err := h.gameService.SubmitLocation(r.Context(), userID, level, req.Code)
	h.writeOutcome(w, outcome, err, model.SubmissionKindLocation, game.HintPath(level))
}

// LevelInfo returns the terminal descriptor of a level.
func (h *Game) LevelInfo(w http.ResponseWriter, r *http.Request) {
	_, level, ok := h.userAndLevel(w, r)
	if !ok {
		return
	}

	info, err := h.gameService.LevelInfo(r.Context(), level)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// LevelTime returns how long the player spent on a level.
func (h *Game) LevelTime(w http.ResponseWriter, r *http.Request) {
	userID, level, ok := h.userAndLevel(w, r)
	if !ok {
		return
	}

	spent, err := h.gameService.LevelTime(r.Context(), userID, level)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, timeResponse{TimeSpent: spent})
}

func (h *Game) writeOutcome(w http.ResponseWriter, outcome model.Outcome, err error, kind model.SubmissionKind, retry string) {
	if err != nil {
		if resp, ok := rejection(err, kind, retry); ok {
			writeJSON(w, http.StatusOK, resp)
			return
		}
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, outcomeResponse{
		Success:  outcome.Success,
		Message:  outcome.Message,
		Redirect: outcome.Redirect,
	})
}

// viewError answers a refused view with 303 to where the player belongs.
func (h *Game) viewError(w http.ResponseWriter, r *http.Request, err error) {
	var redirect *game.RedirectError
	if !errors.As(err, &redirect) {
		handleError(w, h.logger, err)
		return
	}

	msg := "You can only access your current level!"
	if errors.Is(err, model.ErrInvalidLevel) {
		msg = "Invalid level"
	}

	h.logger.Debug("Game handler: redirecting view",
		"path", r.URL.Path,
		"redirect", redirect.Path)

	w.Header().Set("Location", redirect.Path)
	writeJSON(w, http.StatusSeeOther, messageResponse{Message: msg, Redirect: redirect.Path})
}

func (h *Game) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		handleError(w, h.logger, model.ErrNotAuthenticated)
		return uuid.Nil, false
	}
	return userID, true
}

func (h *Game) userAndLevel(w http.ResponseWriter, r *http.Request) (uuid.UUID, int, bool) {
	userID, ok := h.userID(w, r)
	if !ok {
		return uuid.Nil, 0, false
	}

	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid level"})
		return uuid.Nil, 0, false
	}
	return userID, level, true
}
