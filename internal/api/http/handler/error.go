package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/quicksnatch-server/internal/game"
	"github.com/dtroode/quicksnatch-server/internal/logger"
	"github.com/dtroode/quicksnatch-server/internal/model"
)

const msgTryAgain = "Something went wrong, please try again."

type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

type outcomeResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// handleError writes the response matching a service error.
func handleError(w http.ResponseWriter, log *logger.Logger, err error) {
	var redirect *game.RedirectError
	if errors.As(err, &redirect) {
		status, msg := http.StatusConflict, "You can only access your current level!"
		if errors.Is(err, model.ErrInvalidLevel) {
			status, msg = http.StatusBadRequest, "Invalid level"
		}
		writeJSON(w, status, errorResponse{Error: msg, Redirect: redirect.Path})
		return
	}

	switch {
	case errors.Is(err, model.ErrInvalidLevel):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid level"})
	case errors.Is(err, model.ErrNotAuthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Please login first", Redirect: "/login"})
	case errors.Is(err, model.ErrPasswordMismatch):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Passwords do not match"})
	case errors.Is(err, model.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid username or password"})
	case errors.Is(err, model.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "Username already exists"})
	case errors.Is(err, model.ErrPersistence):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: msgTryAgain})
	default:
		log.Error("HTTP handler: unexpected error",
			"error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// rejection turns a refused submission into the retry prompt shown to the player.
func rejection(err error, kind model.SubmissionKind, retry string) (outcomeResponse, bool) {
	switch {
	case errors.Is(err, model.ErrEmptySubmission):
		msg := "No flag submitted"
		if kind == model.SubmissionKindLocation {
			msg = "No location code provided"
		}
		return outcomeResponse{Message: msg, Redirect: retry}, true
	case errors.Is(err, model.ErrIncorrectFlag):
		return outcomeResponse{Message: "Incorrect flag. Try again!", Redirect: retry}, true
	case errors.Is(err, model.ErrIncorrectCode):
		return outcomeResponse{Message: "Incorrect location code. Try again!", Redirect: retry}, true
	default:
		return outcomeResponse{}, false
	}
}
