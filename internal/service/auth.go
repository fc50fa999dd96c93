package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/quicksnatch-server/internal/logger"
	"github.com/dtroode/quicksnatch-server/internal/model"
)

const minPasswordLength = 6

// PositionResolver tells where a player currently belongs.
type PositionResolver interface {
	Progress(ctx context.Context, userID uuid.UUID) (model.Position, error)
}

type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	positions    PositionResolver
	hashCost     int
	logger       *logger.Logger
	now          func() time.Time
}

func NewAuth(
	userStore model.UserStore,
	tokenService *TokenService,
	positions PositionResolver,
	hashCost int,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: tokenService,
		positions:    positions,
		hashCost:     hashCost,
		logger:       logger,
		now:          time.Now,
	}
}

// Register creates a player together with their initial progress.
func (a *Auth) Register(ctx context.Context, username, password, confirmPassword string) error {
	username = strings.TrimSpace(username)
	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	if password != confirmPassword {
		return model.ErrPasswordMismatch
	}
	if username == "" || len(password) < minPasswordLength {
		return model.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.hashCost)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"username", username,
			"error", err.Error())
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now()
	user := model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := a.userStore.CreateWithProgress(ctx, user, model.NewProgress(user.ID, now)); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			a.logger.Info("Auth service: username already exists",
				"username", username)
			return err
		}
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return fmt.Errorf("%w: %w", model.ErrPersistence, err)
	}

	a.logger.Info("Auth service: user registered",
		"username", username,
		"user_id", user.ID)

	return nil
}

// Login checks credentials, starts the player's clock on first login and
// issues a token pair.
func (a *Auth) Login(ctx context.Context, username, password string) (model.LoginResult, error) {
	user, err := a.userStore.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.LoginResult{}, model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("%w: %w", model.ErrPersistence, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		a.logger.Info("Auth service: invalid password",
			"username", username)
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	if user.StartedAt == nil {
		if _, err := a.userStore.MarkStarted(ctx, user.ID, a.now()); err != nil {
			a.logger.Error("Auth service: failed to set start time",
				"user_id", user.ID,
				"error", err.Error())
			return model.LoginResult{}, fmt.Errorf("%w: %w", model.ErrPersistence, err)
		}
	}

	tokens, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"user_id", user.ID,
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	pos, err := a.positions.Progress(ctx, user.ID)
	if err != nil {
		return model.LoginResult{}, err
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return model.LoginResult{
		Tokens:   tokens,
		Redirect: pos.Redirect,
	}, nil
}

// Refresh rotates a refresh token.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	tokens, err := a.tokenService.Refresh(ctx, refreshToken)
	if err != nil {
		a.logger.Info("Auth service: refresh rejected",
			"error", err.Error())
		return model.TokenPair{}, err
	}
	return tokens, nil
}

// Logout revokes a refresh token.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	if err := a.tokenService.RevokeByToken(ctx, refreshToken); err != nil {
		a.logger.Info("Auth service: logout rejected",
			"error", err.Error())
		return err
	}
	return nil
}
