package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/afero"
	"golang.org/x/crypto/bcrypt"

	httpctx "github.com/dtroode/quicksnatch-server/internal/api/http/context"
	"github.com/dtroode/quicksnatch-server/internal/api/http/middleware"
	"github.com/dtroode/quicksnatch-server/internal/api/http/router"
	"github.com/dtroode/quicksnatch-server/internal/catalog"
	"github.com/dtroode/quicksnatch-server/internal/config"
	"github.com/dtroode/quicksnatch-server/internal/game"
	"github.com/dtroode/quicksnatch-server/internal/logger"
	"github.com/dtroode/quicksnatch-server/internal/model"
	"github.com/dtroode/quicksnatch-server/internal/repository/cleaner"
	"github.com/dtroode/quicksnatch-server/internal/repository/postgres"
	"github.com/dtroode/quicksnatch-server/internal/server"
	"github.com/dtroode/quicksnatch-server/internal/service"
	storage "github.com/dtroode/quicksnatch-server/internal/storage/minio"
	"github.com/dtroode/quicksnatch-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const limiterIdle = 10 * time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	gameCatalog, err := catalog.Default().WithFlags(cfg.Game.Flags)
	if err != nil {
		logger.Fatal("failed to apply flag overrides", "error", err)
	}

	levelInfo, err := newLevelInfoSource(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize level info source", "error", err)
	}

	machine := game.NewMachine(gameCatalog, newAssigner(cfg.Game.HintMode, gameCatalog.HintCount()))

	userRepo := postgres.NewUserRepository(db)
	progressRepo := postgres.NewProgressRepository(db)
	submissionRepo := postgres.NewSubmissionRepository(db)
	standingRepo := postgres.NewStandingRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, cfg.JWT.RefreshTTL, logger)
	gameService := service.NewGame(progressRepo, submissionRepo, submissionRepo, levelInfo, machine, logger)
	authService := service.NewAuth(userRepo, tokenService, gameService, bcrypt.DefaultCost, logger)
	leaderboardService := service.NewLeaderboard(standingRepo, logger)

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()
	cleaner.StartRefreshTokenCleaner(ctx, sqlDB, cfg.Cleaner.Interval, cfg.Cleaner.Retention, logger)

	rateLimit := middleware.NewRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst, limiterIdle, logger)
	rateLimit.StartJanitor(ctx, limiterIdle)

	r := router.New(authService, gameService, leaderboardService, tokenService, rateLimit, cfg.HTTP.TrustProxy, httpctx.NewManager(), logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func newAssigner(mode string, hintCount int) game.Assigner {
	if mode == config.HintModeStatic {
		return game.NewStaticAssigner(hintCount)
	}
	seed := uint64(time.Now().UnixNano())
	return game.NewRandomAssigner(hintCount, rand.NewPCG(seed, seed>>1|1))
}

// newLevelInfoSource returns nil for the "none" backend; the game then serves fallback descriptors.
func newLevelInfoSource(ctx context.Context, cfg *config.Config) (model.LevelInfoSource, error) {
	var source model.LevelInfoSource

	switch cfg.Game.LevelInfoBackend {
	case config.LevelInfoNone:
		return nil, nil
	case config.LevelInfoMinio:
		client, err := storage.Connect(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
		source = catalog.NewBucketSource(client)
	default:
		source = catalog.NewFileSource(afero.NewOsFs(), cfg.Game.LevelInfoDir)
	}

	return catalog.NewCachedSource(source, cfg.Game.LevelInfoTTL), nil
}
