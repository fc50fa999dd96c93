package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/quicksnatch-server/internal/api/http/handler"
	"github.com/dtroode/quicksnatch-server/internal/api/http/middleware"
	"github.com/dtroode/quicksnatch-server/internal/logger"
	"github.com/dtroode/quicksnatch-server/internal/model"
)

// Router wires the game's HTTP handlers and middleware.
type Router struct {
	authService        handler.AuthService
	gameService        handler.GameService
	leaderboardService handler.LeaderboardService
	tokenService       middleware.TokenService
	rateLimit          *middleware.RateLimit
	trustProxy         bool
	contextManager     model.ContextManager
	logger             *logger.Logger
}

// New creates new HTTP Router instance.
// rateLimit guards the submission endpoints; nil disables limiting.
// trustProxy makes forwarding headers override the peer address.
func New(
	authService handler.AuthService,
	gameService handler.GameService,
	leaderboardService handler.LeaderboardService,
	tokenService middleware.TokenService,
	rateLimit *middleware.RateLimit,
	trustProxy bool,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:        authService,
		gameService:        gameService,
		leaderboardService: leaderboardService,
		tokenService:       tokenService,
		rateLimit:          rateLimit,
		trustProxy:         trustProxy,
		contextManager:     contextManager,
		logger:             logger,
	}
}

// Register builds the handler tree.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	gameHandler := handler.NewGame(r.gameService, r.contextManager, r.logger)
	leaderboardHandler := handler.NewLeaderboard(r.leaderboardService, r.logger)

	mux := chi.NewRouter()
	mux.Use(chiMiddleware.RequestID)
	if r.trustProxy {
		mux.Use(chiMiddleware.RealIP)
	}
	mux.Use(logging.Handle)
	mux.Use(chiMiddleware.Recoverer)

	mux.Route("/api", func(api chi.Router) {
		api.Group(func(public chi.Router) {
			public.Use(chiMiddleware.AllowContentType("application/json"))
			public.Post("/register", authHandler.Register)
			public.Post("/login", authHandler.Login)
			public.Post("/token/refresh", authHandler.Refresh)
			public.Post("/logout", authHandler.Logout)
		})

		api.Group(func(private chi.Router) {
			private.Use(authenticate.Handle)

			private.Get("/leaderboard", leaderboardHandler.List)

			private.Get("/progress", gameHandler.Progress)
			private.Get("/levels", gameHandler.Levels)
			private.Get("/levels/{level}", gameHandler.ViewLevel)
			private.Get("/levels/{level}/info", gameHandler.LevelInfo)
			private.Get("/levels/{level}/time", gameHandler.LevelTime)
			private.Get("/location_hint/{level}", gameHandler.ViewHint)

			private.Group(func(submit chi.Router) {
				if r.rateLimit != nil {
					submit.Use(r.rateLimit.Handle)
				}
				submit.Use(chiMiddleware.AllowContentType("application/json"))
				submit.Post("/levels/{level}/flag", gameHandler.SubmitFlag)
				submit.Post("/location_hint/{level}/verify", gameHandler.SubmitLocation)
			})
		})
	})

	return mux
}
