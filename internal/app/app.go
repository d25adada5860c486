package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	sonic "github.com/bytedance/sonic"

	"github.com/liigadoku/liigadoku-api/internal/config"
	"github.com/liigadoku/liigadoku-api/internal/domain/game"
	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
	"github.com/liigadoku/liigadoku-api/internal/domain/player"
	"github.com/liigadoku/liigadoku-api/internal/domain/puzzle"
	"github.com/liigadoku/liigadoku-api/internal/infrastructure/repository/memory"
	"github.com/liigadoku/liigadoku-api/internal/infrastructure/repository/postgres"
	"github.com/liigadoku/liigadoku-api/internal/interfaces/httpapi"
	"github.com/liigadoku/liigadoku-api/internal/platform/cache"
	idgen "github.com/liigadoku/liigadoku-api/internal/platform/id"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
	"github.com/liigadoku/liigadoku-api/internal/usecase"
)

type repositories struct {
	players   player.Repository
	directory player.Directory
	pairings  pairing.Repository
	puzzles   puzzle.Repository
	sessions  game.SessionRepository
	guesses   game.GuessRepository
}

// NewHTTPServer wires repositories, services and the router into an HTTP
// server. The returned closer releases the database connection, if any.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closer, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	puzzleSvc, err := usecase.NewPuzzleService(
		repos.puzzles,
		repos.pairings,
		cfg.AnswerThreshold,
		cfg.GenerationMaxAttempts,
		logger,
	)
	if err != nil {
		_ = closer()
		return nil, nil, fmt.Errorf("build puzzle service: %w", err)
	}
	answerSvc := usecase.NewAnswerService(repos.pairings, repos.puzzles, cacheStore, logger)
	playerSvc := usecase.NewPlayerService(repos.players, repos.directory, cacheStore, logger)
	gameSvc := usecase.NewGameService(
		repos.sessions,
		repos.guesses,
		repos.pairings,
		repos.directory,
		idgen.NewUUIDGenerator(),
		logger,
	)

	handler := httpapi.NewHandler(puzzleSvc, answerSvc, playerSvc, gameSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = closer()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closer, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.DBURL == "" {
		stores := memory.NewStores()
		if cfg.SeedFile != "" {
			if err := seedFromFile(ctx, stores, cfg.SeedFile); err != nil {
				return repositories{}, nil, err
			}
			logger.Info("memory stores seeded", "seed_file", cfg.SeedFile)
		}
		logger.Info("repositories ready", "backend", "memory")

		return repositories{
			players:   stores.Players,
			directory: stores.Directory,
			pairings:  stores.Pairings,
			puzzles:   stores.Puzzles,
			sessions:  stores.Sessions,
			guesses:   stores.Guesses,
		}, func() error { return nil }, nil
	}

	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return repositories{}, nil, err
	}
	logger.Info("repositories ready", "backend", "postgres")

	return repositories{
		players:   postgres.NewPlayerRepository(db),
		directory: postgres.NewPlayerDirectoryRepository(db),
		pairings:  postgres.NewPairingRepository(db),
		puzzles:   postgres.NewPuzzleRepository(db),
		sessions:  postgres.NewSessionRepository(db),
		guesses:   postgres.NewGuessRepository(db),
	}, db.Close, nil
}

func seedFromFile(ctx context.Context, stores *memory.Stores, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seasons []player.Season
	if err := sonic.Unmarshal(raw, &seasons); err != nil {
		return fmt.Errorf("decode seed file %s: %w", path, err)
	}

	if err := stores.Seed(ctx, seasons); err != nil {
		return fmt.Errorf("seed stores from %s: %w", path, err)
	}

	return nil
}
