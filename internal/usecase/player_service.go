package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/liigadoku/liigadoku-api/internal/domain/player"
	"github.com/liigadoku/liigadoku-api/internal/platform/cache"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
)

const allPlayersCacheKey = "players:all"

// PlayerService serves the player directory used by guess pickers and the
// full career records behind it.
type PlayerService struct {
	players   player.Repository
	directory player.Directory
	cache     *cache.Store
	logger    *logging.Logger
}

func NewPlayerService(
	players player.Repository,
	directory player.Directory,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		players:   players,
		directory: directory,
		cache:     cacheStore,
		logger:    logger,
	}
}

// ListAll returns every directory entry. The list is stable per data sync,
// so it is cached aggressively.
func (s *PlayerService) ListAll(ctx context.Context) ([]player.ShortVersion, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListAll")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		entries, err := s.directory.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list player directory: %w", err)
		}
		return entries, nil
	}

	if s.cache == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]player.ShortVersion), nil
	}

	value, err := s.cache.GetOrLoad(ctx, allPlayersCacheKey, load)
	if err != nil {
		return nil, err
	}

	return value.([]player.ShortVersion), nil
}

// GetByPerson returns the full career record for one person.
func (s *PlayerService) GetByPerson(ctx context.Context, person string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetByPerson")
	defer span.End()

	if strings.TrimSpace(person) == "" {
		return player.Player{}, fmt.Errorf("%w: person id is required", ErrInvalidInput)
	}

	p, ok, err := s.players.GetByPerson(ctx, person)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player %s: %w", person, err)
	}
	if !ok {
		return player.Player{}, fmt.Errorf("%w: no player with person id %s", ErrNotFound, person)
	}

	return p, nil
}
