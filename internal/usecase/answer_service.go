package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
	"github.com/liigadoku/liigadoku-api/internal/domain/puzzle"
	"github.com/liigadoku/liigadoku-api/internal/platform/cache"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
)

// AnswerService exposes indexed answer sets: per pair and per full grid.
type AnswerService struct {
	pairingRepo pairing.Repository
	puzzleRepo  puzzle.Repository
	cache       *cache.Store
	logger      *logging.Logger
}

func NewAnswerService(
	pairingRepo pairing.Repository,
	puzzleRepo puzzle.Repository,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *AnswerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AnswerService{
		pairingRepo: pairingRepo,
		puzzleRepo:  puzzleRepo,
		cache:       cacheStore,
		logger:      logger,
	}
}

// AnswersByPair returns the answer set for one pair. An unindexed pair
// resolves to an empty set, not an error.
func (s *AnswerService) AnswersByPair(ctx context.Context, first, second string) (pairing.AnswerSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnswerService.AnswersByPair")
	defer span.End()

	if strings.TrimSpace(first) == "" || strings.TrimSpace(second) == "" {
		return pairing.AnswerSet{}, fmt.Errorf("%w: both pair operands are required", ErrInvalidInput)
	}

	key := pairing.PairKey(first, second)

	return s.answersForKey(ctx, key)
}

// AnswersByDate returns the nine answer sets for the committed puzzle of the
// given date, fetched concurrently in grid order.
func (s *AnswerService) AnswersByDate(ctx context.Context, date string) ([]pairing.AnswerSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnswerService.AnswersByDate")
	defer span.End()

	p, ok, err := s.puzzleRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get puzzle for %s: %w", date, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no puzzle for date %s", ErrNotFound, date)
	}

	keys := make([]string, 0, len(p.XTeams)*len(p.YTeams))
	for _, x := range p.XTeams {
		for _, y := range p.YTeams {
			keys = append(keys, pairing.PairKey(x, y))
		}
	}

	fetch := pool.NewWithResults[pairing.AnswerSet]().WithContext(ctx).WithMaxGoroutines(len(keys))
	for _, key := range keys {
		key := key
		fetch.Go(func(ctx context.Context) (pairing.AnswerSet, error) {
			return s.answersForKey(ctx, key)
		})
	}

	sets, err := fetch.Wait()
	if err != nil {
		return nil, err
	}

	// conc preserves submission order, so sets line up with the grid cells.
	return sets, nil
}

func (s *AnswerService) answersForKey(ctx context.Context, key string) (pairing.AnswerSet, error) {
	load := func(ctx context.Context) (any, error) {
		set, ok, err := s.pairingRepo.GetByKey(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get answer set %s: %w", key, err)
		}
		if !ok {
			return pairing.AnswerSet{Key: key, Players: []pairing.Answer{}}, nil
		}
		return set, nil
	}

	if s.cache == nil {
		value, err := load(ctx)
		if err != nil {
			return pairing.AnswerSet{}, err
		}
		return value.(pairing.AnswerSet), nil
	}

	value, err := s.cache.GetOrLoad(ctx, "answers:"+key, load)
	if err != nil {
		return pairing.AnswerSet{}, err
	}

	return value.(pairing.AnswerSet), nil
}
