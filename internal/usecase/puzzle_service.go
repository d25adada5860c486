package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
	"github.com/liigadoku/liigadoku-api/internal/domain/puzzle"
	"github.com/liigadoku/liigadoku-api/internal/domain/team"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
)

const (
	// DefaultAnswerThreshold is the minimum answer-set size for a cell to be
	// playable.
	DefaultAnswerThreshold = 5
	// DefaultMaxAttempts bounds the draft-validate loop. The original game
	// retried without limit; a cap turns a sparse team pool into an explicit
	// generation failure instead of a spin.
	DefaultMaxAttempts = 100
)

// PuzzleService owns the daily puzzle lifecycle: return today's grid if one
// is committed, otherwise draft, validate and commit a new one.
type PuzzleService struct {
	puzzleRepo  puzzle.Repository
	pairingRepo pairing.Repository
	logger      *logging.Logger

	threshold   int
	maxAttempts int
	location    *time.Location
	now         func() time.Time
	rng         *rand.Rand
}

func NewPuzzleService(
	puzzleRepo puzzle.Repository,
	pairingRepo pairing.Repository,
	threshold int,
	maxAttempts int,
	logger *logging.Logger,
) (*PuzzleService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if threshold <= 0 {
		threshold = DefaultAnswerThreshold
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	location, err := time.LoadLocation(puzzle.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", puzzle.TimeZone, err)
	}

	return &PuzzleService{
		puzzleRepo:  puzzleRepo,
		pairingRepo: pairingRepo,
		logger:      logger,
		threshold:   threshold,
		maxAttempts: maxAttempts,
		location:    location,
		now:         time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// PuzzleOfTheDay returns the committed grid for today, generating and
// committing one on the first request of the day. Every caller on a given
// date sees the identical grid.
func (s *PuzzleService) PuzzleOfTheDay(ctx context.Context) (puzzle.DailyPuzzle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PuzzleService.PuzzleOfTheDay")
	defer span.End()

	today := puzzle.FormatDate(s.now().In(s.location))

	existing, ok, err := s.puzzleRepo.GetByDate(ctx, today)
	if err != nil {
		return puzzle.DailyPuzzle{}, fmt.Errorf("%w: get puzzle for %s: %v", ErrDependencyUnavailable, today, err)
	}
	if ok {
		return existing, nil
	}

	excluded, err := s.yesterdaysTeams(ctx)
	if err != nil {
		return puzzle.DailyPuzzle{}, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		candidate := s.draftCandidate(today, excluded)

		valid, err := s.validateCandidate(ctx, candidate)
		if err != nil {
			return puzzle.DailyPuzzle{}, err
		}
		if !valid {
			continue
		}

		if err := s.puzzleRepo.Create(ctx, candidate); err != nil {
			if errors.Is(err, puzzle.ErrAlreadyExists) {
				// Another request won the commit race; serve theirs.
				stored, ok, getErr := s.puzzleRepo.GetByDate(ctx, today)
				if getErr != nil {
					return puzzle.DailyPuzzle{}, fmt.Errorf("%w: reread puzzle for %s: %v", ErrDependencyUnavailable, today, getErr)
				}
				if !ok {
					return puzzle.DailyPuzzle{}, fmt.Errorf("puzzle for %s vanished after commit race", today)
				}
				return stored, nil
			}
			return puzzle.DailyPuzzle{}, fmt.Errorf("%w: commit puzzle for %s: %v", ErrDependencyUnavailable, today, err)
		}

		s.logger.InfoContext(ctx, "daily puzzle committed",
			"date", today,
			"attempts", attempt,
			"x_teams", candidate.XTeams,
			"y_teams", candidate.YTeams,
		)

		return candidate, nil
	}

	s.logger.ErrorContext(ctx, "puzzle generation exhausted attempts",
		"date", today,
		"max_attempts", s.maxAttempts,
	)

	return puzzle.DailyPuzzle{}, fmt.Errorf("%w: no valid grid in %d attempts", ErrGenerationFailed, s.maxAttempts)
}

// PuzzleByDate returns the committed puzzle for an arbitrary date, without
// generating one.
func (s *PuzzleService) PuzzleByDate(ctx context.Context, date string) (puzzle.DailyPuzzle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PuzzleService.PuzzleByDate")
	defer span.End()

	p, ok, err := s.puzzleRepo.GetByDate(ctx, date)
	if err != nil {
		return puzzle.DailyPuzzle{}, fmt.Errorf("get puzzle for %s: %w", date, err)
	}
	if !ok {
		return puzzle.DailyPuzzle{}, fmt.Errorf("%w: no puzzle for date %s", ErrNotFound, date)
	}

	return p, nil
}

func (s *PuzzleService) yesterdaysTeams(ctx context.Context) (map[string]struct{}, error) {
	yesterday := puzzle.FormatDate(s.now().In(s.location).AddDate(0, 0, -1))

	p, ok, err := s.puzzleRepo.GetByDate(ctx, yesterday)
	if err != nil {
		return nil, fmt.Errorf("%w: get puzzle for %s: %v", ErrDependencyUnavailable, yesterday, err)
	}
	if !ok {
		return map[string]struct{}{}, nil
	}

	excluded := make(map[string]struct{}, len(p.XTeams)+len(p.YTeams))
	for _, t := range p.XTeams {
		excluded[t] = struct{}{}
	}
	for _, t := range p.YTeams {
		excluded[t] = struct{}{}
	}

	return excluded, nil
}

// draftCandidate shuffles the roster minus yesterday's teams and deals two
// teams plus a milestone on one axis, three teams on the other. Yesterday's
// milestone key never matches a roster entry, so only ordinary teams are
// excluded.
func (s *PuzzleService) draftCandidate(date string, excluded map[string]struct{}) puzzle.DailyPuzzle {
	available := make([]string, 0, len(team.ModernEraRoster))
	for _, t := range team.ModernEraRoster {
		if _, skip := excluded[t]; skip {
			continue
		}
		available = append(available, t)
	}

	s.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	milestones := pairing.DrawableMilestones()
	milestone := milestones[s.rng.Intn(len(milestones))]

	return puzzle.DailyPuzzle{
		Date:   date,
		XTeams: append(append([]string{}, available[0:2]...), milestone),
		YTeams: append([]string{}, available[2:5]...),
	}
}

// validateCandidate checks all nine cross pairs concurrently; the candidate
// stands only when every cell has at least threshold answers.
func (s *PuzzleService) validateCandidate(ctx context.Context, candidate puzzle.DailyPuzzle) (bool, error) {
	keys := make([]string, 0, 9)
	for _, x := range candidate.XTeams {
		for _, y := range candidate.YTeams {
			keys = append(keys, pairing.PairKey(x, y))
		}
	}

	p := pool.NewWithResults[int]().WithContext(ctx).WithMaxGoroutines(len(keys))
	for _, key := range keys {
		key := key
		p.Go(func(ctx context.Context) (int, error) {
			set, ok, err := s.pairingRepo.GetByKey(ctx, key)
			if err != nil {
				return 0, fmt.Errorf("%w: get answer set %s: %v", ErrDependencyUnavailable, key, err)
			}
			if !ok {
				return 0, nil
			}
			return set.Size(), nil
		})
	}

	sizes, err := p.Wait()
	if err != nil {
		return false, err
	}

	for _, size := range sizes {
		if size < s.threshold {
			return false, nil
		}
	}

	return true, nil
}
