package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/liigadoku/liigadoku-api/internal/domain/game"
	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
	"github.com/liigadoku/liigadoku-api/internal/domain/player"
	"github.com/liigadoku/liigadoku-api/internal/platform/id"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
)

// guessRetryLimit bounds the optimistic write loop on crowd guess records.
const guessRetryLimit = 5

// GameService tracks play-through sessions and validates guesses against the
// indexed answer sets.
type GameService struct {
	sessions    game.SessionRepository
	guesses     game.GuessRepository
	pairingRepo pairing.Repository
	directory   player.Directory
	idGen       id.Generator
	logger      *logging.Logger
}

func NewGameService(
	sessions game.SessionRepository,
	guesses game.GuessRepository,
	pairingRepo pairing.Repository,
	directory player.Directory,
	idGen id.Generator,
	logger *logging.Logger,
) *GameService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GameService{
		sessions:    sessions,
		guesses:     guesses,
		pairingRepo: pairingRepo,
		directory:   directory,
		idGen:       idGen,
		logger:      logger,
	}
}

// NewSession opens a fresh session for the given puzzle date.
func (s *GameService) NewSession(ctx context.Context, date string) (game.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.NewSession")
	defer span.End()

	if strings.TrimSpace(date) == "" {
		return game.Session{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	sessionID, err := s.idGen.NewID()
	if err != nil {
		return game.Session{}, fmt.Errorf("generate session id: %w", err)
	}

	session := game.Session{
		Date:         date,
		ID:           sessionID,
		GuessedPairs: []string{},
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return game.Session{}, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

// SubmitGuess validates one guess for a cell and returns the updated crowd
// record. The session's guessed-pair set is advanced first, so a double
// submission for the same cell is rejected before the answer lookup. The
// record is updated whether or not the guess was correct.
func (s *GameService) SubmitGuess(ctx context.Context, date, sessionID, first, second, person string) (game.GuessRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.SubmitGuess")
	defer span.End()

	if strings.TrimSpace(date) == "" || strings.TrimSpace(sessionID) == "" {
		return game.GuessRecord{}, fmt.Errorf("%w: date and gameId are required", ErrInvalidInput)
	}
	if strings.TrimSpace(first) == "" || strings.TrimSpace(second) == "" {
		return game.GuessRecord{}, fmt.Errorf("%w: both pair operands are required", ErrInvalidInput)
	}
	if strings.TrimSpace(person) == "" {
		return game.GuessRecord{}, fmt.Errorf("%w: person id is required", ErrInvalidInput)
	}

	pairKey := pairing.PairKey(first, second)

	if err := s.sessions.MarkPairGuessed(ctx, date, sessionID, pairKey); err != nil {
		switch {
		case errors.Is(err, game.ErrSessionNotFound):
			return game.GuessRecord{}, fmt.Errorf("%w: session %s for date %s", ErrNotFound, sessionID, date)
		case errors.Is(err, game.ErrPairAlreadyGuessed):
			return game.GuessRecord{}, fmt.Errorf("%w: pair %s already guessed", ErrConflict, pairKey)
		default:
			return game.GuessRecord{}, fmt.Errorf("mark pair guessed: %w", err)
		}
	}

	// A missing answer set means the pair was never indexed; any guess
	// against it is simply wrong.
	set, ok, err := s.pairingRepo.GetByKey(ctx, pairKey)
	if err != nil {
		return game.GuessRecord{}, fmt.Errorf("get answer set %s: %w", pairKey, err)
	}
	isCorrect := ok && set.Contains(person)

	entry, ok, err := s.directory.GetByPerson(ctx, person)
	if err != nil {
		return game.GuessRecord{}, fmt.Errorf("resolve person %s: %w", person, err)
	}
	if !ok {
		return game.GuessRecord{}, fmt.Errorf("person %s missing from player directory", person)
	}

	rec, err := s.applyCrowdGuess(ctx, date, pairKey, person, entry.Name, isCorrect)
	if err != nil {
		return game.GuessRecord{}, err
	}

	return rec, nil
}

// RecordCrowdGuess folds an already-judged guess into the crowd statistics
// without touching any session.
func (s *GameService) RecordCrowdGuess(ctx context.Context, date, first, second, person, name string, isCorrect bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.RecordCrowdGuess")
	defer span.End()

	if strings.TrimSpace(date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if strings.TrimSpace(person) == "" || strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: person and name are required", ErrInvalidInput)
	}

	pairKey := pairing.PairKey(first, second)

	_, err := s.applyCrowdGuess(ctx, date, pairKey, person, name, isCorrect)

	return err
}

// GuessesByDate returns the crowd statistics for every cell guessed on the
// given date.
func (s *GameService) GuessesByDate(ctx context.Context, date string) ([]game.GuessRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.GuessesByDate")
	defer span.End()

	if strings.TrimSpace(date) == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	records, err := s.guesses.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list guesses for %s: %w", date, err)
	}

	return records, nil
}

// applyCrowdGuess folds one guess into the (date, pair) record under
// optimistic concurrency: read, apply, conditional put, retry on conflict.
func (s *GameService) applyCrowdGuess(ctx context.Context, date, pairKey, person, name string, isCorrect bool) (game.GuessRecord, error) {
	for attempt := 0; attempt < guessRetryLimit; attempt++ {
		rec, ok, err := s.guesses.Get(ctx, date, pairKey)
		if err != nil {
			return game.GuessRecord{}, fmt.Errorf("get guess record: %w", err)
		}
		if !ok {
			rec = game.GuessRecord{
				Date:           date,
				TeamPair:       pairKey,
				GuessedPlayers: map[string]game.PlayerGuess{},
			}
		}

		expected := rec.Version
		rec.Apply(person, name, isCorrect)

		err = s.guesses.Put(ctx, rec, expected)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, game.ErrVersionConflict) {
			return game.GuessRecord{}, fmt.Errorf("put guess record: %w", err)
		}
	}

	return game.GuessRecord{}, fmt.Errorf("put guess record: %w after %d attempts", game.ErrVersionConflict, guessRetryLimit)
}
