package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/liigadoku/liigadoku-api/internal/domain/game"
)

func sessionKey(date, id string) string {
	return date + "/" + id
}

// SessionRepository is an in-memory game.SessionRepository. MarkPairGuessed
// holds the write lock across the membership check and the append, matching
// the conditional-update contract.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]game.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]game.Session)}
}

func (r *SessionRepository) Create(_ context.Context, s game.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionKey(s.Date, s.ID)] = s

	return nil
}

func (r *SessionRepository) Get(_ context.Context, date, id string) (game.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionKey(date, id)]

	return s, ok, nil
}

func (r *SessionRepository) MarkPairGuessed(_ context.Context, date, id, pairKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey(date, id)
	s, ok := r.sessions[key]
	if !ok {
		return game.ErrSessionNotFound
	}
	if slices.Contains(s.GuessedPairs, pairKey) {
		return game.ErrPairAlreadyGuessed
	}

	s.GuessedPairs = append(slices.Clone(s.GuessedPairs), pairKey)
	r.sessions[key] = s

	return nil
}

func guessKey(date, pairKey string) string {
	return date + "/" + pairKey
}

// GuessRepository is an in-memory game.GuessRepository with version-checked
// writes.
type GuessRepository struct {
	mu      sync.RWMutex
	records map[string]game.GuessRecord
}

func NewGuessRepository() *GuessRepository {
	return &GuessRepository{records: make(map[string]game.GuessRecord)}
}

func (r *GuessRepository) Get(_ context.Context, date, pairKey string) (game.GuessRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[guessKey(date, pairKey)]
	if !ok {
		return game.GuessRecord{}, false, nil
	}

	return cloneRecord(rec), true, nil
}

func (r *GuessRepository) Put(_ context.Context, rec game.GuessRecord, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := guessKey(rec.Date, rec.TeamPair)
	stored, ok := r.records[key]
	if !ok {
		if expectedVersion != 0 {
			return game.ErrVersionConflict
		}
	} else if stored.Version != expectedVersion {
		return game.ErrVersionConflict
	}

	rec.Version = expectedVersion + 1
	r.records[key] = cloneRecord(rec)

	return nil
}

func (r *GuessRepository) ListByDate(_ context.Context, date string) ([]game.GuessRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []game.GuessRecord
	for _, rec := range r.records {
		if rec.Date == date {
			out = append(out, cloneRecord(rec))
		}
	}

	slices.SortFunc(out, func(a, b game.GuessRecord) int {
		switch {
		case a.TeamPair < b.TeamPair:
			return -1
		case a.TeamPair > b.TeamPair:
			return 1
		default:
			return 0
		}
	})

	return out, nil
}

func cloneRecord(rec game.GuessRecord) game.GuessRecord {
	out := rec
	out.GuessedPlayers = make(map[string]game.PlayerGuess, len(rec.GuessedPlayers))
	for k, v := range rec.GuessedPlayers {
		out.GuessedPlayers[k] = v
	}

	return out
}
