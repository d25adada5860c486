package game

import "context"

// SessionRepository stores play-through sessions keyed by (date, id).
type SessionRepository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, date, id string) (Session, bool, error)
	// MarkPairGuessed atomically adds pairKey to the session's guessed set.
	// Returns ErrSessionNotFound or ErrPairAlreadyGuessed; the check and the
	// write are a single conditional update, never get-then-put.
	MarkPairGuessed(ctx context.Context, date, id, pairKey string) error
}

// GuessRepository stores crowd guess records keyed by (date, pair).
type GuessRepository interface {
	Get(ctx context.Context, date, pairKey string) (GuessRecord, bool, error)
	// Put writes the record only when the stored version still equals
	// expectedVersion (0 for a new record); otherwise ErrVersionConflict.
	Put(ctx context.Context, rec GuessRecord, expectedVersion int64) error
	ListByDate(ctx context.Context, date string) ([]GuessRecord, error)
}
