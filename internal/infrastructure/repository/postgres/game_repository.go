package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/liigadoku/liigadoku-api/internal/domain/game"
)

// SessionRepository stores play-through sessions with their guessed pairs
// as a text array. MarkPairGuessed is a single conditional UPDATE, so the
// membership check and the append cannot interleave with another writer.
type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s game.Session) error {
	const query = `INSERT INTO game_sessions (date, id, guessed_pairs, created_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (date, id)
DO UPDATE SET guessed_pairs = EXCLUDED.guessed_pairs`

	if _, err := r.db.ExecContext(ctx, query, s.Date, s.ID, pq.Array(s.GuessedPairs)); err != nil {
		return fmt.Errorf("create session %s/%s: %w", s.Date, s.ID, err)
	}

	return nil
}

func (r *SessionRepository) Get(ctx context.Context, date, id string) (game.Session, bool, error) {
	const query = `SELECT guessed_pairs FROM game_sessions WHERE date = $1 AND id = $2`

	var pairs pq.StringArray
	if err := r.db.GetContext(ctx, &pairs, query, date, id); err != nil {
		if isNotFound(err) {
			return game.Session{}, false, nil
		}
		return game.Session{}, false, fmt.Errorf("get session %s/%s: %w", date, id, err)
	}

	return game.Session{
		Date:         date,
		ID:           id,
		GuessedPairs: []string(pairs),
	}, true, nil
}

func (r *SessionRepository) MarkPairGuessed(ctx context.Context, date, id, pairKey string) error {
	const query = `UPDATE game_sessions
SET guessed_pairs = array_append(guessed_pairs, $3)
WHERE date = $1 AND id = $2 AND NOT ($3 = ANY(guessed_pairs))`

	result, err := r.db.ExecContext(ctx, query, date, id, pairKey)
	if err != nil {
		return fmt.Errorf("mark pair guessed %s/%s: %w", date, id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected mark pair guessed %s/%s: %w", date, id, err)
	}
	if affected > 0 {
		return nil
	}

	const existsQuery = `SELECT 1 FROM game_sessions WHERE date = $1 AND id = $2`
	var one int
	if err := r.db.GetContext(ctx, &one, existsQuery, date, id); err != nil {
		if isNotFound(err) {
			return game.ErrSessionNotFound
		}
		return fmt.Errorf("check session %s/%s: %w", date, id, err)
	}

	return game.ErrPairAlreadyGuessed
}

// GuessRepository stores crowd guess records as jsonb documents with an
// explicit version column for optimistic concurrency.
type GuessRepository struct {
	db *sqlx.DB
}

func NewGuessRepository(db *sqlx.DB) *GuessRepository {
	return &GuessRepository{db: db}
}

type guessRecordRow struct {
	Doc     []byte `db:"doc"`
	Version int64  `db:"version"`
}

func (r *GuessRepository) Get(ctx context.Context, date, pairKey string) (game.GuessRecord, bool, error) {
	const query = `SELECT doc, version FROM guess_records WHERE date = $1 AND pair_key = $2`

	var row guessRecordRow
	if err := r.db.GetContext(ctx, &row, query, date, pairKey); err != nil {
		if isNotFound(err) {
			return game.GuessRecord{}, false, nil
		}
		return game.GuessRecord{}, false, fmt.Errorf("get guess record %s/%s: %w", date, pairKey, err)
	}

	var rec game.GuessRecord
	if err := sonic.Unmarshal(row.Doc, &rec); err != nil {
		return game.GuessRecord{}, false, fmt.Errorf("unmarshal guess record %s/%s: %w", date, pairKey, err)
	}
	rec.Version = row.Version

	return rec, true, nil
}

func (r *GuessRepository) Put(ctx context.Context, rec game.GuessRecord, expectedVersion int64) error {
	doc, err := sonic.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal guess record %s/%s: %w", rec.Date, rec.TeamPair, err)
	}

	if expectedVersion == 0 {
		const insertQuery = `INSERT INTO guess_records (date, pair_key, doc, version, updated_at)
VALUES ($1, $2, $3, 1, NOW())
ON CONFLICT (date, pair_key) DO NOTHING`

		result, err := r.db.ExecContext(ctx, insertQuery, rec.Date, rec.TeamPair, doc)
		if err != nil {
			return fmt.Errorf("insert guess record %s/%s: %w", rec.Date, rec.TeamPair, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected insert guess record %s/%s: %w", rec.Date, rec.TeamPair, err)
		}
		if affected == 0 {
			return game.ErrVersionConflict
		}

		return nil
	}

	const updateQuery = `UPDATE guess_records
SET doc = $3, version = version + 1, updated_at = NOW()
WHERE date = $1 AND pair_key = $2 AND version = $4`

	result, err := r.db.ExecContext(ctx, updateQuery, rec.Date, rec.TeamPair, doc, expectedVersion)
	if err != nil {
		return fmt.Errorf("update guess record %s/%s: %w", rec.Date, rec.TeamPair, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update guess record %s/%s: %w", rec.Date, rec.TeamPair, err)
	}
	if affected == 0 {
		return game.ErrVersionConflict
	}

	return nil
}

func (r *GuessRepository) ListByDate(ctx context.Context, date string) ([]game.GuessRecord, error) {
	const query = `SELECT doc, version FROM guess_records WHERE date = $1 ORDER BY pair_key`

	var rows []guessRecordRow
	if err := r.db.SelectContext(ctx, &rows, query, date); err != nil {
		return nil, fmt.Errorf("list guess records %s: %w", date, err)
	}

	out := make([]game.GuessRecord, 0, len(rows))
	for _, row := range rows {
		var rec game.GuessRecord
		if err := sonic.Unmarshal(row.Doc, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal guess record for %s: %w", date, err)
		}
		rec.Version = row.Version
		out = append(out, rec)
	}

	return out, nil
}
