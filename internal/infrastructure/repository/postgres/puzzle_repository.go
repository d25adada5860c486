package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/liigadoku/liigadoku-api/internal/domain/puzzle"
)

// PuzzleRepository stores one immutable puzzle document per date. Create
// relies on ON CONFLICT DO NOTHING for first-writer-wins semantics.
type PuzzleRepository struct {
	db *sqlx.DB
}

func NewPuzzleRepository(db *sqlx.DB) *PuzzleRepository {
	return &PuzzleRepository{db: db}
}

func (r *PuzzleRepository) GetByDate(ctx context.Context, date string) (puzzle.DailyPuzzle, bool, error) {
	const query = `SELECT doc FROM daily_puzzles WHERE date = $1`

	var doc []byte
	if err := r.db.GetContext(ctx, &doc, query, date); err != nil {
		if isNotFound(err) {
			return puzzle.DailyPuzzle{}, false, nil
		}
		return puzzle.DailyPuzzle{}, false, fmt.Errorf("get puzzle %s: %w", date, err)
	}

	var p puzzle.DailyPuzzle
	if err := sonic.Unmarshal(doc, &p); err != nil {
		return puzzle.DailyPuzzle{}, false, fmt.Errorf("unmarshal puzzle %s: %w", date, err)
	}

	return p, true, nil
}

func (r *PuzzleRepository) Create(ctx context.Context, p puzzle.DailyPuzzle) error {
	doc, err := sonic.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal puzzle %s: %w", p.Date, err)
	}

	const query = `INSERT INTO daily_puzzles (date, doc, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (date) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, p.Date, doc)
	if err != nil {
		return fmt.Errorf("create puzzle %s: %w", p.Date, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected create puzzle %s: %w", p.Date, err)
	}
	if affected == 0 {
		return puzzle.ErrAlreadyExists
	}

	return nil
}
