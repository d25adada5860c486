package puzzle

import "context"

// Repository stores one immutable puzzle per date. Create is first-writer-
// wins: a second create for the same date returns ErrAlreadyExists without
// touching the stored grid.
type Repository interface {
	GetByDate(ctx context.Context, date string) (DailyPuzzle, bool, error)
	Create(ctx context.Context, p DailyPuzzle) error
}
