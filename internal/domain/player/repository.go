package player

import "context"

// Repository persists aggregated players keyed by person id.
type Repository interface {
	PutBatch(ctx context.Context, players []Player) error
	GetByPerson(ctx context.Context, person string) (Player, bool, error)
}

// Directory resolves person ids to display entries. Every valid answer id
// must resolve; a miss on a guessed id is an internal inconsistency.
type Directory interface {
	PutBatch(ctx context.Context, entries []ShortVersion) error
	GetByPerson(ctx context.Context, person string) (ShortVersion, bool, error)
	ListAll(ctx context.Context) ([]ShortVersion, error)
}
