package memory

import (
	"context"
	"sync"

	"github.com/liigadoku/liigadoku-api/internal/domain/puzzle"
)

// PuzzleRepository is an in-memory puzzle.Repository with first-writer-wins
// create semantics.
type PuzzleRepository struct {
	mu      sync.RWMutex
	puzzles map[string]puzzle.DailyPuzzle
}

func NewPuzzleRepository() *PuzzleRepository {
	return &PuzzleRepository{puzzles: make(map[string]puzzle.DailyPuzzle)}
}

func (r *PuzzleRepository) GetByDate(_ context.Context, date string) (puzzle.DailyPuzzle, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.puzzles[date]

	return p, ok, nil
}

func (r *PuzzleRepository) Create(_ context.Context, p puzzle.DailyPuzzle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.puzzles[p.Date]; exists {
		return puzzle.ErrAlreadyExists
	}
	r.puzzles[p.Date] = p

	return nil
}
