package memory

import (
	"context"
	"sync"

	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
)

// PairingRepository is an in-memory pairing.Repository.
type PairingRepository struct {
	mu   sync.RWMutex
	sets map[string]pairing.AnswerSet
}

func NewPairingRepository() *PairingRepository {
	return &PairingRepository{sets: make(map[string]pairing.AnswerSet)}
}

func (r *PairingRepository) PutBatch(_ context.Context, sets []pairing.AnswerSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range sets {
		r.sets[s.Key] = s
	}

	return nil
}

func (r *PairingRepository) GetByKey(_ context.Context, key string) (pairing.AnswerSet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sets[key]

	return s, ok, nil
}
