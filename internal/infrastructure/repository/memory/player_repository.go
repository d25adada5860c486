package memory

import (
	"context"
	"sync"

	"github.com/liigadoku/liigadoku-api/internal/domain/player"
)

// PlayerRepository is an in-memory player.Repository for tests and for
// running the API without a database.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{players: make(map[string]player.Player)}
}

func (r *PlayerRepository) PutBatch(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range players {
		r.players[p.Person] = p
	}

	return nil
}

func (r *PlayerRepository) GetByPerson(_ context.Context, person string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[person]

	return p, ok, nil
}

// PlayerDirectory is an in-memory player.Directory. ListAll preserves the
// insertion order of PutBatch calls, which the sync writes in display order.
type PlayerDirectory struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]player.ShortVersion
}

func NewPlayerDirectory() *PlayerDirectory {
	return &PlayerDirectory{entries: make(map[string]player.ShortVersion)}
}

func (d *PlayerDirectory) PutBatch(_ context.Context, entries []player.ShortVersion) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, e := range entries {
		if _, exists := d.entries[e.Person]; !exists {
			d.order = append(d.order, e.Person)
		}
		d.entries[e.Person] = e
	}

	return nil
}

func (d *PlayerDirectory) GetByPerson(_ context.Context, person string) (player.ShortVersion, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.entries[person]

	return e, ok, nil
}

func (d *PlayerDirectory) ListAll(_ context.Context) ([]player.ShortVersion, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]player.ShortVersion, 0, len(d.order))
	for _, person := range d.order {
		out = append(out, d.entries[person])
	}

	return out, nil
}
