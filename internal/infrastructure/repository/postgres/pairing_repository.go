package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
)

// PairingRepository stores answer sets as jsonb documents keyed by the
// canonical pair key. Ordinary team pairs and milestone pairs share the
// table; the key format keeps them apart.
type PairingRepository struct {
	db *sqlx.DB
}

func NewPairingRepository(db *sqlx.DB) *PairingRepository {
	return &PairingRepository{db: db}
}

func (r *PairingRepository) PutBatch(ctx context.Context, sets []pairing.AnswerSet) error {
	if len(sets) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx put answer sets: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `INSERT INTO team_pair_players (pair_key, doc, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (pair_key)
DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`

	for _, set := range sets {
		doc, err := sonic.Marshal(set)
		if err != nil {
			return fmt.Errorf("marshal answer set %s: %w", set.Key, err)
		}
		if _, err := tx.ExecContext(ctx, query, set.Key, doc); err != nil {
			return fmt.Errorf("put answer set %s: %w", set.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put answer sets tx: %w", err)
	}

	return nil
}

func (r *PairingRepository) GetByKey(ctx context.Context, key string) (pairing.AnswerSet, bool, error) {
	const query = `SELECT doc FROM team_pair_players WHERE pair_key = $1`

	var doc []byte
	if err := r.db.GetContext(ctx, &doc, query, key); err != nil {
		if isNotFound(err) {
			return pairing.AnswerSet{}, false, nil
		}
		return pairing.AnswerSet{}, false, fmt.Errorf("get answer set %s: %w", key, err)
	}

	var set pairing.AnswerSet
	if err := sonic.Unmarshal(doc, &set); err != nil {
		return pairing.AnswerSet{}, false, fmt.Errorf("unmarshal answer set %s: %w", key, err)
	}

	return set, true, nil
}
