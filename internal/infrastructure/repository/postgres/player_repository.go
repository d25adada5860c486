package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/liigadoku/liigadoku-api/internal/domain/player"
)

// PlayerRepository stores aggregated players as jsonb documents keyed by
// person id.
type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) PutBatch(ctx context.Context, players []player.Player) error {
	if len(players) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx put players: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `INSERT INTO players (person, doc, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (person)
DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`

	for _, p := range players {
		doc, err := sonic.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal player %s: %w", p.Person, err)
		}
		if _, err := tx.ExecContext(ctx, query, p.Person, doc); err != nil {
			return fmt.Errorf("put player %s: %w", p.Person, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put players tx: %w", err)
	}

	return nil
}

func (r *PlayerRepository) GetByPerson(ctx context.Context, person string) (player.Player, bool, error) {
	const query = `SELECT doc FROM players WHERE person = $1`

	var doc []byte
	if err := r.db.GetContext(ctx, &doc, query, person); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player %s: %w", person, err)
	}

	var p player.Player
	if err := sonic.Unmarshal(doc, &p); err != nil {
		return player.Player{}, false, fmt.Errorf("unmarshal player %s: %w", person, err)
	}

	return p, true, nil
}

// PlayerDirectoryRepository stores the picker directory. sort_key orders the
// listing by last name then first name, matching the sync's display order.
type PlayerDirectoryRepository struct {
	db *sqlx.DB
}

func NewPlayerDirectoryRepository(db *sqlx.DB) *PlayerDirectoryRepository {
	return &PlayerDirectoryRepository{db: db}
}

type playerDirectoryRow struct {
	Person      string `db:"person"`
	Name        string `db:"name"`
	DateOfBirth string `db:"date_of_birth"`
}

func (r *PlayerDirectoryRepository) PutBatch(ctx context.Context, entries []player.ShortVersion) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx put directory entries: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `INSERT INTO player_directory (person, name, date_of_birth, sort_key, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (person)
DO UPDATE SET name = EXCLUDED.name, date_of_birth = EXCLUDED.date_of_birth, sort_key = EXCLUDED.sort_key, updated_at = NOW()`

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, query, e.Person, e.Name, e.DateOfBirth, directorySortKey(e.Name)); err != nil {
			return fmt.Errorf("put directory entry %s: %w", e.Person, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put directory entries tx: %w", err)
	}

	return nil
}

func (r *PlayerDirectoryRepository) GetByPerson(ctx context.Context, person string) (player.ShortVersion, bool, error) {
	const query = `SELECT person, name, date_of_birth FROM player_directory WHERE person = $1`

	var row playerDirectoryRow
	if err := r.db.GetContext(ctx, &row, query, person); err != nil {
		if isNotFound(err) {
			return player.ShortVersion{}, false, nil
		}
		return player.ShortVersion{}, false, fmt.Errorf("get directory entry %s: %w", person, err)
	}

	return player.ShortVersion(row), true, nil
}

func (r *PlayerDirectoryRepository) ListAll(ctx context.Context) ([]player.ShortVersion, error) {
	const query = `SELECT person, name, date_of_birth FROM player_directory ORDER BY sort_key, person`

	var rows []playerDirectoryRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list directory entries: %w", err)
	}

	out := make([]player.ShortVersion, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.ShortVersion(row))
	}

	return out, nil
}

func directorySortKey(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}

	return parts[len(parts)-1] + " " + parts[0]
}
