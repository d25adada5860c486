package memory

import (
	"context"
	"fmt"

	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
	"github.com/liigadoku/liigadoku-api/internal/domain/player"
)

// Stores bundles one of each in-memory repository, the full persistence
// surface of the API when no database is configured.
type Stores struct {
	Players   *PlayerRepository
	Directory *PlayerDirectory
	Pairings  *PairingRepository
	Puzzles   *PuzzleRepository
	Sessions  *SessionRepository
	Guesses   *GuessRepository
}

func NewStores() *Stores {
	return &Stores{
		Players:   NewPlayerRepository(),
		Directory: NewPlayerDirectory(),
		Pairings:  NewPairingRepository(),
		Puzzles:   NewPuzzleRepository(),
		Sessions:  NewSessionRepository(),
		Guesses:   NewGuessRepository(),
	}
}

// Seed builds every derived store from raw season records. It mirrors the
// data sync pipeline without batching, which in-memory writes do not need.
func (s *Stores) Seed(ctx context.Context, seasons []player.Season) error {
	seasons = player.FilterDuplicateSeasons(seasons)

	byPerson, _ := player.AggregateSeasons(seasons)
	players := player.SortedList(byPerson)

	if err := s.Players.PutBatch(ctx, players); err != nil {
		return fmt.Errorf("seed players: %w", err)
	}

	entries := make([]player.ShortVersion, 0, len(players))
	for _, p := range players {
		entries = append(entries, p.ToShortVersion())
	}
	if err := s.Directory.PutBatch(ctx, entries); err != nil {
		return fmt.Errorf("seed directory: %w", err)
	}

	var sets []pairing.AnswerSet
	sets = append(sets, pairing.BuildTeamPairSets(players)...)
	sets = append(sets, pairing.BuildCareerMilestoneSets(players)...)
	sets = append(sets, pairing.BuildSeasonMilestoneSets(seasons)...)
	sets = append(sets, pairing.BuildTeamCountSets(players)...)
	sets = append(sets, pairing.BuildSeasonCountSets(players)...)

	if err := s.Pairings.PutBatch(ctx, sets); err != nil {
		return fmt.Errorf("seed answer sets: %w", err)
	}

	return nil
}
