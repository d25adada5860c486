package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
	"github.com/liigadoku/liigadoku-api/internal/domain/player"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
)

// writeChunkSize is the batch size for answer-set and player writes. The
// backing stores cap multi-item writes, so large result sets are split.
const writeChunkSize = 24

// SyncReport summarizes one data sync run.
type SyncReport struct {
	SeasonRecords  int `json:"seasonRecords"`
	DroppedRecords int `json:"droppedRecords"`
	Players        int `json:"players"`
	AnswerSets     int `json:"answerSets"`
}

// SyncService rebuilds the derived stores from raw season records: the
// aggregated player table, the directory, and every answer-set family.
type SyncService struct {
	players     player.Repository
	directory   player.Directory
	pairingRepo pairing.Repository
	logger      *logging.Logger
	poolSize    int
}

func NewSyncService(
	players player.Repository,
	directory player.Directory,
	pairingRepo pairing.Repository,
	poolSize int,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if poolSize <= 0 {
		poolSize = 5
	}

	return &SyncService{
		players:     players,
		directory:   directory,
		pairingRepo: pairingRepo,
		logger:      logger,
		poolSize:    poolSize,
	}
}

// Sync aggregates the season records and rebuilds every derived store. The
// five index families are built on a shared worker pool; the first failure
// aborts the run.
func (s *SyncService) Sync(ctx context.Context, seasons []player.Season) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Sync")
	defer span.End()

	seasons = player.FilterDuplicateSeasons(seasons)

	byPerson, dropped := player.AggregateSeasons(seasons)
	if len(dropped) > 0 {
		s.logger.WarnContext(ctx, "season records dropped during aggregation",
			"dropped", len(dropped),
		)
	}

	players := player.SortedList(byPerson)

	sets, err := s.buildIndexes(players, seasons)
	if err != nil {
		return SyncReport{}, err
	}

	if err := s.writePlayers(ctx, players); err != nil {
		return SyncReport{}, err
	}
	if err := s.writeAnswerSets(ctx, sets); err != nil {
		return SyncReport{}, err
	}

	report := SyncReport{
		SeasonRecords:  len(seasons),
		DroppedRecords: len(dropped),
		Players:        len(players),
		AnswerSets:     len(sets),
	}

	s.logger.InfoContext(ctx, "data sync complete",
		"season_records", report.SeasonRecords,
		"players", report.Players,
		"answer_sets", report.AnswerSets,
	)

	return report, nil
}

func (s *SyncService) buildIndexes(players []player.Player, seasons []player.Season) ([]pairing.AnswerSet, error) {
	workers, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, fmt.Errorf("create index worker pool: %w", err)
	}
	defer workers.Release()

	builders := []func() []pairing.AnswerSet{
		func() []pairing.AnswerSet { return pairing.BuildTeamPairSets(players) },
		func() []pairing.AnswerSet { return pairing.BuildCareerMilestoneSets(players) },
		func() []pairing.AnswerSet { return pairing.BuildSeasonMilestoneSets(seasons) },
		func() []pairing.AnswerSet { return pairing.BuildTeamCountSets(players) },
		func() []pairing.AnswerSet { return pairing.BuildSeasonCountSets(players) },
	}

	results := make([][]pairing.AnswerSet, len(builders))

	var wg sync.WaitGroup
	for i, build := range builders {
		i, build := i, build
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			results[i] = build()
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit index builder: %w", err)
		}
	}
	wg.Wait()

	var sets []pairing.AnswerSet
	for _, family := range results {
		sets = append(sets, family...)
	}

	return sets, nil
}

func (s *SyncService) writePlayers(ctx context.Context, players []player.Player) error {
	for start := 0; start < len(players); start += writeChunkSize {
		end := min(start+writeChunkSize, len(players))
		if err := s.players.PutBatch(ctx, players[start:end]); err != nil {
			return fmt.Errorf("write players %d..%d: %w", start, end, err)
		}
	}

	entries := make([]player.ShortVersion, 0, len(players))
	for _, p := range players {
		entries = append(entries, p.ToShortVersion())
	}
	for start := 0; start < len(entries); start += writeChunkSize {
		end := min(start+writeChunkSize, len(entries))
		if err := s.directory.PutBatch(ctx, entries[start:end]); err != nil {
			return fmt.Errorf("write directory %d..%d: %w", start, end, err)
		}
	}

	return nil
}

func (s *SyncService) writeAnswerSets(ctx context.Context, sets []pairing.AnswerSet) error {
	for start := 0; start < len(sets); start += writeChunkSize {
		end := min(start+writeChunkSize, len(sets))
		if err := s.pairingRepo.PutBatch(ctx, sets[start:end]); err != nil {
			return fmt.Errorf("write answer sets %d..%d: %w", start, end, err)
		}
	}

	return nil
}
