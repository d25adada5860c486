package usecase

import (
	"fmt"
	"testing"

	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
	"github.com/liigadoku/liigadoku-api/internal/domain/player"
	"github.com/liigadoku/liigadoku-api/internal/infrastructure/repository/memory"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
)

func syncSeasonsFixture() []player.Season {
	var seasons []player.Season
	// Thirty journeymen who all played for both TPS and HIFK.
	for i := 0; i < 30; i++ {
		person := fmt.Sprintf("p%02d", i)
		name := fmt.Sprintf("Pelaaja %c Sukunimi%02d", 'A'+i%26, i)
		seasons = append(seasons,
			player.Season{
				Person: person, Name: name, DateOfBirth: "1985-03-07",
				TeamName: "TPS", Season: 2000,
				Stats: player.Stats{Games: 56, Goals: 20, Assists: 35, Points: 55},
			},
			player.Season{
				Person: person, Name: name, DateOfBirth: "1985-03-07",
				TeamName: "HIFK", Season: 2001,
				Stats: player.Stats{Games: 60, Goals: 10, Assists: 15, Points: 25},
			},
		)
	}
	// One invalid record the aggregator must drop.
	seasons = append(seasons, player.Season{Person: "broken", Season: 2001})

	return seasons
}

func TestSyncService_Sync(t *testing.T) {
	stores := memory.NewStores()
	svc := NewSyncService(stores.Players, stores.Directory, stores.Pairings, 5, logging.NewNop())

	report, err := svc.Sync(t.Context(), syncSeasonsFixture())
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if report.SeasonRecords != 61 {
		t.Fatalf("expected 61 season records, got %d", report.SeasonRecords)
	}
	if report.DroppedRecords != 1 {
		t.Fatalf("expected 1 dropped record, got %d", report.DroppedRecords)
	}
	if report.Players != 30 {
		t.Fatalf("expected 30 players, got %d", report.Players)
	}
	if report.AnswerSets == 0 {
		t.Fatalf("expected answer sets to be built")
	}

	set, ok, err := stores.Pairings.GetByKey(t.Context(), pairing.PairKey("TPS", "HIFK"))
	if err != nil || !ok {
		t.Fatalf("team pair set missing: ok=%v err=%v", ok, err)
	}
	if set.Size() != 30 {
		t.Fatalf("expected 30 shared players, got %d", set.Size())
	}

	// 50 points in the 2000 season with TPS.
	seasonSet, ok, err := stores.Pairings.GetByKey(t.Context(), "50pointsSeason-TPS")
	if err != nil || !ok {
		t.Fatalf("season milestone set missing: ok=%v err=%v", ok, err)
	}
	if seasonSet.Size() != 30 {
		t.Fatalf("expected 30 season qualifiers, got %d", seasonSet.Size())
	}

	entries, err := stores.Directory.ListAll(t.Context())
	if err != nil {
		t.Fatalf("list directory: %v", err)
	}
	if len(entries) != 30 {
		t.Fatalf("expected 30 directory entries, got %d", len(entries))
	}
	if entries[0].DateOfBirth != "07.03.1985" {
		t.Fatalf("expected display date format, got %s", entries[0].DateOfBirth)
	}
	for i := 1; i < len(entries); i++ {
		_, prevLast := lastName(entries[i-1].Name)
		_, curLast := lastName(entries[i].Name)
		if prevLast > curLast {
			t.Fatalf("directory out of order at %d: %s before %s", i, entries[i-1].Name, entries[i].Name)
		}
	}

	p, ok, err := stores.Players.GetByPerson(t.Context(), "p00")
	if err != nil || !ok {
		t.Fatalf("player missing: ok=%v err=%v", ok, err)
	}
	if p.Stats.Points != 80 {
		t.Fatalf("expected 80 career points, got %d", p.Stats.Points)
	}
}

func lastName(name string) (string, string) {
	first, last := "", ""
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == ' ' {
			first, last = name[:i], name[i+1:]
			break
		}
	}

	return first, last
}

func TestSyncService_Sync_Empty(t *testing.T) {
	stores := memory.NewStores()
	svc := NewSyncService(stores.Players, stores.Directory, stores.Pairings, 2, logging.NewNop())

	report, err := svc.Sync(t.Context(), nil)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if report.Players != 0 || report.AnswerSets != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}
