package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
	"github.com/liigadoku/liigadoku-api/internal/domain/puzzle"
	"github.com/liigadoku/liigadoku-api/internal/domain/team"
	"github.com/liigadoku/liigadoku-api/internal/infrastructure/repository/memory"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
)

// seedAllPairings indexes every team pair and every milestone-team cell with
// answerCount entries, so any drafted grid validates.
func seedAllPairings(t *testing.T, repo *memory.PairingRepository, answerCount int) {
	t.Helper()

	answers := make([]pairing.Answer, 0, answerCount)
	for i := 0; i < answerCount; i++ {
		answers = append(answers, pairing.Answer{
			Person: fmt.Sprintf("person-%d", i),
			Name:   fmt.Sprintf("Player %d", i),
		})
	}

	var sets []pairing.AnswerSet
	for _, pair := range team.Pairs() {
		sets = append(sets, pairing.AnswerSet{Key: pairing.PairKey(pair[0], pair[1]), Players: answers})
	}
	for _, m := range pairing.DrawableMilestones() {
		for _, tm := range team.ModernEraRoster {
			sets = append(sets, pairing.AnswerSet{Key: pairing.MilestoneKey(m, tm), Players: answers})
		}
	}

	if err := repo.PutBatch(t.Context(), sets); err != nil {
		t.Fatalf("seed pairings: %v", err)
	}
}

func newPuzzleServiceForTest(t *testing.T, puzzles *memory.PuzzleRepository, pairings *memory.PairingRepository) *PuzzleService {
	t.Helper()

	svc, err := NewPuzzleService(puzzles, pairings, 5, 100, logging.NewNop())
	if err != nil {
		t.Fatalf("build puzzle service: %v", err)
	}
	svc.now = func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	}
	svc.rng = rand.New(rand.NewSource(42))

	return svc
}

func TestPuzzleService_PuzzleOfTheDay_CommitsOnce(t *testing.T) {
	puzzles := memory.NewPuzzleRepository()
	pairings := memory.NewPairingRepository()
	seedAllPairings(t, pairings, 5)

	svc := newPuzzleServiceForTest(t, puzzles, pairings)

	first, err := svc.PuzzleOfTheDay(t.Context())
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	if len(first.XTeams) != 3 || len(first.YTeams) != 3 {
		t.Fatalf("unexpected grid shape: x=%v y=%v", first.XTeams, first.YTeams)
	}
	if !pairing.IsMilestone(first.XTeams[2]) {
		t.Fatalf("expected milestone in third x slot, got %s", first.XTeams[2])
	}
	for _, x := range first.XTeams[:2] {
		if pairing.IsMilestone(x) {
			t.Fatalf("unexpected milestone in team slot: %s", x)
		}
	}

	second, err := svc.PuzzleOfTheDay(t.Context())
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if second.Date != first.Date {
		t.Fatalf("date changed between calls: %s vs %s", second.Date, first.Date)
	}
	for i := range first.XTeams {
		if second.XTeams[i] != first.XTeams[i] {
			t.Fatalf("x teams changed between calls: %v vs %v", second.XTeams, first.XTeams)
		}
	}
	for i := range first.YTeams {
		if second.YTeams[i] != first.YTeams[i] {
			t.Fatalf("y teams changed between calls: %v vs %v", second.YTeams, first.YTeams)
		}
	}
}

func TestPuzzleService_PuzzleOfTheDay_ExcludesYesterdaysTeams(t *testing.T) {
	puzzles := memory.NewPuzzleRepository()
	pairings := memory.NewPairingRepository()
	seedAllPairings(t, pairings, 5)

	svc := newPuzzleServiceForTest(t, puzzles, pairings)

	yesterday := puzzle.DailyPuzzle{
		Date:   "30.08.2026",
		XTeams: []string{"TPS", "HIFK", "400points"},
		YTeams: []string{"KalPa", "JYP", "Lukko"},
	}
	if err := puzzles.Create(t.Context(), yesterday); err != nil {
		t.Fatalf("seed yesterday: %v", err)
	}

	today, err := svc.PuzzleOfTheDay(t.Context())
	if err != nil {
		t.Fatalf("puzzle of the day failed: %v", err)
	}

	used := append(append([]string{}, today.XTeams[:2]...), today.YTeams...)
	for _, u := range used {
		for _, y := range []string{"TPS", "HIFK", "KalPa", "JYP", "Lukko"} {
			if u == y {
				t.Fatalf("team %s reused from yesterday's grid", u)
			}
		}
	}
}

func TestPuzzleService_PuzzleOfTheDay_GenerationFails(t *testing.T) {
	puzzles := memory.NewPuzzleRepository()
	pairings := memory.NewPairingRepository()

	svc, err := NewPuzzleService(puzzles, pairings, 5, 3, logging.NewNop())
	if err != nil {
		t.Fatalf("build puzzle service: %v", err)
	}

	_, err = svc.PuzzleOfTheDay(t.Context())
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestPuzzleService_PuzzleOfTheDay_BelowThresholdFails(t *testing.T) {
	puzzles := memory.NewPuzzleRepository()
	pairings := memory.NewPairingRepository()
	seedAllPairings(t, pairings, 4)

	svc, err := NewPuzzleService(puzzles, pairings, 5, 3, logging.NewNop())
	if err != nil {
		t.Fatalf("build puzzle service: %v", err)
	}

	_, err = svc.PuzzleOfTheDay(t.Context())
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed for thin answer sets, got %v", err)
	}
}

type failingPairingRepo struct{}

func (failingPairingRepo) PutBatch(context.Context, []pairing.AnswerSet) error {
	return errors.New("pairing store down")
}

func (failingPairingRepo) GetByKey(context.Context, string) (pairing.AnswerSet, bool, error) {
	return pairing.AnswerSet{}, false, errors.New("pairing store down")
}

func TestPuzzleService_PuzzleOfTheDay_StoreOutage(t *testing.T) {
	puzzles := memory.NewPuzzleRepository()

	svc, err := NewPuzzleService(puzzles, failingPairingRepo{}, 5, 3, logging.NewNop())
	if err != nil {
		t.Fatalf("build puzzle service: %v", err)
	}

	_, err = svc.PuzzleOfTheDay(t.Context())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable during store outage, got %v", err)
	}
}

func TestPuzzleService_PuzzleByDate(t *testing.T) {
	puzzles := memory.NewPuzzleRepository()
	pairings := memory.NewPairingRepository()
	svc := newPuzzleServiceForTest(t, puzzles, pairings)

	stored := puzzle.DailyPuzzle{
		Date:   "15.02.2026",
		XTeams: []string{"TPS", "HIFK", "400points"},
		YTeams: []string{"KalPa", "JYP", "Lukko"},
	}
	if err := puzzles.Create(t.Context(), stored); err != nil {
		t.Fatalf("seed puzzle: %v", err)
	}

	got, err := svc.PuzzleByDate(t.Context(), "15.02.2026")
	if err != nil {
		t.Fatalf("puzzle by date failed: %v", err)
	}
	if got.Date != stored.Date {
		t.Fatalf("unexpected puzzle: %+v", got)
	}

	_, err = svc.PuzzleByDate(t.Context(), "16.02.2026")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
