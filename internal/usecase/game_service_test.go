package usecase

import (
	"errors"
	"testing"

	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
	"github.com/liigadoku/liigadoku-api/internal/domain/player"
	"github.com/liigadoku/liigadoku-api/internal/infrastructure/repository/memory"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

func newGameServiceForTest(t *testing.T) (*GameService, *memory.Stores) {
	t.Helper()

	stores := memory.NewStores()
	if err := stores.Pairings.PutBatch(t.Context(), []pairing.AnswerSet{
		{
			Key: pairing.PairKey("TPS", "HIFK"),
			Players: []pairing.Answer{
				{Person: "p1", Name: "Teemu Testaaja"},
				{Person: "p2", Name: "Ville Vastus"},
			},
		},
	}); err != nil {
		t.Fatalf("seed pairings: %v", err)
	}
	if err := stores.Directory.PutBatch(t.Context(), []player.ShortVersion{
		{Person: "p1", Name: "Teemu Testaaja", DateOfBirth: "07.03.1985"},
		{Person: "p2", Name: "Ville Vastus", DateOfBirth: "12.11.1990"},
		{Person: "p3", Name: "Oskari Ohilyönti", DateOfBirth: "01.01.1992"},
	}); err != nil {
		t.Fatalf("seed directory: %v", err)
	}

	svc := NewGameService(
		stores.Sessions,
		stores.Guesses,
		stores.Pairings,
		stores.Directory,
		staticIDGenerator{id: "game-001"},
		logging.NewNop(),
	)

	return svc, stores
}

func TestGameService_NewSession(t *testing.T) {
	svc, stores := newGameServiceForTest(t)

	session, err := svc.NewSession(t.Context(), "31.08.2026")
	if err != nil {
		t.Fatalf("new session failed: %v", err)
	}
	if session.ID != "game-001" || session.Date != "31.08.2026" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if len(session.GuessedPairs) != 0 {
		t.Fatalf("expected no guessed pairs, got %v", session.GuessedPairs)
	}

	if _, ok, _ := stores.Sessions.Get(t.Context(), "31.08.2026", "game-001"); !ok {
		t.Fatalf("session not persisted")
	}
}

func TestGameService_SubmitGuess_CorrectAndIncorrect(t *testing.T) {
	svc, _ := newGameServiceForTest(t)

	if _, err := svc.NewSession(t.Context(), "31.08.2026"); err != nil {
		t.Fatalf("new session failed: %v", err)
	}

	rec, err := svc.SubmitGuess(t.Context(), "31.08.2026", "game-001", "TPS", "HIFK", "p1")
	if err != nil {
		t.Fatalf("submit guess failed: %v", err)
	}
	guess, ok := rec.GuessedPlayers["p1"]
	if !ok {
		t.Fatalf("expected p1 in guess record, got %+v", rec)
	}
	if !guess.IsCorrect || guess.NumOfGuesses != 1 {
		t.Fatalf("unexpected guess entry: %+v", guess)
	}
	if rec.TotalGuesses != 1 {
		t.Fatalf("expected 1 total guess, got %d", rec.TotalGuesses)
	}

	svc.idGen = staticIDGenerator{id: "game-002"}
	if _, err := svc.NewSession(t.Context(), "31.08.2026"); err != nil {
		t.Fatalf("second session failed: %v", err)
	}

	rec, err = svc.SubmitGuess(t.Context(), "31.08.2026", "game-002", "HIFK", "TPS", "p3")
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if guess := rec.GuessedPlayers["p3"]; guess.IsCorrect {
		t.Fatalf("p3 is not in the answer set, guess must be incorrect")
	}
	if rec.TotalGuesses != 2 {
		t.Fatalf("expected crowd record shared across sessions, got %d total guesses", rec.TotalGuesses)
	}
}

func TestGameService_SubmitGuess_DoubleSubmissionConflicts(t *testing.T) {
	svc, stores := newGameServiceForTest(t)

	if _, err := svc.NewSession(t.Context(), "31.08.2026"); err != nil {
		t.Fatalf("new session failed: %v", err)
	}

	if _, err := svc.SubmitGuess(t.Context(), "31.08.2026", "game-001", "TPS", "HIFK", "p1"); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	_, err := svc.SubmitGuess(t.Context(), "31.08.2026", "game-001", "HIFK", "TPS", "p2")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on double submission, got %v", err)
	}

	// The rejected guess must not touch the crowd record.
	rec, ok, err := stores.Guesses.Get(t.Context(), "31.08.2026", pairing.PairKey("TPS", "HIFK"))
	if err != nil || !ok {
		t.Fatalf("guess record missing: ok=%v err=%v", ok, err)
	}
	if rec.TotalGuesses != 1 {
		t.Fatalf("conflicting submit mutated the record: %d total guesses", rec.TotalGuesses)
	}
	if _, leaked := rec.GuessedPlayers["p2"]; leaked {
		t.Fatalf("conflicting submit added a player entry: %+v", rec.GuessedPlayers)
	}
}

func TestGameService_SubmitGuess_UnknownSession(t *testing.T) {
	svc, _ := newGameServiceForTest(t)

	_, err := svc.SubmitGuess(t.Context(), "31.08.2026", "no-such-game", "TPS", "HIFK", "p1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGameService_SubmitGuess_UnindexedPairIsWrong(t *testing.T) {
	svc, _ := newGameServiceForTest(t)

	if _, err := svc.NewSession(t.Context(), "31.08.2026"); err != nil {
		t.Fatalf("new session failed: %v", err)
	}

	rec, err := svc.SubmitGuess(t.Context(), "31.08.2026", "game-001", "KalPa", "JYP", "p1")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if rec.GuessedPlayers["p1"].IsCorrect {
		t.Fatalf("guess against unindexed pair must be incorrect")
	}
}

func TestGameService_RecordCrowdGuess_Aggregates(t *testing.T) {
	svc, stores := newGameServiceForTest(t)

	for i := 0; i < 3; i++ {
		if err := svc.RecordCrowdGuess(t.Context(), "31.08.2026", "TPS", "HIFK", "p1", "Teemu Testaaja", true); err != nil {
			t.Fatalf("record crowd guess failed: %v", err)
		}
	}
	if err := svc.RecordCrowdGuess(t.Context(), "31.08.2026", "TPS", "HIFK", "p2", "Ville Vastus", false); err != nil {
		t.Fatalf("record crowd guess failed: %v", err)
	}

	rec, ok, err := stores.Guesses.Get(t.Context(), "31.08.2026", pairing.PairKey("TPS", "HIFK"))
	if err != nil || !ok {
		t.Fatalf("guess record missing: ok=%v err=%v", ok, err)
	}
	if rec.TotalGuesses != 4 {
		t.Fatalf("expected 4 total guesses, got %d", rec.TotalGuesses)
	}
	if rec.GuessedPlayers["p1"].NumOfGuesses != 3 {
		t.Fatalf("expected 3 guesses for p1, got %d", rec.GuessedPlayers["p1"].NumOfGuesses)
	}
	if rec.GuessedPlayers["p2"].IsCorrect {
		t.Fatalf("p2 entry must be incorrect")
	}
}

func TestGameService_GuessesByDate(t *testing.T) {
	svc, _ := newGameServiceForTest(t)

	if err := svc.RecordCrowdGuess(t.Context(), "31.08.2026", "TPS", "HIFK", "p1", "Teemu Testaaja", true); err != nil {
		t.Fatalf("record crowd guess failed: %v", err)
	}
	if err := svc.RecordCrowdGuess(t.Context(), "31.08.2026", "KalPa", "JYP", "p2", "Ville Vastus", false); err != nil {
		t.Fatalf("record crowd guess failed: %v", err)
	}
	if err := svc.RecordCrowdGuess(t.Context(), "30.08.2026", "TPS", "HIFK", "p1", "Teemu Testaaja", true); err != nil {
		t.Fatalf("record crowd guess failed: %v", err)
	}

	records, err := svc.GuessesByDate(t.Context(), "31.08.2026")
	if err != nil {
		t.Fatalf("guesses by date failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for the date, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Date != "31.08.2026" {
			t.Fatalf("record from wrong date leaked: %+v", rec)
		}
	}
}
