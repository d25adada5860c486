package game

import "errors"

// Session is one play-through of a daily puzzle. GuessedPairs prevents
// double-scoring a cell; sessions are retained after the game ends.
type Session struct {
	Date         string   `json:"date"`
	ID           string   `json:"gameId"`
	GuessedPairs []string `json:"teamPairs"`
}

// PlayerGuess is the crowd statistic for one guessed person within a cell.
type PlayerGuess struct {
	Person       string `json:"person"`
	Name         string `json:"name"`
	IsCorrect    bool   `json:"isCorrect"`
	NumOfGuesses int    `json:"numOfGuesses"`
}

// GuessRecord aggregates every guess made for one (date, pair) cell across
// all sessions. Version is the optimistic-concurrency token guarding the
// read-modify-write cycle.
type GuessRecord struct {
	Date           string                 `json:"date"`
	TeamPair       string                 `json:"teamPair"`
	GuessedPlayers map[string]PlayerGuess `json:"guessedPlayers"`
	TotalGuesses   int                    `json:"totalGuesses"`
	Version        int64                  `json:"-"`
}

// Apply folds one guess into the record.
func (r *GuessRecord) Apply(person, name string, isCorrect bool) {
	if r.GuessedPlayers == nil {
		r.GuessedPlayers = make(map[string]PlayerGuess)
	}

	entry := r.GuessedPlayers[person]
	entry.Person = person
	entry.Name = name
	entry.IsCorrect = isCorrect
	entry.NumOfGuesses++
	r.GuessedPlayers[person] = entry
	r.TotalGuesses++
}

var (
	// ErrSessionNotFound means the session id was never created for the date.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrPairAlreadyGuessed guards against double submission within a session.
	ErrPairAlreadyGuessed = errors.New("team pair already guessed in this session")
	// ErrVersionConflict means a concurrent writer advanced the guess record;
	// the caller re-reads and retries.
	ErrVersionConflict = errors.New("guess record version conflict")
)
