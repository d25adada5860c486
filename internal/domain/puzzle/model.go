package puzzle

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// DailyPuzzle is the committed 3×3 grid for one calendar date. XTeams holds
// two ordinary teams plus one milestone pseudo-team; YTeams holds three
// ordinary teams. Immutable once stored.
type DailyPuzzle struct {
	Date   string   `json:"date"`
	XTeams []string `json:"xTeams"`
	YTeams []string `json:"yTeams"`
}

// ErrAlreadyExists signals a lost commit race: another request already stored
// the puzzle for this date. Callers re-read and return the stored grid.
var ErrAlreadyExists = errors.New("daily puzzle already exists")

// DateLayout is dd.mm.yyyy, the storage key format for puzzle dates.
const DateLayout = "02.01.2006"

// TimeZone anchors "today": the league plays on Helsinki time.
const TimeZone = "Europe/Helsinki"

var dateRegex = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// FormatDate renders t in the puzzle key format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate validates a dd.mm.yyyy date string.
func ParseDate(raw string) (string, error) {
	if !dateRegex.MatchString(raw) {
		return "", fmt.Errorf("date %q is not in dd.mm.yyyy format", raw)
	}
	if _, err := time.Parse(DateLayout, raw); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", raw, err)
	}

	return raw, nil
}
