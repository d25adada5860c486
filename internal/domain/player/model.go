package player

import (
	"fmt"
	"strings"
)

// Season is one raw appearance record: a person playing for one team in one
// season. Records come straight from the season-data source and are consumed
// once by the aggregator.
type Season struct {
	Person      string `json:"person"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Season      int    `json:"season"`
	TeamName    string `json:"teamName"`
	SourceID    int64  `json:"id"`
	Stats
}

// Stats are the per-season counting statistics. Absent fields decode to
// zero, which is the correct neutral value for summation.
type Stats struct {
	Games          int `json:"games"`
	Goals          int `json:"goals"`
	Assists        int `json:"assists"`
	Points         int `json:"points"`
	PenaltyMinutes int `json:"penaltyMinutes"`
	PlusMinus      int `json:"plusMinus"`
	Shots          int `json:"shots"`
}

func (s *Stats) Add(other Stats) {
	s.Games += other.Games
	s.Goals += other.Goals
	s.Assists += other.Assists
	s.Points += other.Points
	s.PenaltyMinutes += other.PenaltyMinutes
	s.PlusMinus += other.PlusMinus
	s.Shots += other.Shots
}

// Validate checks the identity fields required to aggregate a record.
// Stats may legitimately be absent.
func (s Season) Validate() error {
	if strings.TrimSpace(s.Person) == "" {
		return fmt.Errorf("season record person id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("season record name is required")
	}
	if strings.TrimSpace(s.TeamName) == "" {
		return fmt.Errorf("season record team name is required")
	}
	if s.Season <= 0 {
		return fmt.Errorf("season record year is required")
	}

	return nil
}

// Player is the aggregate of every season a person has played. Teams is
// exactly the key set of Seasons; Stats holds career totals.
type Player struct {
	Person      string           `json:"person"`
	Name        string           `json:"name"`
	DateOfBirth string           `json:"dateOfBirth"`
	Teams       []string         `json:"teams"`
	Seasons     map[string][]int `json:"seasons"`
	SourceID    int64            `json:"id,omitempty"`
	Stats
}

// TeamCount reports how many distinct clubs the player has represented,
// ignoring the exhibition roster entry.
func (p Player) TeamCount(exhibition string) int {
	count := 0
	for _, t := range p.Teams {
		if t != exhibition {
			count++
		}
	}

	return count
}

// SeasonCount reports the number of distinct season years across all teams.
func (p Player) SeasonCount() int {
	years := make(map[int]struct{})
	for _, list := range p.Seasons {
		for _, year := range list {
			years[year] = struct{}{}
		}
	}

	return len(years)
}

// ShortVersion is the directory entry shown in guess pickers: enough to
// identify a person without the full career record.
type ShortVersion struct {
	Person      string `json:"person"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
}

// ToShortVersion formats the date of birth as dd.mm.yyyy, the display
// format used throughout the game.
func (p Player) ToShortVersion() ShortVersion {
	return ShortVersion{
		Person:      p.Person,
		Name:        p.Name,
		DateOfBirth: formatDateOfBirth(p.DateOfBirth),
	}
}

func formatDateOfBirth(dateOfBirth string) string {
	parts := strings.SplitN(dateOfBirth, "-", 3)
	if len(parts) != 3 {
		return dateOfBirth
	}

	return parts[2] + "." + parts[1] + "." + parts[0]
}
