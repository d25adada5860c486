package player

import (
	"slices"
	"sort"
	"strings"

	"github.com/liigadoku/liigadoku-api/internal/domain/team"
)

// AggregateSeasons folds raw season records into one Player per person.
// Team names are normalized before grouping, so a club's historical aliases
// land under its canonical name. Records failing identity validation are
// skipped; the caller decides whether to log them.
func AggregateSeasons(seasons []Season) (map[string]Player, []Season) {
	players := make(map[string]Player)
	var dropped []Season

	for _, s := range seasons {
		if err := s.Validate(); err != nil {
			dropped = append(dropped, s)
			continue
		}

		teamName := team.CanonicalName(s.TeamName)

		hit, ok := players[s.Person]
		if !ok {
			players[s.Person] = Player{
				Person:      s.Person,
				Name:        s.Name,
				DateOfBirth: s.DateOfBirth,
				Teams:       []string{teamName},
				Seasons:     map[string][]int{teamName: {s.Season}},
				SourceID:    s.SourceID,
				Stats:       s.Stats,
			}
			continue
		}

		if !slices.Contains(hit.Teams, teamName) {
			hit.Teams = append(hit.Teams, teamName)
			hit.Seasons[teamName] = []int{s.Season}
		} else if !slices.Contains(hit.Seasons[teamName], s.Season) {
			hit.Seasons[teamName] = append(hit.Seasons[teamName], s.Season)
		}

		hit.Stats.Add(s.Stats)
		players[s.Person] = hit
	}

	for person, p := range players {
		for _, years := range p.Seasons {
			sort.Ints(years)
		}
		players[person] = p
	}

	return players, dropped
}

// SortedList flattens the aggregate map into a slice ordered by last name
// then first name, the ordering used by the player directory.
func SortedList(players map[string]Player) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		iFirst, iLast := splitName(out[i].Name)
		jFirst, jLast := splitName(out[j].Name)
		if iLast == jLast {
			return iFirst < jFirst
		}
		return iLast < jLast
	})

	return out
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}

	return parts[0], parts[len(parts)-1]
}
