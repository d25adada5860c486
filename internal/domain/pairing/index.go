package pairing

import (
	"sort"

	"github.com/liigadoku/liigadoku-api/internal/domain/player"
	"github.com/liigadoku/liigadoku-api/internal/domain/team"
)

// BuildTeamPairSets intersects the rosters of every unordered pair of
// modern-era teams. Pairs with no shared players are omitted.
func BuildTeamPairSets(players []player.Player) []AnswerSet {
	byTeam := make(map[string]map[string]struct{})
	for _, p := range players {
		for _, t := range p.Teams {
			if byTeam[t] == nil {
				byTeam[t] = make(map[string]struct{})
			}
			byTeam[t][p.Person] = struct{}{}
		}
	}

	out := make([]AnswerSet, 0, len(team.ModernEraRoster)*(len(team.ModernEraRoster)-1)/2)
	for _, pair := range team.Pairs() {
		first, second := byTeam[pair[0]], byTeam[pair[1]]
		if len(first) == 0 || len(second) == 0 {
			continue
		}

		var answers []Answer
		for _, p := range players {
			if _, ok := first[p.Person]; !ok {
				continue
			}
			if _, ok := second[p.Person]; !ok {
				continue
			}
			answers = append(answers, Answer{Person: p.Person, Name: p.Name})
		}
		if len(answers) == 0 {
			continue
		}

		out = append(out, AnswerSet{Key: PairKey(pair[0], pair[1]), Players: answers})
	}

	return out
}

// BuildCareerMilestoneSets qualifies players by career totals. A qualifying
// player appears under every team they played for.
func BuildCareerMilestoneSets(players []player.Player) []AnswerSet {
	byKey := make(map[string][]Answer)
	for _, m := range CareerMilestones {
		for _, p := range players {
			if m.Stat(p.Stats) < m.Threshold {
				continue
			}
			for _, t := range p.Teams {
				key := MilestoneKey(m.Name, t)
				byKey[key] = append(byKey[key], Answer{Person: p.Person, Name: p.Name})
			}
		}
	}

	return collectSets(byKey)
}

// BuildSeasonMilestoneSets qualifies players by single-season statistics,
// keyed by the team of that season. A player reaching a threshold in several
// seasons with the same team is still listed once per key.
func BuildSeasonMilestoneSets(seasons []player.Season) []AnswerSet {
	byKey := make(map[string][]Answer)
	seen := make(map[string]map[string]struct{})

	for _, m := range SeasonMilestones {
		for _, s := range seasons {
			if m.Stat(s.Stats) < m.Threshold {
				continue
			}

			key := MilestoneKey(m.Name, team.CanonicalName(s.TeamName))
			if seen[key] == nil {
				seen[key] = make(map[string]struct{})
			}
			if _, dup := seen[key][s.Person]; dup {
				continue
			}
			seen[key][s.Person] = struct{}{}
			byKey[key] = append(byKey[key], Answer{Person: s.Person, Name: s.Name})
		}
	}

	return collectSets(byKey)
}

// BuildTeamCountSets qualifies players by how many distinct clubs they have
// represented, excluding the exhibition entry.
func BuildTeamCountSets(players []player.Player) []AnswerSet {
	byKey := make(map[string][]Answer)
	for _, p := range players {
		count := p.TeamCount(team.ExhibitionTeam)
		for _, m := range TeamCountMilestones {
			if count < m.Threshold {
				continue
			}
			for _, t := range p.Teams {
				key := MilestoneKey(m.Name, t)
				byKey[key] = append(byKey[key], Answer{Person: p.Person, Name: p.Name})
			}
		}
	}

	return collectSets(byKey)
}

// BuildSeasonCountSets qualifies players by distinct seasons played.
func BuildSeasonCountSets(players []player.Player) []AnswerSet {
	byKey := make(map[string][]Answer)
	for _, p := range players {
		count := p.SeasonCount()
		for _, m := range SeasonCountMilestones {
			if count < m.Threshold {
				continue
			}
			for _, t := range p.Teams {
				key := MilestoneKey(m.Name, t)
				byKey[key] = append(byKey[key], Answer{Person: p.Person, Name: p.Name})
			}
		}
	}

	return collectSets(byKey)
}

func collectSets(byKey map[string][]Answer) []AnswerSet {
	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]AnswerSet, 0, len(keys))
	for _, key := range keys {
		out = append(out, AnswerSet{Key: key, Players: byKey[key]})
	}

	return out
}
