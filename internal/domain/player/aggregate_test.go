package player

import (
	"testing"
)

func season(person, name, teamName string, year int, stats Stats) Season {
	return Season{
		Person:   person,
		Name:     name,
		TeamName: teamName,
		Season:   year,
		Stats:    stats,
	}
}

func TestAggregateSeasons_GroupsByPerson(t *testing.T) {
	seasons := []Season{
		season("p1", "Teemu Testaaja", "TPS", 1999, Stats{Games: 50, Goals: 10, Points: 25}),
		season("p1", "Teemu Testaaja", "TPS", 2000, Stats{Games: 48, Goals: 12, Points: 30}),
		season("p1", "Teemu Testaaja", "HIFK", 2001, Stats{Games: 52, Goals: 8, Points: 20}),
		season("p2", "Ville Vastus", "KalPa", 2001, Stats{Games: 40, Goals: 5, Points: 12}),
	}

	players, dropped := AggregateSeasons(seasons)
	if len(dropped) != 0 {
		t.Fatalf("expected no dropped records, got %d", len(dropped))
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}

	p1 := players["p1"]
	if len(p1.Teams) != 2 {
		t.Fatalf("expected 2 teams for p1, got %v", p1.Teams)
	}
	if got := p1.Stats.Games; got != 150 {
		t.Fatalf("expected 150 career games, got %d", got)
	}
	if got := p1.Stats.Points; got != 75 {
		t.Fatalf("expected 75 career points, got %d", got)
	}
	if years := p1.Seasons["TPS"]; len(years) != 2 || years[0] != 1999 || years[1] != 2000 {
		t.Fatalf("unexpected TPS seasons: %v", years)
	}
}

func TestAggregateSeasons_CanonicalizesTeamAliases(t *testing.T) {
	seasons := []Season{
		season("p1", "Teemu Testaaja", "Kiekko-Reipas", 1988, Stats{Games: 44}),
		season("p1", "Teemu Testaaja", "Pelicans", 2000, Stats{Games: 56}),
	}

	players, _ := AggregateSeasons(seasons)
	p1 := players["p1"]
	if len(p1.Teams) != 1 || p1.Teams[0] != "Pelicans" {
		t.Fatalf("expected alias folded into Pelicans, got %v", p1.Teams)
	}
	if years := p1.Seasons["Pelicans"]; len(years) != 2 {
		t.Fatalf("expected both seasons under Pelicans, got %v", years)
	}
}

func TestAggregateSeasons_DropsInvalidRecords(t *testing.T) {
	seasons := []Season{
		season("", "Nobody", "TPS", 2000, Stats{}),
		season("p1", "Teemu Testaaja", "TPS", 2000, Stats{}),
		season("p2", "Ville Vastus", "", 2001, Stats{}),
	}

	players, dropped := AggregateSeasons(seasons)
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}
	if len(dropped) != 2 {
		t.Fatalf("expected 2 dropped records, got %d", len(dropped))
	}
}

func TestAggregateSeasons_DeduplicatesSameSeasonSameTeam(t *testing.T) {
	seasons := []Season{
		season("p1", "Teemu Testaaja", "TPS", 2000, Stats{Games: 30}),
		season("p1", "Teemu Testaaja", "TPS", 2000, Stats{Games: 20}),
	}

	players, _ := AggregateSeasons(seasons)
	p1 := players["p1"]
	if years := p1.Seasons["TPS"]; len(years) != 1 {
		t.Fatalf("expected single season year, got %v", years)
	}
	if p1.Stats.Games != 50 {
		t.Fatalf("expected stats still summed, got %d games", p1.Stats.Games)
	}
}

func TestSortedList_OrdersByLastNameThenFirst(t *testing.T) {
	players := map[string]Player{
		"p1": {Person: "p1", Name: "Teemu Virtanen"},
		"p2": {Person: "p2", Name: "Aki Aaltonen"},
		"p3": {Person: "p3", Name: "Antti Virtanen"},
	}

	out := SortedList(players)
	want := []string{"p2", "p3", "p1"}
	for i, person := range want {
		if out[i].Person != person {
			t.Fatalf("position %d: expected %s, got %s", i, person, out[i].Person)
		}
	}
}

func TestToShortVersion_FormatsDateOfBirth(t *testing.T) {
	p := Player{Person: "p1", Name: "Teemu Testaaja", DateOfBirth: "1985-03-07"}

	got := p.ToShortVersion()
	if got.DateOfBirth != "07.03.1985" {
		t.Fatalf("unexpected date of birth: %s", got.DateOfBirth)
	}

	odd := Player{Person: "p2", Name: "Ville Vastus", DateOfBirth: "unknown"}
	if got := odd.ToShortVersion(); got.DateOfBirth != "unknown" {
		t.Fatalf("expected unparseable date passed through, got %s", got.DateOfBirth)
	}
}

func TestTeamCount_IgnoresExhibitionRoster(t *testing.T) {
	p := Player{Teams: []string{"TPS", "HIFK", "Olympia-84"}}
	if got := p.TeamCount("Olympia-84"); got != 2 {
		t.Fatalf("expected 2 teams, got %d", got)
	}
}

func TestSeasonCount_CountsDistinctYears(t *testing.T) {
	p := Player{Seasons: map[string][]int{
		"TPS":  {1999, 2000},
		"HIFK": {2000, 2001},
	}}
	if got := p.SeasonCount(); got != 3 {
		t.Fatalf("expected 3 distinct seasons, got %d", got)
	}
}

func TestFilterDuplicateSeasons(t *testing.T) {
	seasons := []Season{
		season("c908575b-0e8a-5e89-b7d2-587bb004700f", "Kamil Kreps", "TPS", 2010, Stats{}),
		season("p1", "Teemu Testaaja", "TPS", 2010, Stats{}),
	}

	out := FilterDuplicateSeasons(seasons)
	if len(out) != 1 || out[0].Person != "p1" {
		t.Fatalf("expected only p1 to survive, got %v", out)
	}
}
