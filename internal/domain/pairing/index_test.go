package pairing

import (
	"testing"

	"github.com/liigadoku/liigadoku-api/internal/domain/player"
)

func findSet(t *testing.T, sets []AnswerSet, key string) AnswerSet {
	t.Helper()
	for _, s := range sets {
		if s.Key == key {
			return s
		}
	}
	t.Fatalf("no answer set for key %s", key)
	return AnswerSet{}
}

func TestBuildTeamPairSets_IntersectsRosters(t *testing.T) {
	players := []player.Player{
		{Person: "p1", Name: "A", Teams: []string{"TPS", "HIFK"}},
		{Person: "p2", Name: "B", Teams: []string{"TPS"}},
		{Person: "p3", Name: "C", Teams: []string{"HIFK", "TPS"}},
	}

	sets := BuildTeamPairSets(players)
	set := findSet(t, sets, "HIFK-TPS")
	if set.Size() != 2 {
		t.Fatalf("expected 2 shared players, got %d", set.Size())
	}
	if !set.Contains("p1") || !set.Contains("p3") {
		t.Fatalf("unexpected members: %v", set.Players)
	}

	for _, s := range sets {
		if s.Size() == 0 {
			t.Fatalf("empty set emitted for %s", s.Key)
		}
	}
}

func TestBuildCareerMilestoneSets_ListsQualifierPerTeam(t *testing.T) {
	players := []player.Player{
		{Person: "p1", Name: "A", Teams: []string{"TPS", "HIFK"}, Stats: player.Stats{Points: 450}},
		{Person: "p2", Name: "B", Teams: []string{"TPS"}, Stats: player.Stats{Points: 100}},
	}

	sets := BuildCareerMilestoneSets(players)
	tps := findSet(t, sets, "400points-TPS")
	hifk := findSet(t, sets, "400points-HIFK")
	if !tps.Contains("p1") || !hifk.Contains("p1") {
		t.Fatalf("expected p1 under both teams")
	}
	if tps.Contains("p2") {
		t.Fatalf("p2 below threshold must not qualify")
	}
}

func TestBuildSeasonMilestoneSets_DeduplicatesRepeatQualifiers(t *testing.T) {
	seasons := []player.Season{
		{Person: "p1", Name: "A", TeamName: "TPS", Season: 2000, Stats: player.Stats{Goals: 35}},
		{Person: "p1", Name: "A", TeamName: "TPS", Season: 2003, Stats: player.Stats{Goals: 31}},
	}

	sets := BuildSeasonMilestoneSets(seasons)
	set := findSet(t, sets, "30goalsSeason-TPS")
	if set.Size() != 1 {
		t.Fatalf("expected one entry for repeat qualifier, got %d", set.Size())
	}
}

func TestBuildSeasonMilestoneSets_CanonicalizesTeam(t *testing.T) {
	seasons := []player.Season{
		{Person: "p1", Name: "A", TeamName: "JYP HT", Season: 1995, Stats: player.Stats{Points: 55}},
	}

	sets := BuildSeasonMilestoneSets(seasons)
	set := findSet(t, sets, "50pointsSeason-JYP")
	if !set.Contains("p1") {
		t.Fatalf("expected alias folded into JYP")
	}
}

func TestBuildTeamCountSets_ExcludesExhibitionEntry(t *testing.T) {
	players := []player.Player{
		{Person: "p1", Name: "A", Teams: []string{"TPS", "HIFK", "KalPa", "JYP", "Lukko", "Olympia-84"}},
	}

	sets := BuildTeamCountSets(players)
	set := findSet(t, sets, "5Teams-TPS")
	if !set.Contains("p1") {
		t.Fatalf("expected p1 to qualify for 5Teams")
	}

	for _, s := range sets {
		if s.Key == "6Teams-TPS" {
			t.Fatalf("exhibition entry must not count towards 6Teams")
		}
	}
}

func TestBuildSeasonCountSets(t *testing.T) {
	seasons := map[string][]int{"TPS": {}}
	for year := 1990; year < 2002; year++ {
		seasons["TPS"] = append(seasons["TPS"], year)
	}
	players := []player.Player{
		{Person: "p1", Name: "A", Teams: []string{"TPS"}, Seasons: seasons},
	}

	sets := BuildSeasonCountSets(players)
	if set := findSet(t, sets, "10Seasons-TPS"); !set.Contains("p1") {
		t.Fatalf("expected p1 to qualify for 10Seasons")
	}
	if set := findSet(t, sets, "12Seasons-TPS"); !set.Contains("p1") {
		t.Fatalf("expected p1 to qualify for 12Seasons")
	}
	for _, s := range sets {
		if s.Key == "14Seasons-TPS" {
			t.Fatalf("12 seasons must not qualify for 14Seasons")
		}
	}
}
