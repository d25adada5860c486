package pairing

import "testing"

func TestPairKey_SortsTeamPairs(t *testing.T) {
	if got := PairKey("TPS", "HIFK"); got != "HIFK-TPS" {
		t.Fatalf("unexpected key: %s", got)
	}
	if PairKey("TPS", "HIFK") != PairKey("HIFK", "TPS") {
		t.Fatalf("expected operand order not to matter")
	}
}

func TestPairKey_MilestoneAlwaysFirst(t *testing.T) {
	if got := PairKey("TPS", "400points"); got != "400points-TPS" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := PairKey("400points", "TPS"); got != "400points-TPS" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestSplitKey_RoundTrips(t *testing.T) {
	cases := []struct {
		key           string
		first, second string
	}{
		{"HIFK-TPS", "HIFK", "TPS"},
		{"400points-TPS", "400points", "TPS"},
		{"50pointsSeason-Kiekko-Espoo", "50pointsSeason", "Kiekko-Espoo"},
		{"5Teams-HIFK", "5Teams", "HIFK"},
	}

	for _, tc := range cases {
		first, second := SplitKey(tc.key)
		if first != tc.first || second != tc.second {
			t.Fatalf("SplitKey(%q) = %q, %q; want %q, %q", tc.key, first, second, tc.first, tc.second)
		}
	}
}

func TestIsMilestone(t *testing.T) {
	if !IsMilestone("600games") {
		t.Fatalf("expected 600games to be a milestone")
	}
	if !IsMilestone("16Seasons") {
		t.Fatalf("expected 16Seasons to be a milestone")
	}
	if IsMilestone("TPS") {
		t.Fatalf("expected TPS not to be a milestone")
	}
}

func TestDrawableMilestones_ExcludeSeasonCounts(t *testing.T) {
	for _, name := range DrawableMilestones() {
		for _, m := range SeasonCountMilestones {
			if name == m.Name {
				t.Fatalf("season-count milestone %s must not be drawable", name)
			}
		}
	}
}
