package pairing

import "github.com/liigadoku/liigadoku-api/internal/domain/player"

// CareerMilestone thresholds a career-cumulative statistic.
type CareerMilestone struct {
	Name      string
	Threshold int
	Stat      func(player.Stats) int
}

// SeasonMilestone thresholds a single-season statistic.
type SeasonMilestone struct {
	Name      string
	Threshold int
	Stat      func(player.Stats) int
}

// CountMilestone thresholds a count derived from the aggregate (distinct
// teams or distinct seasons).
type CountMilestone struct {
	Name      string
	Threshold int
}

var CareerMilestones = []CareerMilestone{
	{Name: "400points", Threshold: 400, Stat: func(s player.Stats) int { return s.Points }},
	{Name: "600games", Threshold: 600, Stat: func(s player.Stats) int { return s.Games }},
	{Name: "300assists", Threshold: 300, Stat: func(s player.Stats) int { return s.Assists }},
	{Name: "500penaltyMinutes", Threshold: 500, Stat: func(s player.Stats) int { return s.PenaltyMinutes }},
	{Name: "200goals", Threshold: 200, Stat: func(s player.Stats) int { return s.Goals }},
	{Name: "200plusMinus", Threshold: 200, Stat: func(s player.Stats) int { return s.PlusMinus }},
}

var SeasonMilestones = []SeasonMilestone{
	{Name: "50pointsSeason", Threshold: 50, Stat: func(s player.Stats) int { return s.Points }},
	{Name: "60pointsSeason", Threshold: 60, Stat: func(s player.Stats) int { return s.Points }},
	{Name: "40assistsSeason", Threshold: 40, Stat: func(s player.Stats) int { return s.Assists }},
	{Name: "35assistsSeason", Threshold: 35, Stat: func(s player.Stats) int { return s.Assists }},
	{Name: "30assistsSeason", Threshold: 30, Stat: func(s player.Stats) int { return s.Assists }},
	{Name: "100penaltyMinutesSeason", Threshold: 100, Stat: func(s player.Stats) int { return s.PenaltyMinutes }},
	{Name: "150penaltyMinutesSeason", Threshold: 150, Stat: func(s player.Stats) int { return s.PenaltyMinutes }},
	{Name: "30goalsSeason", Threshold: 30, Stat: func(s player.Stats) int { return s.Goals }},
	{Name: "25goalsSeason", Threshold: 25, Stat: func(s player.Stats) int { return s.Goals }},
	{Name: "20goalsSeason", Threshold: 20, Stat: func(s player.Stats) int { return s.Goals }},
}

var TeamCountMilestones = []CountMilestone{
	{Name: "5Teams", Threshold: 5},
	{Name: "6Teams", Threshold: 6},
	{Name: "7Teams", Threshold: 7},
	{Name: "8Teams", Threshold: 8},
}

var SeasonCountMilestones = []CountMilestone{
	{Name: "10Seasons", Threshold: 10},
	{Name: "12Seasons", Threshold: 12},
	{Name: "14Seasons", Threshold: 14},
	{Name: "15Seasons", Threshold: 15},
	{Name: "16Seasons", Threshold: 16},
}

var milestoneNames = buildMilestoneNames()

func buildMilestoneNames() map[string]struct{} {
	out := make(map[string]struct{})
	for _, m := range CareerMilestones {
		out[m.Name] = struct{}{}
	}
	for _, m := range SeasonMilestones {
		out[m.Name] = struct{}{}
	}
	for _, m := range TeamCountMilestones {
		out[m.Name] = struct{}{}
	}
	for _, m := range SeasonCountMilestones {
		out[m.Name] = struct{}{}
	}

	return out
}

// IsMilestone reports whether name is a registered milestone category.
// Milestone names all start with a digit and team names never do, so the
// two namespaces cannot collide.
func IsMilestone(name string) bool {
	_, ok := milestoneNames[name]
	return ok
}

// DrawableMilestones lists the categories eligible to appear as the
// pseudo-team of a daily puzzle. Season-count categories are indexed and
// queryable but kept out of the draw.
func DrawableMilestones() []string {
	out := make([]string, 0, len(CareerMilestones)+len(SeasonMilestones)+len(TeamCountMilestones))
	for _, m := range CareerMilestones {
		out = append(out, m.Name)
	}
	for _, m := range SeasonMilestones {
		out = append(out, m.Name)
	}
	for _, m := range TeamCountMilestones {
		out = append(out, m.Name)
	}

	return out
}
