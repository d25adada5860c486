package team

import "strings"

// ModernEraRoster lists the teams that have played in the league during the
// 2000s. Puzzle grids are drawn from this set only; historical clubs outside
// it still contribute to a player's career totals and team counts.
var ModernEraRoster = []string{
	"Kärpät",
	"HIFK",
	"Tappara",
	"Pelicans",
	"KalPa",
	"JYP",
	"TPS",
	"Ässät",
	"HPK",
	"Lukko",
	"SaiPa",
	"Sport",
	"KooKoo",
	"Ilves",
	"Jukurit",
	"Blues",
	"Jokerit",
}

// ExhibitionTeam is an all-star roster entry present in the source data.
// It is excluded when counting how many clubs a player has represented.
const ExhibitionTeam = "Olympia-84"

// CanonicalName folds historical and commercial aliases of a club into the
// name the club plays under today.
func CanonicalName(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "jyp ht":
		return "JYP"
	case "kiekko-reipas", "kiekkoreipas", "reipas", "reipas lahti", "hockey reipas", "viipurin reipas":
		return "Pelicans"
	case "k-espoo":
		return "Blues"
	default:
		return strings.TrimSpace(raw)
	}
}

// Pairs returns every unordered pair from the modern-era roster, each pair
// sorted alphabetically.
func Pairs() [][2]string {
	out := make([][2]string, 0, len(ModernEraRoster)*(len(ModernEraRoster)-1)/2)
	for i, a := range ModernEraRoster {
		for _, b := range ModernEraRoster[i+1:] {
			first, second := a, b
			if second < first {
				first, second = second, first
			}
			out = append(out, [2]string{first, second})
		}
	}

	return out
}
