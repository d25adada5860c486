package pairing

import "strings"

const keySeparator = "-"

// PairKey canonicalizes a cell into its lookup key. Ordinary team pairs sort
// alphabetically so "A-B" and "B-A" resolve to the same set; milestone cells
// always put the milestone name first. Writer and reader share this function,
// which is what keeps the two sides from drifting apart.
func PairKey(a, b string) string {
	if IsMilestone(a) {
		return a + keySeparator + b
	}
	if IsMilestone(b) {
		return b + keySeparator + a
	}
	if b < a {
		a, b = b, a
	}

	return a + keySeparator + b
}

// MilestoneKey builds the key for a milestone pseudo-team cell.
func MilestoneKey(milestone, teamName string) string {
	return milestone + keySeparator + teamName
}

// SplitKey returns the two operands of a canonical key. Milestone names are
// matched against the registry first so hyphenated team operands survive.
// Plain pairs are drawn from the grid roster, which has no hyphenated names,
// so the first hyphen is the boundary.
func SplitKey(key string) (string, string) {
	for name := range milestoneNames {
		if strings.HasPrefix(key, name+keySeparator) {
			return name, key[len(name)+1:]
		}
	}

	if i := strings.Index(key, keySeparator); i >= 0 {
		return key[:i], key[i+1:]
	}

	return key, ""
}
