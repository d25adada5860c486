package pairing

import "context"

// Answer is one eligible player for a grid cell.
type Answer struct {
	Person string `json:"person"`
	Name   string `json:"name,omitempty"`
}

// AnswerSet holds every eligible answer for one canonical pair key. The
// indexer never emits empty sets, so a missing key reads as an empty set.
type AnswerSet struct {
	Key     string   `json:"teamPair"`
	Players []Answer `json:"players"`
}

func (s AnswerSet) Size() int {
	return len(s.Players)
}

func (s AnswerSet) Contains(person string) bool {
	for _, a := range s.Players {
		if a.Person == person {
			return true
		}
	}

	return false
}

// Repository persists answer sets keyed by canonical pair id. Lookups for
// absent keys return ok=false, never an error.
type Repository interface {
	PutBatch(ctx context.Context, sets []AnswerSet) error
	GetByKey(ctx context.Context, key string) (AnswerSet, bool, error)
}
