// Package progress derives completion percentages from the normalized
// curriculum and a user's progress record. Pure functions: no storage
// access, no failure modes.
package progress

import (
	"math"

	"github.com/abhisek/currix/internal/curriculum"
	"github.com/abhisek/currix/internal/store"
)

// PercentFor returns the completion percentage of a record over a topic
// set, 0..100, rounded half-up once at the boundary. An empty topic set
// is 0, not an error.
func PercentFor(topics []curriculum.TopicEntry, rec store.ProgressRecord) int {
	if len(topics) == 0 {
		return 0
	}
	done := 0
	for _, topic := range topics {
		if rec[topic.Code] {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(topics))))
}

// Summary is a subject-level completion view.
type Summary struct {
	Percent   int
	Remaining int
}

// CompletionSummary aggregates a record over all years of one subject.
func CompletionSummary(years []curriculum.YearGroup, rec store.ProgressRecord) Summary {
	var topics []curriculum.TopicEntry
	for _, yg := range years {
		topics = append(topics, yg.Topics...)
	}

	done := 0
	for _, topic := range topics {
		if rec[topic.Code] {
			done++
		}
	}
	return Summary{
		Percent:   PercentFor(topics, rec),
		Remaining: len(topics) - done,
	}
}
