package progress

import (
	"fmt"
	"testing"

	"github.com/abhisek/currix/internal/curriculum"
	"github.com/abhisek/currix/internal/store"
)

// topicSet builds n topics coded T0..Tn-1.
func topicSet(n int) []curriculum.TopicEntry {
	topics := make([]curriculum.TopicEntry, n)
	for i := range topics {
		topics[i] = curriculum.TopicEntry{Topic: fmt.Sprintf("Topic %d", i), Code: fmt.Sprintf("T%d", i)}
	}
	return topics
}

// completed marks the first n codes of a topicSet done.
func completed(n int) store.ProgressRecord {
	rec := store.ProgressRecord{}
	for i := 0; i < n; i++ {
		rec[fmt.Sprintf("T%d", i)] = true
	}
	return rec
}

func TestPercentFor(t *testing.T) {
	tests := []struct {
		name  string
		total int
		done  int
		want  int
	}{
		{"empty topic set", 0, 0, 0},
		{"nothing done", 4, 0, 0},
		{"all done", 4, 4, 100},
		{"half", 2, 1, 50},
		{"rounds half up", 8, 1, 13},    // 12.5
		{"rounds down", 3, 1, 33},       // 33.33
		{"rounds up", 6, 1, 17},         // 16.67
		{"small fraction", 200, 1, 1},     // 0.5
		{"near complete", 200, 199, 100}, // 99.5
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentFor(topicSet(tt.total), completed(tt.done))
			if got != tt.want {
				t.Errorf("PercentFor(%d of %d) = %d, want %d", tt.done, tt.total, got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("percent %d out of bounds", got)
			}
		})
	}
}

func TestPercentForIgnoresForeignCodes(t *testing.T) {
	rec := store.ProgressRecord{"UNRELATED": true, "T0": true}
	if got := PercentFor(topicSet(2), rec); got != 50 {
		t.Errorf("percent = %d, want 50", got)
	}
}

func TestPercentForEmptyTopicsAnyRecord(t *testing.T) {
	if got := PercentFor(nil, completed(5)); got != 0 {
		t.Errorf("percent over empty topics = %d, want 0", got)
	}
}

func TestCompletionSummary(t *testing.T) {
	years := []curriculum.YearGroup{
		{Year: "Year 9", Topics: []curriculum.TopicEntry{
			{Topic: "Algebra", Code: "M9A"},
			{Topic: "Statistics", Code: "M9S"},
		}},
		{Year: "Year 10", Topics: []curriculum.TopicEntry{
			{Topic: "Calculus", Code: "M10C"},
		}},
	}

	rec := store.ProgressRecord{"M9A": true, "M10C": true}
	got := CompletionSummary(years, rec)
	if got.Percent != 67 { // 2 of 3 = 66.67
		t.Errorf("percent = %d, want 67", got.Percent)
	}
	if got.Remaining != 1 {
		t.Errorf("remaining = %d, want 1", got.Remaining)
	}

	empty := CompletionSummary(nil, rec)
	if empty.Percent != 0 || empty.Remaining != 0 {
		t.Errorf("summary over no years = %+v, want zero", empty)
	}
}

func TestScenarioHalfOfMath(t *testing.T) {
	raw := []byte(`{"Math": {
		"Year 9": [{"topic": "Algebra", "code": "M9A"}],
		"Year 10": [{"topic": "Calculus", "code": "M10C"}]
	}}`)
	p, err := curriculum.Load(raw)
	if err != nil {
		t.Fatalf("load curriculum: %v", err)
	}

	alice := store.ProgressRecord{"M9A": true}
	if got := PercentFor(p.SubjectTopics("Math"), alice); got != 50 {
		t.Errorf("percent = %d, want 50", got)
	}
}
