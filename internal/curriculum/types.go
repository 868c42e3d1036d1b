package curriculum

import "slices"

// TopicEntry is a single teachable unit within a year group.
// Code is the stable identifier progress is recorded against; it is
// unique across the whole curriculum and is the only join key between
// the curriculum and a user's progress record.
type TopicEntry struct {
	Topic string `json:"topic"`
	Code  string `json:"code"`
}

// YearGroup is an ordered run of topics taught in one school year.
type YearGroup struct {
	Year   string
	Topics []TopicEntry
}

// RawYear is one year-label entry of the raw document, in document order.
type RawYear struct {
	Label  string
	Topics []TopicEntry
}

// RawSubject is one subject entry of the raw document, in document order.
type RawSubject struct {
	Name  string
	Years []RawYear
}

// RawDocument is the parsed curriculum document with the source ordering
// of subjects and year labels preserved.
type RawDocument []RawSubject

// Progression is the normalized curriculum: subjects in document order,
// each subject's year groups sorted by their embedded year number.
// Built once at startup and read-only afterwards.
type Progression struct {
	subjects []string
	years    map[string][]YearGroup
}

// Subjects returns the subject names in document order.
func (p *Progression) Subjects() []string {
	return slices.Clone(p.subjects)
}

// Years returns the year groups for a subject, sorted by year number.
// Returns nil for an unknown subject.
func (p *Progression) Years(subject string) []YearGroup {
	return slices.Clone(p.years[subject])
}

// SubjectTopics returns every topic of a subject across all its years,
// in normalized order.
func (p *Progression) SubjectTopics(subject string) []TopicEntry {
	var topics []TopicEntry
	for _, yg := range p.years[subject] {
		topics = append(topics, yg.Topics...)
	}
	return topics
}

// AllTopics returns every topic in the curriculum across all subjects,
// in normalized order. This is the topic set leaderboard percentages
// are computed against.
func (p *Progression) AllTopics() []TopicEntry {
	var topics []TopicEntry
	for _, subject := range p.subjects {
		topics = append(topics, p.SubjectTopics(subject)...)
	}
	return topics
}

// TotalTopics returns the number of topics in the whole curriculum.
func (p *Progression) TotalTopics() int {
	n := 0
	for _, subject := range p.subjects {
		for _, yg := range p.years[subject] {
			n += len(yg.Topics)
		}
	}
	return n
}
