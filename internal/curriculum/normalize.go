package curriculum

import (
	"regexp"
	"slices"
	"sort"
	"strconv"
)

var digitRun = regexp.MustCompile(`\d+`)

// yearOrdinal extracts the first run of decimal digits from a year
// label ("Year 10" → 10). Labels without digits sort as 0.
func yearOrdinal(label string) int {
	digits := digitRun.FindString(label)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// Normalize builds the Progression from a parsed document: subjects keep
// document order, each subject's year groups are sorted ascending by
// their embedded year number ("Year 9" before "Year 10"), topics keep
// source order. Labels with equal ordinals keep encounter order, so the
// sort must be stable. Pure: same document always yields the same
// Progression.
func Normalize(doc RawDocument) *Progression {
	p := &Progression{years: make(map[string][]YearGroup, len(doc))}
	for _, subject := range doc {
		groups := make([]YearGroup, 0, len(subject.Years))
		for _, y := range subject.Years {
			groups = append(groups, YearGroup{Year: y.Label, Topics: slices.Clone(y.Topics)})
		}
		sort.SliceStable(groups, func(i, j int) bool {
			return yearOrdinal(groups[i].Year) < yearOrdinal(groups[j].Year)
		})

		p.subjects = append(p.subjects, subject.Name)
		p.years[subject.Name] = groups
	}
	return p
}
