package merge

import "sort"

// sectionPriority gives the emit order for well-known sections (§4.5);
// anything else sorts last, after every named section.
var sectionPriority = map[string]int{
	"FOCUS":    1,
	"STATUS":   2,
	"PROGRESS": 3,
	"PENDING":  4,
}

const defaultSectionPriority = 100

// SectionPriority returns name's emit priority, lower sorting first.
func SectionPriority(name string) int {
	if p, ok := sectionPriority[name]; ok {
		return p
	}
	return defaultSectionPriority
}

// SortSections orders names by SectionPriority, preserving relative order
// among names that share a priority (stable sort).
func SortSections(names []string) []string {
	out := append([]string(nil), names...)
	sort.SliceStable(out, func(i, j int) bool {
		return SectionPriority(out[i]) < SectionPriority(out[j])
	})
	return out
}
