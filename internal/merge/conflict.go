package merge

import (
	"regexp"
	"strings"
)

// taskRef matches a @task{ID} reference together with the rest of its
// line, so two snippets naming the same ID with different clauses yield
// different full matches.
var taskRef = regexp.MustCompile(`@task\{[^}]*\}[^\n]*`)

// TaskConflict records a @task{ID} occurrence whose full matched text
// differs between two or more delta snippets.
type TaskConflict struct {
	ID       string
	Variants []string
}

// DetectConflicts extracts every @task{...} occurrence (through the end of
// its line) across deltas and
// flags any ID whose full matched text isn't identical everywhere it
// appears.
func DetectConflicts(deltas []string) []TaskConflict {
	seen := map[string]map[string]bool{} // id -> set of distinct full matches
	order := []string{}

	for _, delta := range deltas {
		for _, match := range taskRef.FindAllString(delta, -1) {
			id := taskID(match)
			if seen[id] == nil {
				seen[id] = map[string]bool{}
				order = append(order, id)
			}
			seen[id][match] = true
		}
	}

	var conflicts []TaskConflict
	for _, id := range order {
		variants := seen[id]
		if len(variants) <= 1 {
			continue
		}
		var list []string
		for v := range variants {
			list = append(list, v)
		}
		conflicts = append(conflicts, TaskConflict{ID: id, Variants: list})
	}
	return conflicts
}

// taskID returns the bare ID text between "@task{" and the first "}".
func taskID(match string) string {
	return match[len("@task{"):strings.Index(match, "}")]
}
