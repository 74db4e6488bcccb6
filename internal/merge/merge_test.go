package merge

import "testing"

func TestFindInsertionPointExistingSection(t *testing.T) {
	content := "[FOCUS]\nfoo\n[STATUS]\nbar\n"
	ip := FindInsertionPoint(content, Delta{Section: "FOCUS", Text: "baz"})

	if ip.IsNewSection {
		t.Fatal("FOCUS already exists, should not be treated as a new section")
	}
	if ip.Line != 3 {
		t.Errorf("Line = %d, want 3", ip.Line)
	}
	want := "[FOCUS]\nfoo\n"
	if got := string([]rune(content)[:ip.Offset]); got != want {
		t.Errorf("content up to Offset = %q, want %q", got, want)
	}
}

func TestFindInsertionPointUnknownSectionAppendsAtEnd(t *testing.T) {
	content := "[FOCUS]\nfoo\n"
	ip := FindInsertionPoint(content, Delta{Section: "PENDING", Text: "baz"})

	if !ip.IsNewSection {
		t.Error("PENDING does not exist yet, expected IsNewSection")
	}
	if ip.Offset != len([]rune(content)) {
		t.Errorf("Offset = %d, want end of content (%d)", ip.Offset, len([]rune(content)))
	}
}

func TestFindInsertionPointLastSectionRunsToEOF(t *testing.T) {
	content := "[FOCUS]\nfoo\n"
	ip := FindInsertionPoint(content, Delta{Section: "FOCUS", Text: "baz"})

	if ip.IsNewSection {
		t.Fatal("FOCUS exists, should not be a new section")
	}
	if ip.Offset != len([]rune(content)) {
		t.Errorf("Offset = %d, want end of content when FOCUS is the last section", ip.Offset)
	}
}

func TestIsDuplicate(t *testing.T) {
	content := "@feature{auth}->files[src/auth.go]\n"
	if !IsDuplicate(content, "  @feature{auth}->files[src/auth.go]  ") {
		t.Error("expected a trimmed verbatim match to count as duplicate")
	}
	if IsDuplicate(content, "@feature{billing}->files[src/billing.go]") {
		t.Error("unrelated text should not be flagged as duplicate")
	}
	if IsDuplicate(content, "   ") {
		t.Error("a blank delta should never be flagged as duplicate")
	}
}

func TestDetectConflictsFlagsDivergentVariants(t *testing.T) {
	deltas := []string{
		"@task{migrate-db}->status::active",
		"@task{migrate-db}->status::blocked",
		"@task{cleanup}->status::active",
	}
	conflicts := DetectConflicts(deltas)

	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1: %+v", len(conflicts), conflicts)
	}
	if conflicts[0].ID != "migrate-db" {
		t.Errorf("conflict ID = %q, want migrate-db", conflicts[0].ID)
	}
	if len(conflicts[0].Variants) != 2 {
		t.Errorf("got %d variants, want 2", len(conflicts[0].Variants))
	}
}

func TestDetectConflictsIgnoresIdenticalRepeats(t *testing.T) {
	deltas := []string{
		"@task{migrate-db}->status::active",
		"@task{migrate-db}->status::active",
	}
	if conflicts := DetectConflicts(deltas); len(conflicts) != 0 {
		t.Errorf("identical repeats should not conflict, got %+v", conflicts)
	}
}

func TestSectionPriorityKnownAndUnknown(t *testing.T) {
	if SectionPriority("FOCUS") >= SectionPriority("STATUS") {
		t.Error("FOCUS should sort before STATUS")
	}
	if SectionPriority("CUSTOM") != defaultSectionPriority {
		t.Errorf("unknown section should get the default priority")
	}
}

func TestSortSectionsIsStableAndPriorityOrdered(t *testing.T) {
	got := SortSections([]string{"NOTES", "PENDING", "FOCUS", "STATUS", "EXTRA"})
	want := []string{"FOCUS", "STATUS", "PENDING", "NOTES", "EXTRA"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}
