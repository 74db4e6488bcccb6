package grammarref

import "testing"

func TestIsVersionLine(t *testing.T) {
	if !IsVersionLine("§MBEL:1.0") {
		t.Error("expected a version header to match")
	}
	if IsVersionLine("[FOCUS]") {
		t.Error("a section header should not match as a version line")
	}
}

func TestIsSectionLine(t *testing.T) {
	if !IsSectionLine("[FOCUS]") {
		t.Error("expected a section header to match")
	}
	if IsSectionLine("§MBEL:1.0") {
		t.Error("a version header should not match as a section line")
	}
}

func TestParseLineAttribute(t *testing.T) {
	l, err := ParseLine("status:: active")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Attribute == nil {
		t.Fatal("expected an attribute line")
	}
	if l.Attribute.Name != "status" || l.Attribute.Value != "active" {
		t.Errorf("got %+v, want name=status value=active", l.Attribute)
	}
}

func TestParseLineRejectsGarbage(t *testing.T) {
	if _, err := ParseLine("@@@ not a real line @@@"); err == nil {
		t.Error("expected an error parsing a line matching none of the three shapes")
	}
}
