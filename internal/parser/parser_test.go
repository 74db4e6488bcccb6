package parser

import (
	"testing"

	"github.com/LoryBug/mbel/internal/ast"
)

func TestParseVersionAndSection(t *testing.T) {
	res := Parse("§MBEL:1.0\n[FOCUS]\n")
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Document.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(res.Document.Statements))
	}
	if res.Document.Statements[0].Kind != ast.StatementVersion {
		t.Errorf("statement 0: expected StatementVersion, got %v", res.Document.Statements[0].Kind)
	}
	if res.Document.Statements[1].Kind != ast.StatementSection {
		t.Errorf("statement 1: expected StatementSection, got %v", res.Document.Statements[1].Kind)
	}
}

func TestParseFeatureLink(t *testing.T) {
	src := "@feature{auth}->files[src/auth.go]->depends[session]\n"
	res := Parse(src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Document.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(res.Document.Statements))
	}
	stmt := res.Document.Statements[0]
	if stmt.Kind != ast.StatementLink || stmt.Link == nil {
		t.Fatalf("expected a link statement, got %+v", stmt)
	}
	if stmt.Link.Name != "auth" {
		t.Errorf("link name = %q, want %q", stmt.Link.Name, "auth")
	}
	if len(stmt.Link.Files) != 1 || stmt.Link.Files[0].Path != "src/auth.go" {
		t.Errorf("unexpected files: %+v", stmt.Link.Files)
	}
	if len(stmt.Link.Depends) != 1 || stmt.Link.Depends[0] != "session" {
		t.Errorf("unexpected depends: %+v", stmt.Link.Depends)
	}
}

func TestParseTaskLink(t *testing.T) {
	res := Parse("@task{migrate-db}->files[migrations/001.sql]\n")
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	link := res.Document.Statements[0].Link
	if link.LinkType != ast.LinkTask {
		t.Errorf("expected LinkTask, got %v", link.LinkType)
	}
}

func TestParseRecoversFromMalformedLine(t *testing.T) {
	src := "@feature{\n@feature{ok}->files[a.go]\n"
	res := Parse(src)
	if len(res.Errors) == 0 {
		t.Fatal("expected at least one parse error for the malformed line")
	}
	found := false
	for _, stmt := range res.Document.Statements {
		if stmt.Kind == ast.StatementLink && stmt.Link != nil && stmt.Link.Name == "ok" {
			found = true
		}
	}
	if !found {
		t.Error("parser should have recovered and parsed the well-formed link after the bad one")
	}
}

func TestParseEntryPoint(t *testing.T) {
	res := Parse("@feature{auth}->entryPoint{src/auth.go:Login:42}\n")
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	ep := res.Document.Statements[0].Link.EntryPoint
	if ep == nil {
		t.Fatal("expected a non-nil entry point")
	}
	if ep.File != "src/auth.go" || ep.Symbol != "Login" || ep.Line == nil || *ep.Line != 42 {
		t.Errorf("unexpected entry point: %+v", ep)
	}
}
