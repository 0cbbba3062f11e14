package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtractCollectionID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"plain url", "https://moxfield.com/collection/abc123", "abc123"},
		{"trailing slash", "https://moxfield.com/collection/abc123/", "abc123"},
		{"query string", "https://moxfield.com/collection/abc123?sort=name", "abc123"},
		{"not a collection url", "https://moxfield.com/decks/xyz", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCollectionID(tt.url); got != tt.expected {
				t.Errorf("ExtractCollectionID(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestImportFromFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewImporterService(filepath.Join(dir, "backups"))

	source := filepath.Join(dir, "new.csv")
	target := filepath.Join(dir, "collection.csv")
	newContent := []byte("Name,Edition,Count\nShock,STA,2\n")
	oldContent := []byte("Name,Edition,Count\nOpt,DOM,1\n")

	if err := os.WriteFile(source, newContent, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, oldContent, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := svc.ImportFromFile(source, target, true); err != nil {
		t.Fatalf("ImportFromFile: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(newContent) {
		t.Errorf("target not replaced: %q", got)
	}

	backups, err := svc.ListBackups(target)
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %v", backups)
	}
	backed, err := os.ReadFile(backups[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(backed) != string(oldContent) {
		t.Errorf("backup does not hold the previous content: %q", backed)
	}
}

func TestImportFromFileNoBackup(t *testing.T) {
	dir := t.TempDir()
	svc := NewImporterService(filepath.Join(dir, "backups"))

	source := filepath.Join(dir, "new.csv")
	target := filepath.Join(dir, "collection.csv")
	if err := os.WriteFile(source, []byte("Name,Edition,Count\nShock,STA,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("Name,Edition,Count\nOpt,DOM,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := svc.ImportFromFile(source, target, false); err != nil {
		t.Fatalf("ImportFromFile: %v", err)
	}
	backups, err := svc.ListBackups(target)
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %v", backups)
	}
}

func TestImportFromFileRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	svc := NewImporterService(filepath.Join(dir, "backups"))

	source := filepath.Join(dir, "notes.txt")
	target := filepath.Join(dir, "collection.csv")
	original := []byte("Name,Edition,Count\nOpt,DOM,1\n")
	if err := os.WriteFile(source, []byte("<html>not a csv</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, original, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := svc.ImportFromFile(source, target, true); err == nil {
		t.Fatal("expected a rejection for non-CSV content")
	}

	// The existing collection stays untouched on a rejected import.
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(original) {
		t.Errorf("rejected import still modified the target: %q", got)
	}
}

func TestImportFromFileCreatesTarget(t *testing.T) {
	dir := t.TempDir()
	svc := NewImporterService(filepath.Join(dir, "backups"))

	source := filepath.Join(dir, "new.csv")
	target := filepath.Join(dir, "nested", "collection.csv")
	if err := os.WriteFile(source, []byte("Name,Edition,Count\nShock,STA,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := svc.ImportFromFile(source, target, true); err != nil {
		t.Fatalf("ImportFromFile: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("target not created: %v", err)
	}
}

func TestListBackupsMissingDir(t *testing.T) {
	svc := NewImporterService(filepath.Join(t.TempDir(), "never_created"))
	backups, err := svc.ListBackups("collection.csv")
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if backups != nil {
		t.Errorf("expected nil, got %v", backups)
	}
}
