package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pagecms/internal/db"
)

func writeSnapshot(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", name, err)
	}
	return path
}

func TestImportCreatesNewPage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	importer := NewPageImportService(gdb)
	dir := t.TempDir()

	body := `{
    "title": "Home",
    "slug": "home",
    "status": "published",
    "order": 3,
    "content": [{"type":"hero","data":{"title":"Hi","future_field":true}}]
}`
	path := writeSnapshot(t, dir, "home.json", body)

	result := importer.ImportFile(path, false)
	if result.Outcome != OutcomeImported {
		t.Fatalf("expected imported, got %s (%v)", result.Outcome, result.Reasons)
	}

	page, err := NewPageService(gdb).GetBySlug("home")
	if err != nil {
		t.Fatalf("failed to fetch imported page: %v", err)
	}
	if page.Title != "Home" || page.Status != db.PageStatusPublished || page.SortOrder != 3 {
		t.Errorf("unexpected imported page: %+v", page)
	}
	if !strings.Contains(string(page.Content), "future_field") {
		t.Errorf("expected content stored verbatim, got %s", page.Content)
	}
}

func TestImportSkipsExistingWithoutUpdate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	importer := NewPageImportService(gdb)
	dir := t.TempDir()

	if _, err := NewPageService(gdb).Create(PageInput{Title: "Original", Slug: "home"}); err != nil {
		t.Fatalf("failed to seed page: %v", err)
	}

	path := writeSnapshot(t, dir, "home.json", `{"title":"Changed","slug":"home","status":"published","order":1,"content":[]}`)

	result := importer.ImportFile(path, false)
	if result.Outcome != OutcomeSkipped {
		t.Fatalf("expected skipped, got %s", result.Outcome)
	}

	page, err := NewPageService(gdb).GetBySlug("home")
	if err != nil {
		t.Fatalf("failed to fetch page: %v", err)
	}
	if page.Title != "Original" {
		t.Errorf("expected skipped import to leave page untouched, got title %s", page.Title)
	}
}

func TestImportUpdatesExistingWithUpdate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	importer := NewPageImportService(gdb)
	dir := t.TempDir()

	if _, err := NewPageService(gdb).Create(PageInput{Title: "Original", Slug: "home", Order: 7}); err != nil {
		t.Fatalf("failed to seed page: %v", err)
	}

	path := writeSnapshot(t, dir, "home.json", `{"title":"Changed","slug":"home","status":"published","order":1,"content":[{"type":"text_section","data":{"body":"hi"}}]}`)

	result := importer.ImportFile(path, true)
	if result.Outcome != OutcomeUpdated {
		t.Fatalf("expected updated, got %s (%v)", result.Outcome, result.Reasons)
	}

	page, err := NewPageService(gdb).GetBySlug("home")
	if err != nil {
		t.Fatalf("failed to fetch page: %v", err)
	}
	if page.Title != "Changed" || page.Status != db.PageStatusPublished || page.SortOrder != 1 {
		t.Errorf("unexpected updated page: %+v", page)
	}
}

func TestImportRejectsInvalidDocumentsWithoutWriting(t *testing.T) {
	gdb := setupServiceTestDB(t)
	importer := NewPageImportService(gdb)
	dir := t.TempDir()

	cases := []struct {
		name   string
		body   string
		reason string
	}{
		{"missing-title", `{"slug":"x","status":"draft","order":0,"content":[]}`, "title is required"},
		{"bad-status", `{"title":"X","slug":"x","status":"archived","order":0,"content":[]}`, "status must be draft or published"},
		{"fractional-order", `{"title":"X","slug":"x","status":"draft","order":1.5,"content":[]}`, "order must be an integer"},
		{"content-not-array", `{"title":"X","slug":"x","status":"draft","order":0,"content":{"type":"hero"}}`, "content must be an array"},
		{"not-json", `{nope`, "invalid JSON"},
	}

	for _, tc := range cases {
		path := writeSnapshot(t, dir, tc.name+".json", tc.body)
		result := importer.ImportFile(path, false)
		if result.Outcome != OutcomeError {
			t.Errorf("%s: expected error outcome, got %s", tc.name, result.Outcome)
			continue
		}
		found := false
		for _, reason := range result.Reasons {
			if reason == tc.reason {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: expected reason %q, got %v", tc.name, tc.reason, result.Reasons)
		}
	}

	var count int64
	if err := gdb.Model(&db.Page{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count pages: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no pages written, got %d", count)
	}
}

func TestImportBatchIsolatesFailures(t *testing.T) {
	gdb := setupServiceTestDB(t)
	importer := NewPageImportService(gdb)
	dir := t.TempDir()

	files := []string{
		writeSnapshot(t, dir, "a.json", `{"title":"A","slug":"a","status":"draft","order":0,"content":[]}`),
		writeSnapshot(t, dir, "bad.json", `{broken`),
		writeSnapshot(t, dir, "b.json", `{"title":"B","slug":"b","status":"published","order":1,"content":[]}`),
	}

	results, summary := importer.ImportFiles(files, false)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if summary.Imported != 2 || summary.Errors != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if !summary.Failed() {
		t.Error("expected batch with an error to be failed")
	}

	var count int64
	if err := gdb.Model(&db.Page{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count pages: %v", err)
	}
	if count != 2 {
		t.Errorf("expected the valid files imported, got %d pages", count)
	}
}

func TestImportRoundTripRestoresPage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	pages := NewPageService(gdb)
	exporter := NewPageExportService(gdb)
	importer := NewPageImportService(gdb)
	dir := t.TempDir()

	raw := `[{"type":"hero","data":{"title":"Hi"}},{"type":"custom_block","data":{"anything":["goes",1]}}]`
	page, err := pages.Create(PageInput{
		Title:   "Home",
		Slug:    "home",
		Status:  db.PageStatusPublished,
		Order:   4,
		Content: mustBlocks(t, raw),
	})
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	originalContent := string(page.Content)

	if _, err := exporter.ExportBySlug("home", dir); err != nil {
		t.Fatalf("failed to export page: %v", err)
	}
	if err := pages.Delete(page.ID); err != nil {
		t.Fatalf("failed to delete page: %v", err)
	}

	result := importer.ImportFile(filepath.Join(dir, "home.json"), false)
	if result.Outcome != OutcomeImported {
		t.Fatalf("expected imported, got %s (%v)", result.Outcome, result.Reasons)
	}

	restored, err := pages.GetBySlug("home")
	if err != nil {
		t.Fatalf("failed to fetch restored page: %v", err)
	}
	if restored.Title != "Home" || restored.Status != db.PageStatusPublished || restored.SortOrder != 4 {
		t.Errorf("unexpected restored page: %+v", restored)
	}
	// The snapshot is pretty-printed, so compare decoded values rather
	// than raw bytes.
	var before, after any
	if err := json.Unmarshal([]byte(originalContent), &before); err != nil {
		t.Fatalf("failed to decode original content: %v", err)
	}
	if err := json.Unmarshal(restored.Content, &after); err != nil {
		t.Fatalf("failed to decode restored content: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("content did not round-trip:\nbefore: %s\nafter:  %s", originalContent, restored.Content)
	}
}

func TestDiscoverImportFiles(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "a.json", `{}`)
	writeSnapshot(t, dir, "b.json", `{}`)
	writeSnapshot(t, dir, "notes.txt", `ignored`)

	files, err := DiscoverImportFiles("", dir)
	if err != nil {
		t.Fatalf("failed to discover files: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 json files, got %d: %v", len(files), files)
	}

	single, err := DiscoverImportFiles(filepath.Join(dir, "a.json"), "")
	if err != nil {
		t.Fatalf("failed to resolve single file: %v", err)
	}
	if len(single) != 1 {
		t.Errorf("expected 1 file, got %d", len(single))
	}

	if _, err := DiscoverImportFiles(filepath.Join(dir, "missing.json"), ""); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := DiscoverImportFiles("", filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
	if _, err := DiscoverImportFiles("", ""); err == nil {
		t.Error("expected error when nothing is specified")
	}
}
