package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pagecms/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportOutcome classifies what happened to one snapshot file. The four
// outcomes are mutually exclusive.
type ImportOutcome string

const (
	OutcomeImported ImportOutcome = "imported"
	OutcomeUpdated  ImportOutcome = "updated"
	OutcomeSkipped  ImportOutcome = "skipped"
	OutcomeError    ImportOutcome = "error"
)

// ImportFileResult reports the outcome for a single file.
type ImportFileResult struct {
	File    string
	Outcome ImportOutcome
	Title   string
	Slug    string
	Reasons []string
}

// ImportSummary accumulates outcome counts across a batch.
type ImportSummary struct {
	Imported int
	Updated  int
	Skipped  int
	Errors   int
}

// Failed reports whether the batch as a whole must be treated as failed.
func (s ImportSummary) Failed() bool {
	return s.Errors > 0
}

func (s *ImportSummary) count(outcome ImportOutcome) {
	switch outcome {
	case OutcomeImported:
		s.Imported++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeError:
		s.Errors++
	}
}

// PageImportService merges exported snapshot files back into the page store.
type PageImportService struct {
	db *gorm.DB
}

// NewPageImportService returns a new PageImportService instance.
func NewPageImportService(gdb *gorm.DB) *PageImportService {
	return &PageImportService{db: gdb}
}

// DiscoverImportFiles resolves the import selection. Exactly one of file or
// dir must be set: file must exist, dir is scanned non-recursively for
// *.json.
func DiscoverImportFiles(file, dir string) ([]string, error) {
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("file not found: %s", file)
		}
		return []string{file}, nil
	}

	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("directory not found: %s", dir)
		}
		return filepath.Glob(filepath.Join(dir, "*.json"))
	}

	return nil, errors.New("no file or directory specified")
}

// ImportFiles processes every file and accumulates outcomes. A per-file
// error never aborts the batch.
func (s *PageImportService) ImportFiles(files []string, update bool) ([]ImportFileResult, ImportSummary) {
	results := make([]ImportFileResult, 0, len(files))
	var summary ImportSummary

	for _, file := range files {
		result := s.ImportFile(file, update)
		summary.count(result.Outcome)
		results = append(results, result)
	}

	return results, summary
}

// importDocument is the decoded top level of a snapshot file. Scalar fields
// stay untyped until validation; Content stays raw so the block sequence is
// persisted exactly as found in the file.
type importDocument struct {
	Title   any             `json:"title"`
	Slug    any             `json:"slug"`
	Status  any             `json:"status"`
	Order   any             `json:"order"`
	Content json.RawMessage `json:"content"`
}

// ImportFile merges a single snapshot file into the store.
func (s *PageImportService) ImportFile(path string, update bool) ImportFileResult {
	result := ImportFileResult{File: filepath.Base(path)}

	raw, err := os.ReadFile(path)
	if err != nil {
		result.Outcome = OutcomeError
		result.Reasons = []string{"cannot read file"}
		return result
	}

	var doc importDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		result.Outcome = OutcomeError
		result.Reasons = []string{"invalid JSON"}
		return result
	}

	if violations := validateImportDocument(doc); len(violations) > 0 {
		result.Outcome = OutcomeError
		result.Reasons = violations
		return result
	}

	title := doc.Title.(string)
	slug := doc.Slug.(string)
	status := doc.Status.(string)
	order := int(doc.Order.(float64))
	result.Title = title
	result.Slug = slug

	var existing db.Page
	err = s.db.Where("slug = ?", slug).First(&existing).Error
	switch {
	case err == nil:
		if !update {
			result.Outcome = OutcomeSkipped
			return result
		}
		return s.updateExisting(existing, title, status, order, doc.Content, result)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.createNew(title, slug, status, order, doc.Content, result)
	default:
		result.Outcome = OutcomeError
		result.Reasons = []string{err.Error()}
		return result
	}
}

func (s *PageImportService) createNew(title, slug, status string, order int, rawContent json.RawMessage, result ImportFileResult) ImportFileResult {
	page := db.Page{
		Title:     title,
		Slug:      slug,
		Status:    status,
		SortOrder: order,
		Content:   contentColumn(rawContent),
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&page).Error
	}); err != nil {
		result.Outcome = OutcomeError
		result.Reasons = []string{err.Error()}
		return result
	}

	result.Outcome = OutcomeImported
	return result
}

// updateExisting overwrites everything except the slug, which is the page's
// external identity and never changes through import.
func (s *PageImportService) updateExisting(page db.Page, title, status string, order int, rawContent json.RawMessage, result ImportFileResult) ImportFileResult {
	page.Title = title
	page.Status = status
	page.SortOrder = order
	page.Content = contentColumn(rawContent)

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&page).Error
	}); err != nil {
		result.Outcome = OutcomeError
		result.Reasons = []string{err.Error()}
		return result
	}

	result.Outcome = OutcomeUpdated
	return result
}

// validateImportDocument enforces the top-level page fields only. Content is
// kept structurally unchecked beyond being an array, so snapshots written by
// newer authoring schemas still import.
func validateImportDocument(doc importDocument) []string {
	var violations []string

	violations = append(violations, validateRequiredString("title", doc.Title)...)
	violations = append(violations, validateRequiredString("slug", doc.Slug)...)

	switch status := doc.Status.(type) {
	case nil:
		violations = append(violations, "status is required")
	case string:
		if status != db.PageStatusDraft && status != db.PageStatusPublished {
			violations = append(violations, fmt.Sprintf("status must be %s or %s", db.PageStatusDraft, db.PageStatusPublished))
		}
	default:
		violations = append(violations, "status must be a string")
	}

	switch order := doc.Order.(type) {
	case nil:
		violations = append(violations, "order is required")
	case float64:
		if order != math.Trunc(order) {
			violations = append(violations, "order must be an integer")
		}
	default:
		violations = append(violations, "order must be an integer")
	}

	if len(doc.Content) > 0 && string(doc.Content) != "null" {
		var blocks []json.RawMessage
		if err := json.Unmarshal(doc.Content, &blocks); err != nil {
			violations = append(violations, "content must be an array")
		}
	}

	return violations
}

func validateRequiredString(field string, value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{field + " is required"}
	case string:
		if v == "" {
			return []string{field + " is required"}
		}
		if utf8.RuneCountInString(v) > 255 {
			return []string{field + " must be at most 255 characters"}
		}
		return nil
	default:
		return []string{field + " must be a string"}
	}
}

func contentColumn(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}
