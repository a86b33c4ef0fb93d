package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pagecms/internal/db"
	"gorm.io/gorm"
)

// ExportVersion tags the document format written by the export pipeline.
const ExportVersion = "1.0"

// ExportDocument is the portable JSON snapshot of one page. Content is
// carried raw so the stored block sequence round-trips verbatim; no
// model_list resolution happens at export time.
type ExportDocument struct {
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Status        string          `json:"status"`
	Order         int             `json:"order"`
	Content       json.RawMessage `json:"content"`
	CreatedAt     *time.Time      `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at"`
	ExportedAt    time.Time       `json:"exported_at"`
	ExportVersion string          `json:"export_version"`
}

// ExportResult reports one written snapshot file.
type ExportResult struct {
	Title    string
	Slug     string
	Filename string
}

// PageExportService serializes pages into portable snapshot files.
type PageExportService struct {
	db *gorm.DB
}

// NewPageExportService returns a new PageExportService instance.
func NewPageExportService(gdb *gorm.DB) *PageExportService {
	return &PageExportService{db: gdb}
}

// ExportBySlug writes the snapshot for a single page into outputDir.
func (s *PageExportService) ExportBySlug(slug, outputDir string) ([]ExportResult, error) {
	var page db.Page
	if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return s.exportPages([]db.Page{page}, outputDir)
}

// ExportAll writes one snapshot per page, ordered the way listings are.
func (s *PageExportService) ExportAll(outputDir string) ([]ExportResult, error) {
	var pages []db.Page
	if err := s.db.Order("sort_order asc, id asc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return s.exportPages(pages, outputDir)
}

func (s *PageExportService) exportPages(pages []db.Page, outputDir string) ([]ExportResult, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}

	results := make([]ExportResult, 0, len(pages))
	for _, page := range pages {
		filename, err := s.exportOne(page, outputDir)
		if err != nil {
			return results, err
		}
		results = append(results, ExportResult{Title: page.Title, Slug: page.Slug, Filename: filename})
	}
	return results, nil
}

// exportOne writes <slug>.json; re-exporting a page overwrites its previous
// snapshot.
func (s *PageExportService) exportOne(page db.Page, outputDir string) (string, error) {
	doc := ExportDocument{
		Title:         page.Title,
		Slug:          page.Slug,
		Status:        page.Status,
		Order:         page.SortOrder,
		Content:       contentRaw(page),
		CreatedAt:     timestampOrNil(page.CreatedAt),
		UpdatedAt:     timestampOrNil(page.UpdatedAt),
		ExportedAt:    time.Now().UTC(),
		ExportVersion: ExportVersion,
	}

	// Pretty-printed with HTML escaping off so non-ASCII text and URLs
	// stay readable and diffable across environments.
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(doc); err != nil {
		return "", err
	}

	filename := page.Slug + ".json"
	if err := os.WriteFile(filepath.Join(outputDir, filename), buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

func contentRaw(page db.Page) json.RawMessage {
	if len(page.Content) == 0 {
		return json.RawMessage("null")
	}
	return json.RawMessage(page.Content)
}

func timestampOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}
