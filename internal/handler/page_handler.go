package handler

import (
	"errors"
	"net/http"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/pagecms/internal/content"
	"github.com/pagecms/internal/db"
	"github.com/pagecms/internal/service"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// pageSummary is the minimal listing shape; content is only served on the
// single-page read.
type pageSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListPages returns published pages in listing order without content.
func (a *API) ListPages(c *gin.Context) {
	pages, err := a.pages.List(db.PageStatusPublished)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	summaries := make([]pageSummary, 0, len(pages))
	for _, page := range pages {
		summaries = append(summaries, pageSummary{
			ID:        page.ID,
			Title:     page.Title,
			Slug:      page.Slug,
			Order:     page.SortOrder,
			CreatedAt: page.CreatedAt,
			UpdatedAt: page.UpdatedAt,
		})
	}

	respondData(c, http.StatusOK, summaries)
}

// ShowPage returns one published page with its model_list blocks resolved.
// A draft page answers exactly like a missing one.
func (a *API) ShowPage(c *gin.Context) {
	rendered, err := a.renderer.Render(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "Page not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, rendered)
}

type pagePayload struct {
	Title   string         `json:"title"`
	Slug    string         `json:"slug"`
	Status  string         `json:"status"`
	Order   int            `json:"order"`
	Content content.Blocks `json:"content"`
}

// pageView is the admin shape, content included as stored.
type pageView struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	Status    string         `json:"status"`
	Order     int            `json:"order"`
	Content   content.Blocks `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func newPageView(page *db.Page) (pageView, error) {
	blocks, err := content.ParseBlocks(page.Content)
	if err != nil {
		return pageView{}, err
	}
	return pageView{
		ID:        page.ID,
		Title:     page.Title,
		Slug:      page.Slug,
		Status:    page.Status,
		Order:     page.SortOrder,
		Content:   blocks,
		CreatedAt: page.CreatedAt,
		UpdatedAt: page.UpdatedAt,
	}, nil
}

// AdminListPages returns every page including drafts.
func (a *API) AdminListPages(c *gin.Context) {
	pages, err := a.pages.List(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	views := make([]pageView, 0, len(pages))
	for i := range pages {
		view, err := newPageView(&pages[i])
		if err != nil {
			respondServiceError(c, err)
			return
		}
		views = append(views, view)
	}

	respondData(c, http.StatusOK, views)
}

// AdminGetPage returns one page by id regardless of status.
func (a *API) AdminGetPage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := a.pages.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "Page not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	view, err := newPageView(page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, view)
}

// CreatePage creates a page from an authoring payload. Blocks are validated
// against the schema before anything is written.
func (a *API) CreatePage(c *gin.Context) {
	var payload pagePayload
	if !bindJSON(c, &payload) {
		return
	}

	if violations := validatePagePayload(payload); !violations.Empty() {
		respondValidation(c, violations)
		return
	}

	page, err := a.pages.Create(service.PageInput{
		Title:   payload.Title,
		Slug:    payload.Slug,
		Status:  payload.Status,
		Order:   payload.Order,
		Content: payload.Content,
	})
	if err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			violations := make(service.ValidationErrors)
			violations.Add("slug", "is already in use")
			respondValidation(c, violations)
			return
		}
		respondServiceError(c, err)
		return
	}

	view, err := newPageView(page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "Page created", view)
}

// pageUpdatePayload mirrors pagePayload with pointer fields so an absent key
// can be told apart from a zero value. Keys the request does not carry leave
// the stored page untouched.
type pageUpdatePayload struct {
	Title   string          `json:"title"`
	Status  *string         `json:"status"`
	Order   *int            `json:"order"`
	Content *content.Blocks `json:"content"`
}

// UpdatePage applies an authoring payload to an existing page. The slug in
// the payload is ignored; it never changes after creation.
func (a *API) UpdatePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload pageUpdatePayload
	if !bindJSON(c, &payload) {
		return
	}

	if violations := validatePageUpdate(payload); !violations.Empty() {
		respondValidation(c, violations)
		return
	}

	update := service.PageUpdate{
		Title:   &payload.Title,
		Order:   payload.Order,
		Content: payload.Content,
	}
	if payload.Status != nil && *payload.Status != "" {
		update.Status = payload.Status
	}

	page, err := a.pages.Update(id, update)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "Page not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	view, err := newPageView(page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, view)
}

// DeletePage removes a page permanently.
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.pages.Delete(id); err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "Page not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Page deleted")
}

// BlockSpecs returns the authoring field specification for every block type
// so the panel can build its forms from the backend schema.
func (a *API) BlockSpecs(c *gin.Context) {
	specs := make(map[string][]blockFieldView, len(content.KnownTypes))
	for _, t := range content.KnownTypes {
		fields, _ := content.Spec(t)
		specs[string(t)] = newBlockFieldViews(fields)
	}
	respondData(c, http.StatusOK, specs)
}

type blockFieldView struct {
	Name     string           `json:"name"`
	Kind     string           `json:"kind"`
	Required bool             `json:"required,omitempty"`
	Enum     []string         `json:"enum,omitempty"`
	Default  string           `json:"default,omitempty"`
	Min      int              `json:"min,omitempty"`
	Max      int              `json:"max,omitempty"`
	Items    []blockFieldView `json:"items,omitempty"`
}

func newBlockFieldViews(fields []content.FieldSpec) []blockFieldView {
	views := make([]blockFieldView, 0, len(fields))
	for _, field := range fields {
		views = append(views, blockFieldView{
			Name:     field.Name,
			Kind:     string(field.Kind),
			Required: field.Required,
			Enum:     field.Enum,
			Default:  field.Default,
			Min:      field.Min,
			Max:      field.Max,
			Items:    newBlockFieldViews(field.Items),
		})
	}
	return views
}

func validatePagePayload(payload pagePayload) service.ValidationErrors {
	violations := make(service.ValidationErrors)

	validatePageTitle(violations, payload.Title)

	switch {
	case payload.Slug == "":
		violations.Add("slug", "is required")
	case utf8.RuneCountInString(payload.Slug) > 255:
		violations.Add("slug", "must be at most 255 characters")
	case !slugPattern.MatchString(payload.Slug):
		violations.Add("slug", "must contain only lowercase letters, digits and hyphens")
	}

	validatePageStatus(violations, payload.Status)

	for _, violation := range content.ValidateBlocks(payload.Content) {
		violations.Add("content", violation)
	}

	return violations
}

func validatePageUpdate(payload pageUpdatePayload) service.ValidationErrors {
	violations := make(service.ValidationErrors)

	validatePageTitle(violations, payload.Title)

	if payload.Status != nil {
		validatePageStatus(violations, *payload.Status)
	}

	if payload.Content != nil {
		for _, violation := range content.ValidateBlocks(*payload.Content) {
			violations.Add("content", violation)
		}
	}

	return violations
}

func validatePageTitle(violations service.ValidationErrors, title string) {
	if title == "" {
		violations.Add("title", "is required")
	} else if utf8.RuneCountInString(title) > 255 {
		violations.Add("title", "must be at most 255 characters")
	}
}

func validatePageStatus(violations service.ValidationErrors, status string) {
	switch status {
	case "", db.PageStatusDraft, db.PageStatusPublished:
	default:
		violations.Add("status", "must be draft or published")
	}
}
