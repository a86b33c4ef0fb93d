package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagecms/internal/service"
)

type subscribePayload struct {
	Email string `json:"email"`
}

// Subscribe adds an address to the mailing list.
func (a *API) Subscribe(c *gin.Context) {
	var payload subscribePayload
	if !bindJSON(c, &payload) {
		return
	}

	entry, err := a.mailing.Subscribe(payload.Email)
	if err != nil {
		var violations service.ValidationErrors
		if errors.As(err, &violations) {
			respondValidation(c, violations)
			return
		}
		respondServiceError(c, err)
		return
	}

	respondCreated(c, "Successfully subscribed to our mailing list!", gin.H{
		"id":         entry.ID,
		"email":      entry.Email,
		"created_at": entry.CreatedAt,
	})
}

// AdminListMailingList returns subscribers newest first.
func (a *API) AdminListMailingList(c *gin.Context) {
	entries, err := a.mailing.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries)
}
