package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagecms/internal/service"
)

type contactPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitContact accepts a public contact form submission.
func (a *API) SubmitContact(c *gin.Context) {
	var payload contactPayload
	if !bindJSON(c, &payload) {
		return
	}

	submission, err := a.contacts.Submit(service.ContactInput{
		Name:    payload.Name,
		Phone:   payload.Phone,
		Email:   payload.Email,
		Message: payload.Message,
	})
	if err != nil {
		var violations service.ValidationErrors
		if errors.As(err, &violations) {
			respondValidation(c, violations)
			return
		}
		respondServiceError(c, err)
		return
	}

	respondCreated(c, "Thank you for contacting us. We will get back to you soon.", gin.H{
		"id":         submission.ID,
		"reference":  submission.Reference,
		"created_at": submission.CreatedAt,
	})
}

// AdminListContacts returns submissions newest first, optionally filtered
// by status.
func (a *API) AdminListContacts(c *gin.Context) {
	submissions, err := a.contacts.List(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, submissions)
}

type contactStatusPayload struct {
	Status string `json:"status"`
}

// AdminUpdateContactStatus advances a submission through the workflow.
func (a *API) AdminUpdateContactStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload contactStatusPayload
	if !bindJSON(c, &payload) {
		return
	}

	submission, err := a.contacts.UpdateStatus(id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContactNotFound):
			respondError(c, http.StatusNotFound, "Submission not found")
		case errors.Is(err, service.ErrInvalidContactStatus):
			violations := make(service.ValidationErrors)
			violations.Add("status", "must be new, in_progress or resolved")
			respondValidation(c, violations)
		default:
			respondServiceError(c, err)
		}
		return
	}

	respondData(c, http.StatusOK, submission)
}
