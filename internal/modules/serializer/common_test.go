package serializer

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subtrackhq/subtrack/internal/pkg/apperr"
)

func TestAppErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", apperr.ErrNotFound, http.StatusNotFound, apperr.ErrNotFound.Msg},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden, apperr.ErrForbidden.Msg},
		{"already member", apperr.ErrAlreadyMember, http.StatusConflict, apperr.ErrAlreadyMember.Msg},
		{"duplicate invitation", apperr.ErrDuplicateInvitation, http.StatusConflict, apperr.ErrDuplicateInvitation.Msg},
		{"already processed", apperr.ErrAlreadyProcessed, http.StatusConflict, apperr.ErrAlreadyProcessed.Msg},
		{"storage", apperr.Storage(errors.New("connection reset")), http.StatusInternalServerError, "database error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := AppErr(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, res.Msg)
		})
	}
}

// Every token resolution failure must serialize identically; the body may not
// reveal whether the token exists, is bound to someone else, or names a
// different email.
func TestAppErr_TokenResolutionCollapses(t *testing.T) {
	family := []error{
		apperr.ErrInvalidToken,
		apperr.ErrWrongRecipient,
		apperr.ErrEmailMismatch,
	}

	for _, err := range family {
		status, res := AppErr(err)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperr.ErrInvalidToken.Msg, res.Msg)
		assert.Empty(t, res.Error)
		assert.Nil(t, res.Data)
	}
}

func TestAppErr_ValidationCarriesAllFields(t *testing.T) {
	err := apperr.Validation(map[string]string{
		"email": "a valid email is required",
		"role":  "role must be admin, editor or viewer",
	})

	status, res := AppErr(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation failed", res.Msg)

	fields, ok := res.Data.(map[string]string)
	assert.True(t, ok)
	assert.Len(t, fields, 2)
}
