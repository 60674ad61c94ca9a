package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jrazmi/tasktrack/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktrack/sdk/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMessageOnly(t *testing.T) {
	e := errs.Newf(errs.NotFound, "Task not found.")

	data, contentType, err := e.Encode()
	require.NoError(t, err)
	assert.Equal(t, "application/json; charset=utf-8", contentType)
	assert.JSONEq(t, `{"message":"Task not found."}`, string(data))
	assert.Equal(t, http.StatusNotFound, e.HTTPStatus())
	assert.Contains(t, e.FuncName, "TestEncodeMessageOnly")
}

func TestFieldErrors(t *testing.T) {
	var fe validation.FieldErrors
	fe.Add("title", "Title is required")
	fe.Add("status", "Invalid status")

	e := errs.FromValidation(fmt.Errorf("create: %w", fe.Err()))
	require.NotNil(t, e)

	data, _, err := e.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"message": "Validation failed",
		"errors": [
			{"field": "title", "message": "Title is required"},
			{"field": "status", "message": "Invalid status"}
		]
	}`, string(data))
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatus())
}

func TestSingleFieldErrorUsesItsMessage(t *testing.T) {
	var fe validation.FieldErrors
	fe.Add("newPassword", "New password must be at least 6 characters")

	e := errs.NewFieldErrors(&fe)
	assert.Equal(t, "New password must be at least 6 characters", e.Message)
	assert.Len(t, e.Fields, 1)
}

func TestFromValidationIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, errs.FromValidation(errors.New("boom")))
}

func TestPublicHidesInternalMessages(t *testing.T) {
	e := errs.Newf(errs.InternalOnlyLog, "pg: connection refused")
	pub := e.Public()

	assert.Equal(t, "Internal Server Error", pub.Message)
	assert.Equal(t, http.StatusInternalServerError, pub.HTTPStatus())

	conflict := errs.Newf(errs.Aborted, "version conflict")
	assert.Same(t, conflict, conflict.Public())
	assert.Equal(t, http.StatusConflict, conflict.HTTPStatus())
}
