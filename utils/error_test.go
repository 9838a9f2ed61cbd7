package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func renderWorkflowError(t *testing.T, err error) (int, WorkflowErrorResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	WorkflowJSONError(c, err)

	var body WorkflowErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestWorkflowJSONError_PlainErrorIsRetryableNetworkFailure(t *testing.T) {
	code, body := renderWorkflowError(t, errors.New("connection reset"))

	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, string(CodeNetworkFailure), body.Code)
	assert.True(t, body.Retryable)
	assert.Equal(t, "unexpected failure, please try again", body.Error)
}

func TestWorkflowJSONError_KeepsWorkflowStatus(t *testing.T) {
	code, body := renderWorkflowError(t, fmt.Errorf("load: %w", NewNotFound("vehicle not found")))

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, string(CodeNotFound), body.Code)
	assert.Equal(t, "vehicle not found", body.Error)
	assert.False(t, body.Retryable)
}

func TestWorkflowJSONError_CarriesValidationFields(t *testing.T) {
	code, body := renderWorkflowError(t, NewValidationIncomplete([]string{"date", "time"}))

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"date", "time"}, body.Fields)
}
