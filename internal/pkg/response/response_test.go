package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSuccess_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Success(c, 200, gin.H{"id": 1})

	var env map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, true, env["success"])
	assert.NotNil(t, env["data"])
	assert.Nil(t, env["error"])
}

func TestError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, 402, "PAYMENT_REQUIRED", "Pay before editing")

	var env struct {
		Success bool       `json:"success"`
		Error   *ErrorBody `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "PAYMENT_REQUIRED", env.Error.Code)
	assert.Equal(t, "Pay before editing", env.Error.Message)
	assert.Equal(t, 402, rec.Code)
}

func TestErrorWithDetails_CarriesFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	ErrorWithDetails(c, 400, "VALIDATION_ERROR", "Invalid review", map[string]string{"rating": "must be at most 5"})

	var env map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	errBody := env["error"].(map[string]any)
	details := errBody["details"].(map[string]any)
	assert.Equal(t, "must be at most 5", details["rating"])
}
