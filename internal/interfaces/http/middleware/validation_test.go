package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawise/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	// Should not panic
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	type dateQuery struct {
		StartDate string `form:"start_date" binding:"required,datetime=2006-01-02"`
		GroupBy   string `form:"group_by" binding:"omitempty,oneof=day week month"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		var req dateQuery
		if err := c.ShouldBindQuery(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("returns validation errors for invalid input", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test?start_date=not-a-date&group_by=hour", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)

		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		assert.Len(t, resp.Error.Details, 2)
	})

	t.Run("reports field names from form tags", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test?group_by=day", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "start_date", resp.Error.Details[0].Field)
		assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
	})

	t.Run("returns success for valid input", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test?start_date=2024-01-01&group_by=month", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("includes request ID when set", func(t *testing.T) {
		idRouter := gin.New()
		idRouter.Use(RequestID())
		idRouter.GET("/test", func(c *gin.Context) {
			var req dateQuery
			if err := c.ShouldBindQuery(&req); err != nil {
				HandleValidationError(c, err)
				return
			}
		})

		httpReq := httptest.NewRequest("GET", "/test", nil)
		httpReq.Header.Set("X-Request-ID", "req-abc")
		w := httptest.NewRecorder()
		idRouter.ServeHTTP(w, httpReq)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "req-abc", resp.Error.RequestID)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type rangeStruct struct {
		Required string `binding:"required" validate:"required"`
		Date     string `validate:"datetime=2006-01-02"`
		OneOf    string `validate:"oneof=day week month"`
		Min      int    `validate:"min=1"`
		Max      int    `validate:"max=250"`
		GTE      int    `validate:"gte=10"`
		LTE      int    `validate:"lte=100"`
	}

	v := validator.New()
	err := v.Struct(rangeStruct{
		Required: "",
		Date:     "not-a-date",
		OneOf:    "hour",
		Min:      0,
		Max:      500,
		GTE:      5,
		LTE:      200,
	})
	require.Error(t, err)

	expected := map[string]string{
		"Required": "This field is required",
		"Date":     "Must be a calendar date (YYYY-MM-DD)",
		"OneOf":    "Must be one of: day week month",
		"Min":      "Must be at least 1",
		"Max":      "Must be at most 250",
		"GTE":      "Must be greater than or equal to 10",
		"LTE":      "Must be less than or equal to 100",
	}

	validationErrs := err.(validator.ValidationErrors)
	seen := map[string]bool{}
	for _, e := range validationErrs {
		want, ok := expected[e.Field()]
		require.True(t, ok, "unexpected field %s", e.Field())
		assert.Equal(t, want, getValidationMessage(e))
		seen[e.Field()] = true
	}
	assert.Len(t, seen, len(expected))
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}
