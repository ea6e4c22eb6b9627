package apiutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KeshavWanjale/usercrud/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(TraceIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, TraceID(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assigned := w.Header().Get(TraceIDHeader)
	assert.NotEmpty(t, assigned)
	assert.Equal(t, assigned, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(TraceIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(TraceIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestWriteErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	WriteErrorResponse(c, http.StatusNotFound, "User not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

type sample struct {
	Name string `json:"name" validate:"required"`
	Skip string `json:"-"`
}

func TestValidatorUsesJSONNames(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(sample{Name: "x"}))

	err := v.Validate(sample{})
	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatus())
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "name", e.Fields[0].Field)
	assert.Equal(t, "required", e.Fields[0].Kind)
	assert.Equal(t, "is required", e.Fields[0].Message)
}
