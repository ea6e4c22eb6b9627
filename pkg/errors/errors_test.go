package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/KeshavWanjale/usercrud/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestExplainKeepsKindAndStatus(t *testing.T) {
	err := errors.NotFound.Explain("user %d not found", 7)

	assert.Equal(t, "user 7 not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus())
	assert.True(t, errors.Is(err, errors.NotFound))
	assert.False(t, errors.Is(err, errors.Invalid))
	// sentinel is untouched
	assert.Empty(t, errors.NotFound.Message)
}

func TestReasonChangesKindOnly(t *testing.T) {
	missing := errors.Invalid.Reason("MissingField").Explain("Invalid data")

	assert.Equal(t, http.StatusBadRequest, missing.HTTPStatus())
	assert.False(t, errors.Is(missing, errors.Invalid))
	assert.True(t, errors.Is(missing.WithField("required", "name", ""), missing))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := errors.Conflict.Explain("duplicate").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus())
	assert.Contains(t, err.Error(), "boom")
}

func TestWithFieldDoesNotAlias(t *testing.T) {
	base := errors.Invalid.WithField("type", "age", "")
	a := base.WithField("required", "name", "")
	b := base.WithField("type", "name", "")

	assert.Len(t, base.Fields, 1)
	assert.Equal(t, "required", a.Fields[1].Kind)
	assert.Equal(t, "type", b.Fields[1].Kind)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, errors.StatusOf(fmt.Errorf("lookup: %w", errors.NotFound)))
	assert.Equal(t, http.StatusInternalServerError, errors.StatusOf(stderrors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, errors.StatusOf(errors.New("unknown")))
}
