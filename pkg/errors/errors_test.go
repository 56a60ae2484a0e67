package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	e := New(ErrCodeEmptyDataset, "no valid poses")
	assert.Equal(t, "[DOCK_001] no valid poses", e.Error())

	withDetail := e.WithDetail("models=0")
	assert.Equal(t, "[DOCK_001] no valid poses: models=0", withDetail.Error())
	// Receiver is not mutated.
	assert.Empty(t, e.Detail)
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	e := Wrap(cause, ErrCodeDatabaseError, "insert analysis")
	require.NotNil(t, e)
	assert.Equal(t, ErrCodeDatabaseError, e.Code)
	assert.ErrorIs(t, e, cause)

	assert.Nil(t, Wrap(nil, ErrCodeDatabaseError, "never"))
}

func TestWrap_PreservesCodeWhenUnknown(t *testing.T) {
	inner := New(ErrCodeAnalysisNotFound, "analysis not found")
	outer := Wrap(fmt.Errorf("service: %w", inner), CodeUnknown, "lookup failed")
	assert.Equal(t, ErrCodeAnalysisNotFound, outer.Code)
}

func TestIsCode_TraversesChain(t *testing.T) {
	inner := EmptyDataset("no valid poses")
	wrapped := Wrap(inner, ErrCodeInternal, "analyze upload")

	assert.True(t, IsCode(wrapped, ErrCodeEmptyDataset))
	assert.True(t, IsEmptyDataset(wrapped))
	assert.False(t, IsCode(wrapped, ErrCodeDatabaseError))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("gone")))
	assert.True(t, IsNotFound(New(ErrCodeAnalysisNotFound, "gone")))
	assert.False(t, IsNotFound(Internal("boom")))
	assert.False(t, IsNotFound(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeValidation, GetCode(New(ErrCodeValidation, "bad")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, ErrCodeEmptyDataset.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, ErrCodeAnalysisNotFound.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, ErrorCode("NOPE").HTTPStatus())
}
