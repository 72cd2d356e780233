package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/tradeskill/internal/errors"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := apperrors.NewDayNotFoundError(29)

	assert.True(t, stderrors.Is(err, apperrors.ErrDayNotFound))
	assert.False(t, stderrors.Is(err, apperrors.ErrLessonNotFound))
	assert.Equal(t, 404, err.Status)
	assert.Contains(t, err.Error(), "DAY_NOT_FOUND")
	assert.Contains(t, err.Error(), "day 29")
}

func TestAppError_IsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("starting lesson: %w", apperrors.NewLessonNotFoundError(1, 9))

	assert.True(t, stderrors.Is(wrapped, apperrors.ErrLessonNotFound))

	appErr, ok := apperrors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeLessonNotFound, appErr.Code)
}

func TestMalformedResponse_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("expected slider response")
	err := apperrors.NewMalformedResponseError("slider", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)
	assert.Equal(t, 400, err.Status)
}

func TestAs_NonAppError(t *testing.T) {
	_, ok := apperrors.As(stderrors.New("plain"))
	assert.False(t, ok)
}
