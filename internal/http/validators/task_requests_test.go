package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
)

func ptr(s string) *string { return &s }

func TestValidateCreateTaskRequest(t *testing.T) {
	assert.NoError(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "Buy milk"}))
	assert.ErrorIs(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: " "}), apperrors.ErrTitleRequired)
}

func TestValidateUpdateTaskRequest(t *testing.T) {
	day, clearDate, err := ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{FollowUpDate: ptr("2026-11-03")})
	require.NoError(t, err)
	assert.False(t, clearDate)
	require.NotNil(t, day)
	assert.True(t, day.Equal(time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)))

	day, clearDate, err = ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{FollowUpDate: ptr("")})
	require.NoError(t, err)
	assert.True(t, clearDate)
	assert.Nil(t, day)

	_, _, err = ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{FollowUpDate: ptr("03/11/2026")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)

	_, _, err = ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{Title: ptr("")})
	assert.ErrorIs(t, err, apperrors.ErrTitleRequired)

	day, clearDate, err = ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{Description: ptr("")})
	require.NoError(t, err)
	assert.False(t, clearDate)
	assert.Nil(t, day)
}

func TestValidateSubTaskRequest(t *testing.T) {
	assert.NoError(t, ValidateSubTaskRequest(&dto.SubTaskRequest{Description: "Oat milk"}))
	assert.ErrorIs(t, ValidateSubTaskRequest(&dto.SubTaskRequest{}), apperrors.ErrDescriptionRequired)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidID, raw)
	}
}
