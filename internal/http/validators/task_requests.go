package validators

import (
	"strconv"
	"strings"
	"time"

	"task-tracker.com/task-tracker/internal/constants"
	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	return nil
}

// ValidateUpdateTaskRequest checks the fields that are present and returns the
// parsed follow-up date. clearDate is true when the request asks to remove it.
func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) (followUp *time.Time, clearDate bool, err error) {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return nil, false, apperrors.ErrTitleRequired
	}
	if r.FollowUpDate == nil {
		return nil, false, nil
	}

	raw := strings.TrimSpace(*r.FollowUpDate)
	if raw == "" {
		return nil, true, nil
	}
	day, err := time.Parse(constants.DateLayout, raw)
	if err != nil {
		return nil, false, apperrors.ErrInvalidDate
	}
	return &day, false, nil
}

func ValidateSubTaskRequest(r *dto.SubTaskRequest) error {
	if strings.TrimSpace(r.Description) == "" {
		return apperrors.ErrDescriptionRequired
	}
	return nil
}

func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidID
	}
	return id, nil
}
