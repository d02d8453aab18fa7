package errors

import "net/http"

var ErrInvalidDate = &Exception{
	Message:    "follow_up_date must be formatted as YYYY-MM-DD",
	StatusCode: http.StatusBadRequest,
}
