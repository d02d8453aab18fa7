package errors

import "net/http"

var ErrTitleRequired = &Exception{
	Message:    "title is required",
	StatusCode: http.StatusBadRequest,
}

var ErrDescriptionRequired = &Exception{
	Message:    "description is required",
	StatusCode: http.StatusBadRequest,
}
