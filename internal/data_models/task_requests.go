package dto

type CreateTaskRequest struct {
	Title string `json:"title"`
}

// UpdateTaskRequest leaves absent fields unchanged. An empty follow_up_date
// clears the date.
type UpdateTaskRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	FollowUpDate *string `json:"follow_up_date"`
}

type SubTaskRequest struct {
	Description string `json:"description"`
}
