package api

// TokenRequest is the body of POST /jwt.
type TokenRequest struct {
	Email string `json:"email" validate:"required"`
}

// CreateTaskRequest is the body of POST /records. Any owner field the client
// sends is ignored; the task always belongs to the session email.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// SuccessResponse is returned by the session endpoints.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// AccountCreatedResponse is returned when POST /accounts inserted a record.
type AccountCreatedResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// AccountExistsResponse is returned when POST /accounts found the email
// already registered. InsertedID is always null.
type AccountExistsResponse struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
}

// TaskUpdatedResponse is returned by both task update routes.
type TaskUpdatedResponse struct {
	Message       string            `json:"message"`
	TaskID        string            `json:"taskId"`
	UpdatedFields map[string]string `json:"updatedFields"`
}
