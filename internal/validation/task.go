package validation

import "strings"

// CreateTaskRequest is the schema for POST /tasks form fields.
type CreateTaskRequest struct {
	Title       string `validate:"required"`
	Description string
	Priority    string `validate:"omitempty,oneof=Low Medium High"`
	Status      string `validate:"omitempty,oneof=Pending InProgress Completed"`
	AssignedTo  string `validate:"omitempty,number"`
	DueDate     string `validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (r CreateTaskRequest) Validate() error {
	return checkStruct(r)
}

// UpdateTaskRequest is the schema for PUT /tasks/:id form fields. A nil
// field was absent from the request and keeps its stored value.
type UpdateTaskRequest struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	AssignedTo  *string
	DueDate     *string
}

// Validate checks every field that was present in the request. A field
// sent empty is a violation, never a silent no-op: absence and emptiness
// are distinct on this schema.
func (r UpdateTaskRequest) Validate() error {
	var messages []string

	if r.Title != nil && *r.Title == "" {
		messages = append(messages, "Title is required")
	}
	if r.Description != nil && *r.Description == "" {
		messages = append(messages, "Description must not be empty")
	}
	messages = appendFieldViolation(messages, "Priority", r.Priority, "oneof=Low Medium High")
	messages = appendFieldViolation(messages, "Status", r.Status, "oneof=Pending InProgress Completed")
	messages = appendFieldViolation(messages, "AssignedTo", r.AssignedTo, "number")
	messages = appendFieldViolation(messages, "DueDate", r.DueDate, "datetime=2006-01-02T15:04:05Z07:00")

	if len(messages) > 0 {
		return newValidationError(messages...)
	}
	return nil
}

// appendFieldViolation validates a present field value against one rule
// and appends the rendered message on failure.
func appendFieldViolation(messages []string, field string, value *string, rule string) []string {
	if value == nil {
		return messages
	}
	if err := validate.Var(*value, rule); err != nil {
		tag, param, _ := strings.Cut(rule, "=")
		messages = append(messages, messageFor(field, tag, param))
	}
	return messages
}
