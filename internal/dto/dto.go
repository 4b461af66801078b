package dto

import (
	"time"

	"github.com/taskhive/taskhive-api/internal/models"
)

// UserDTO represents a user in API responses. The password hash never
// leaves the model layer.
type UserDTO struct {
	ID        uint64      `json:"id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TaskDTO represents a task in API responses. The email fields are joined
// at read time from the creator/assignee rows; create responses leave
// them empty because the relations are not resolved there.
type TaskDTO struct {
	ID              uint64              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Priority        models.TaskPriority `json:"priority"`
	Status          models.TaskStatus   `json:"status"`
	DueDate         *time.Time          `json:"due_date"`
	CreatedByID     uint64              `json:"created_by_id"`
	AssignedToID    uint64              `json:"assigned_to_id"`
	CreatedByEmail  string              `json:"created_by_email,omitempty"`
	AssignedToEmail string              `json:"assigned_to_email,omitempty"`
	Documents       []string            `json:"documents"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO. Joined email fields are
// populated only when the corresponding relation was preloaded.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Priority:     task.Priority,
		Status:       task.Status,
		DueDate:      task.DueDate,
		CreatedByID:  task.CreatedByID,
		AssignedToID: task.AssignedToID,
		Documents:    make([]string, len(task.Documents)),
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	for i, doc := range task.Documents {
		dto.Documents[i] = doc.Filename
	}

	if task.CreatedBy.ID != 0 {
		dto.CreatedByEmail = task.CreatedBy.Email
	}
	if task.AssignedTo.ID != 0 {
		dto.AssignedToEmail = task.AssignedTo.Email
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
