package models

import "time"

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Task rows are removed permanently on delete; there is no soft-delete
// column anywhere in the schema.
type Task struct {
	ID           uint64       `gorm:"primarykey" json:"id"`
	Title        string       `gorm:"not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Priority     TaskPriority `gorm:"type:varchar(20);not null;default:'Low'" json:"priority"`
	Status       TaskStatus   `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	DueDate      *time.Time   `json:"due_date"`
	CreatedByID  uint64       `gorm:"not null" json:"created_by_id"`
	AssignedToID uint64       `gorm:"not null" json:"assigned_to_id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Relations
	CreatedBy  User           `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	AssignedTo User           `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	Documents  []TaskDocument `gorm:"foreignKey:TaskID" json:"documents,omitempty"`
}

// TaskDocument records one stored upload attached to a task. Rows are
// append-only; upload order is the primary key order.
type TaskDocument struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	Filename  string    `gorm:"type:varchar(255);not null" json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}
