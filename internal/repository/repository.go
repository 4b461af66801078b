package repository

import "github.com/taskhive/taskhive-api/internal/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves all users
	List() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete permanently removes a user
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task together with its document rows
	Create(task *models.Task) error

	// FindByID finds a task by ID without loading relations
	FindByID(id uint64) (*models.Task, error)

	// FindByIDWithRelations finds a task by ID with creator, assignee and
	// documents loaded, documents in upload order
	FindByIDWithRelations(id uint64) (*models.Task, error)

	// ListAll retrieves every task with relations loaded
	ListAll() ([]models.Task, error)

	// ListByCreator retrieves tasks created by the given user
	ListByCreator(userID uint64) ([]models.Task, error)

	// ListByAssignee retrieves tasks assigned to the given user
	ListByAssignee(userID uint64) ([]models.Task, error)

	// Update updates a task's own columns
	Update(task *models.Task) error

	// AddDocuments appends stored-file names to a task's documents
	AddDocuments(taskID uint64, filenames []string) error

	// Delete permanently removes a task and its document rows
	Delete(id uint64) error
}
