package repository

import (
	"github.com/taskhive/taskhive-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task. Document rows carried on the task are created
// with it; the creator and assignee rows must already exist.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit("CreatedBy", "AssignedTo").Create(task).Error
}

// FindByID finds a task by ID without loading relations
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByIDWithRelations finds a task by ID with creator, assignee and
// documents loaded, documents in upload order
func (r *GormTaskRepository) FindByIDWithRelations(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.withRelations().First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListAll retrieves every task with relations loaded
func (r *GormTaskRepository) ListAll() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.withRelations().Order("tasks.created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByCreator retrieves tasks created by the given user
func (r *GormTaskRepository) ListByCreator(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.withRelations().
		Where("tasks.created_by_id = ?", userID).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByAssignee retrieves tasks assigned to the given user
func (r *GormTaskRepository) ListByAssignee(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.withRelations().
		Where("tasks.assigned_to_id = ?", userID).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task's own columns. Associations are never written
// through here; documents only grow via AddDocuments.
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// AddDocuments appends stored-file names to a task's documents
func (r *GormTaskRepository) AddDocuments(taskID uint64, filenames []string) error {
	if len(filenames) == 0 {
		return nil
	}

	documents := make([]models.TaskDocument, len(filenames))
	for i, name := range filenames {
		documents[i] = models.TaskDocument{
			TaskID:   taskID,
			Filename: name,
		}
	}

	return r.db.Create(&documents).Error
}

// Delete permanently removes a task and its document rows
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskDocument{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

func (r *GormTaskRepository) withRelations() *gorm.DB {
	return r.db.
		Preload("CreatedBy").
		Preload("AssignedTo").
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_documents.id")
		})
}
