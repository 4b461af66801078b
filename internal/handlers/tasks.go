package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive-api/internal/auth"
	"github.com/taskhive/taskhive-api/internal/constants"
	"github.com/taskhive/taskhive-api/internal/dto"
	apierrors "github.com/taskhive/taskhive-api/internal/errors"
	"github.com/taskhive/taskhive-api/internal/middleware"
	"github.com/taskhive/taskhive-api/internal/models"
	"github.com/taskhive/taskhive-api/internal/repository"
	"github.com/taskhive/taskhive-api/internal/storage"
	"github.com/taskhive/taskhive-api/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskHandler coordinates task CRUD over the repositories and the
// document store.
type TaskHandler struct {
	tasks repository.TaskRepository
	users repository.UserRepository
	store *storage.LocalStore
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks repository.TaskRepository, users repository.UserRepository, store *storage.LocalStore) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		users: users,
		store: store,
	}
}

// ListMyTasks returns the tasks the caller created. Admins see every task.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var (
		tasks []models.Task
		err   error
	)
	if identity.IsAdmin() {
		tasks, err = h.tasks.ListAll()
	} else {
		tasks, err = h.tasks.ListByCreator(identity.ID)
	}
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListAssignedTasks returns the tasks assigned to the caller.
func (h *TaskHandler) ListAssignedTasks(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.tasks.ListByAssignee(identity.ID)
	if err != nil {
		zap.L().Error("failed to list assigned tasks", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a task by id with joined creator and assignee emails.
// Any authenticated caller may read any task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "Task not found")
		return
	}

	task, err := h.tasks.FindByIDWithRelations(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		zap.L().Error("failed to fetch task", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task from multipart form fields plus up to three
// uploaded documents. The response is the created task without joined
// emails; reads resolve them.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "User not authenticated")
		return
	}

	req := validation.CreateTaskRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Priority:    c.PostForm("priority"),
		Status:      c.PostForm("status"),
		AssignedTo:  c.PostForm("assignedTo"),
		DueDate:     c.PostForm("dueDate"),
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	assignedToID := identity.ID
	if req.AssignedTo != "" {
		id, ok := h.resolveAssignee(c, req.AssignedTo)
		if !ok {
			return
		}
		assignedToID = id
	}

	files, ok := h.uploadedDocuments(c)
	if !ok {
		return
	}

	saved, err := h.saveUploads(files)
	if err != nil {
		zap.L().Error("failed to store documents", zap.Error(err))
		apierrors.InternalError(c, "Failed to store documents")
		return
	}

	task := models.Task{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     models.TaskPriorityLow,
		Status:       models.TaskStatusPending,
		CreatedByID:  identity.ID,
		AssignedToID: assignedToID,
	}
	if req.Priority != "" {
		task.Priority = models.TaskPriority(req.Priority)
	}
	if req.Status != "" {
		task.Status = models.TaskStatus(req.Status)
	}
	if req.DueDate != "" {
		dueDate, err := time.Parse(time.RFC3339, req.DueDate)
		if err == nil {
			task.DueDate = &dueDate
		}
	}
	for _, name := range saved {
		task.Documents = append(task.Documents, models.TaskDocument{Filename: name})
	}

	if err := h.tasks.Create(&task); err != nil {
		h.removeUploads(saved)
		zap.L().Error("failed to create task", zap.Error(err))
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(task))
}

// UpdateTask patches the provided fields of a task. New documents are
// appended to the existing ones, never replacing them.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "Task not found")
		return
	}

	task, err := h.tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		zap.L().Error("failed to fetch task", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}

	if !auth.CanMutateTask(identity, *task) {
		apierrors.Forbidden(c, "Only the creator or an admin can modify this task")
		return
	}

	req := validation.UpdateTaskRequest{
		Title:       formField(c, "title"),
		Description: formField(c, "description"),
		Priority:    formField(c, "priority"),
		Status:      formField(c, "status"),
		AssignedTo:  formField(c, "assignedTo"),
		DueDate:     formField(c, "dueDate"),
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = models.TaskPriority(*req.Priority)
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}
	if req.AssignedTo != nil {
		id, ok := h.resolveAssignee(c, *req.AssignedTo)
		if !ok {
			return
		}
		task.AssignedToID = id
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(time.RFC3339, *req.DueDate)
		if err == nil {
			task.DueDate = &dueDate
		}
	}

	files, ok := h.uploadedDocuments(c)
	if !ok {
		return
	}

	saved, err := h.saveUploads(files)
	if err != nil {
		zap.L().Error("failed to store documents", zap.Error(err))
		apierrors.InternalError(c, "Failed to store documents")
		return
	}

	if err := h.tasks.Update(task); err != nil {
		h.removeUploads(saved)
		zap.L().Error("failed to update task", zap.Error(err))
		apierrors.InternalError(c, "Failed to update task")
		return
	}

	if err := h.tasks.AddDocuments(task.ID, saved); err != nil {
		h.removeUploads(saved)
		zap.L().Error("failed to record documents", zap.Error(err))
		apierrors.InternalError(c, "Failed to update task")
		return
	}

	updated, err := h.tasks.FindByIDWithRelations(task.ID)
	if err != nil {
		zap.L().Error("failed to reload task", zap.Error(err))
		apierrors.InternalError(c, "Failed to reload task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask permanently removes a task. Stored documents stay on disk;
// only the database rows go away.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "Task not found")
		return
	}

	task, err := h.tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		zap.L().Error("failed to fetch task", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}

	if !auth.CanMutateTask(identity, *task) {
		apierrors.Forbidden(c, "Only the creator or an admin can delete this task")
		return
	}

	if err := h.tasks.Delete(task.ID); err != nil {
		zap.L().Error("failed to delete task", zap.Error(err))
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// resolveAssignee parses an assignedTo form value and checks the user
// exists. Responds with the appropriate error and returns false otherwise.
func (h *TaskHandler) resolveAssignee(c *gin.Context, value string) (uint64, bool) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Assigned user does not exist")
		return 0, false
	}

	if _, err := h.users.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.BadRequest(c, "Assigned user does not exist")
			return 0, false
		}
		zap.L().Error("failed to resolve assignee", zap.Error(err))
		apierrors.InternalError(c, "Failed to resolve assignee")
		return 0, false
	}

	return id, true
}

// uploadedDocuments collects the "documents" file parts, enforcing the
// attachment limit. Responds with 400 and returns false when exceeded.
func (h *TaskHandler) uploadedDocuments(c *gin.Context) ([]*multipart.FileHeader, bool) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, true
	}

	files := form.File["documents"]
	if len(files) > constants.MaxTaskDocuments {
		apierrors.BadRequest(c, "A maximum of 3 documents can be attached")
		return nil, false
	}

	return files, true
}

// saveUploads writes each upload to the store, backing out files already
// written when a later one fails.
func (h *TaskHandler) saveUploads(files []*multipart.FileHeader) ([]string, error) {
	saved := make([]string, 0, len(files))
	for _, file := range files {
		name, err := h.store.Save(file)
		if err != nil {
			h.removeUploads(saved)
			return nil, err
		}
		saved = append(saved, name)
	}
	return saved, nil
}

// removeUploads deletes stored files whose database registration failed.
func (h *TaskHandler) removeUploads(names []string) {
	for _, name := range names {
		if err := h.store.Remove(name); err != nil {
			zap.L().Warn("failed to remove orphaned upload",
				zap.String("filename", name),
				zap.Error(err))
		}
	}
}

// formField reports a form value together with whether the key was sent
// at all, so absent and present-but-empty stay distinguishable.
func formField(c *gin.Context, key string) *string {
	if value, ok := c.GetPostForm(key); ok {
		return &value
	}
	return nil
}
