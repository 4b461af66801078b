package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive-api/internal/dto"
	apierrors "github.com/taskhive/taskhive-api/internal/errors"
	"github.com/taskhive/taskhive-api/internal/models"
	"github.com/taskhive/taskhive-api/internal/repository"
	"github.com/taskhive/taskhive-api/internal/services"
	"github.com/taskhive/taskhive-api/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserHandler coordinates the admin-only user management surface.
// Mutations acknowledge with a message instead of echoing the entity.
type UserHandler struct {
	users       repository.UserRepository
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users repository.UserRepository, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		users:       users,
		authService: authService,
	}
}

// ListUsers returns every user. Password hashes never appear in the DTO.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// CreateUser registers a new user on behalf of an admin.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req validation.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	email := strings.TrimSpace(req.Email)
	if _, err := h.users.FindByEmail(email); err == nil {
		apierrors.Conflict(c, "User already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Error("failed to check email", zap.Error(err))
		apierrors.InternalError(c, "Failed to create user")
		return
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		zap.L().Error("failed to hash password", zap.Error(err))
		apierrors.InternalError(c, "Failed to create user")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.Role(req.Role),
	}
	if err := h.users.Create(&user); err != nil {
		zap.L().Error("failed to create user", zap.Error(err))
		apierrors.InternalError(c, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
	})
}

// UpdateUser patches the provided fields of a user. A provided password
// is re-hashed before storage.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "User not found")
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		zap.L().Error("failed to fetch user", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	var req validation.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Password != nil {
		hash, err := h.authService.HashPassword(*req.Password)
		if err != nil {
			zap.L().Error("failed to hash password", zap.Error(err))
			apierrors.InternalError(c, "Failed to update user")
			return
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		user.Role = models.Role(*req.Role)
	}

	if err := h.users.Update(user); err != nil {
		zap.L().Error("failed to update user", zap.Error(err))
		apierrors.InternalError(c, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
	})
}

// DeleteUser permanently removes a user. Tasks referencing the user keep
// their references.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "User not found")
		return
	}

	if _, err := h.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		zap.L().Error("failed to fetch user", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	if err := h.users.Delete(userID); err != nil {
		zap.L().Error("failed to delete user", zap.Error(err))
		apierrors.InternalError(c, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}
