package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskhive/taskhive-api/internal/auth"
	"github.com/taskhive/taskhive-api/internal/constants"
	"github.com/taskhive/taskhive-api/internal/database"
	"github.com/taskhive/taskhive-api/internal/dto"
	"github.com/taskhive/taskhive-api/internal/middleware"
	"github.com/taskhive/taskhive-api/internal/models"
	"github.com/taskhive/taskhive-api/internal/repository"
	"github.com/taskhive/taskhive-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// UserHandlerTestSuite defines the test suite for UserHandler
type UserHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *UserHandler
}

// SetupTest runs before each test
func (suite *UserHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskDocument{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	authService := services.NewAuthService(userRepo, []byte("test-secret"), time.Hour)
	suite.handler = NewUserHandler(userRepo, authService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *UserHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *UserHandlerTestSuite) createTestUser(email string, role models.Role) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

// router builds the user routes behind a stub identity plus the real
// admin gate, so the admin-only contract is exercised end to end.
func (suite *UserHandlerTestSuite) router(caller *models.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyIdentity, auth.Identity{ID: caller.ID, Role: caller.Role})
		c.Next()
	})
	users := r.Group("/users")
	users.Use(middleware.RequireAdmin())
	{
		users.GET("", suite.handler.ListUsers)
		users.POST("", suite.handler.CreateUser)
		users.PUT("/:id", suite.handler.UpdateUser)
		users.DELETE("/:id", suite.handler.DeleteUser)
	}
	return r
}

func (suite *UserHandlerTestSuite) jsonRequest(method, url string, payload any) *http.Request {
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (suite *UserHandlerTestSuite) TestListUsers_ExcludesPassword() {
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)
	suite.createTestUser("dev@example.com", models.RoleUser)

	r := suite.router(admin)
	req := httptest.NewRequest("GET", "/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var users []map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &users))
	suite.Require().Len(users, 2)
	for _, user := range users {
		assert.NotContains(suite.T(), user, "password")
		assert.NotContains(suite.T(), user, "password_hash")
	}

	var typed []dto.UserDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &typed))
	assert.Equal(suite.T(), "admin@example.com", typed[0].Email)
	assert.Equal(suite.T(), models.RoleAdmin, typed[0].Role)
}

func (suite *UserHandlerTestSuite) TestCreateUser_Success() {
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)

	r := suite.router(admin)
	req := suite.jsonRequest("POST", "/users", map[string]string{
		"email":    "new@example.com",
		"password": "secret123",
		"role":     "user",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "User created successfully")

	var stored models.User
	suite.Require().NoError(suite.db.Where("email = ?", "new@example.com").First(&stored).Error)
	assert.Equal(suite.T(), models.RoleUser, stored.Role)
	assert.NotEqual(suite.T(), "secret123", stored.PasswordHash)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func (suite *UserHandlerTestSuite) TestCreateUser_Conflict() {
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)
	existing := suite.createTestUser("taken@example.com", models.RoleUser)

	r := suite.router(admin)
	req := suite.jsonRequest("POST", "/users", map[string]string{
		"email":    "taken@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	// The existing record is untouched
	var stored models.User
	suite.Require().NoError(suite.db.First(&stored, existing.ID).Error)
	assert.Equal(suite.T(), models.RoleUser, stored.Role)
	assert.Equal(suite.T(), "hashedpassword", stored.PasswordHash)
}

func (suite *UserHandlerTestSuite) TestCreateUser_Validation() {
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)

	r := suite.router(admin)
	req := suite.jsonRequest("POST", "/users", map[string]string{
		"email":    "not-an-email",
		"password": "abc",
		"role":     "user",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Invalid email address")
	assert.Contains(suite.T(), w.Body.String(), "Password must be at least 6 characters")

	var count int64
	suite.db.Model(&models.User{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *UserHandlerTestSuite) TestUpdateUser_PatchRoleOnly() {
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)
	target := suite.createTestUser("dev@example.com", models.RoleUser)

	r := suite.router(admin)
	req := suite.jsonRequest("PUT", "/users/2", map[string]string{
		"role": "admin",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "User updated successfully")

	var stored models.User
	suite.Require().NoError(suite.db.First(&stored, target.ID).Error)
	assert.Equal(suite.T(), models.RoleAdmin, stored.Role)
	assert.Equal(suite.T(), "dev@example.com", stored.Email)
	assert.Equal(suite.T(), "hashedpassword", stored.PasswordHash)
}

func (suite *UserHandlerTestSuite) TestUpdateUser_RehashesPassword() {
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)
	target := suite.createTestUser("dev@example.com", models.RoleUser)

	r := suite.router(admin)
	req := suite.jsonRequest("PUT", "/users/2", map[string]string{
		"password": "newsecret",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.User
	suite.Require().NoError(suite.db.First(&stored, target.ID).Error)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newsecret")))
}

func (suite *UserHandlerTestSuite) TestUpdateUser_NotFound() {
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)

	r := suite.router(admin)
	req := suite.jsonRequest("PUT", "/users/99", map[string]string{
		"role": "admin",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *UserHandlerTestSuite) TestDeleteUser_Success() {
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)
	target := suite.createTestUser("dev@example.com", models.RoleUser)

	r := suite.router(admin)
	req := httptest.NewRequest("DELETE", "/users/2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "User deleted successfully")

	err := suite.db.First(&models.User{}, target.ID).Error
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

func (suite *UserHandlerTestSuite) TestDeleteUser_NotFound() {
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)

	r := suite.router(admin)
	req := httptest.NewRequest("DELETE", "/users/99", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *UserHandlerTestSuite) TestUsers_ForbiddenForNonAdmin() {
	nonAdmin := suite.createTestUser("dev@example.com", models.RoleUser)
	r := suite.router(nonAdmin)

	requests := []*http.Request{
		httptest.NewRequest("GET", "/users", nil),
		suite.jsonRequest("POST", "/users", map[string]string{
			"email":    "new@example.com",
			"password": "secret123",
			"role":     "user",
		}),
		suite.jsonRequest("PUT", "/users/1", map[string]string{"role": "admin"}),
		httptest.NewRequest("DELETE", "/users/1", nil),
	}

	for _, req := range requests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(suite.T(), http.StatusForbidden, w.Code, "%s %s", req.Method, req.URL.Path)
	}
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
