package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskhub/internal/database"
	"taskhub/internal/dto"
	"taskhub/internal/models"
	"taskhub/internal/repository"
	"taskhub/internal/services"
)

// UserHandlerTestSuite defines the test suite for UserHandler
type UserHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	router  *gin.Engine
	handler *UserHandler
}

// SetupTest runs before each test
func (suite *UserHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	roleRepo := repository.NewRoleRepository(suite.db)
	userService := services.NewUserService(userRepo, roleRepo)
	suite.handler = NewUserHandler(userService, nil)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.POST("/api/users", suite.handler.CreateUser)
	suite.router.GET("/api/users", suite.handler.ListUsers)
	suite.router.GET("/api/users/:id", suite.handler.GetUser)
	suite.router.PUT("/api/users/:id", suite.handler.UpdateUser)
	suite.router.DELETE("/api/users/:id", suite.handler.DeleteUser)
	suite.router.PUT("/api/users/:id/roles", suite.handler.ReplaceRoles)
	suite.router.DELETE("/api/users/:id/roles", suite.handler.RemoveRoles)
}

// TearDownTest runs after each test
func (suite *UserHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *UserHandlerTestSuite) createTestUser(username, email string) *models.User {
	user := &models.User{
		Username: username,
		Email:    email,
		Password: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *UserHandlerTestSuite) createTestRole(name string) *models.Role {
	role := &models.Role{Name: name}
	suite.Require().NoError(suite.db.Create(role).Error)
	return role
}

func (suite *UserHandlerTestSuite) associate(userID, roleID uint64) {
	edge := &models.UserRole{UserID: userID, RoleID: roleID}
	suite.Require().NoError(suite.db.Create(edge).Error)
}

func (suite *UserHandlerTestSuite) request(method, url string, payload any) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *UserHandlerTestSuite) roleIDsOf(user dto.UserDTO) []uint64 {
	ids := make([]uint64, len(user.Roles))
	for i, role := range user.Roles {
		ids[i] = role.ID
	}
	return ids
}

func (suite *UserHandlerTestSuite) TestCreateUser_Success() {
	w := suite.request("POST", "/api/users", gin.H{
		"username":  "newuser1",
		"email":     "newuser1@example.com",
		"password":  "supersecret",
		"full_name": "New User",
	})

	suite.Require().Equal(http.StatusCreated, w.Code)

	var response dto.UserDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.GreaterOrEqual(suite.T(), response.ID, uint64(1))
	assert.Equal(suite.T(), "newuser1", response.Username)
	assert.Equal(suite.T(), "newuser1@example.com", response.Email)
	assert.Equal(suite.T(), "New User", response.FullName)
}

func (suite *UserHandlerTestSuite) TestCreateUser_DuplicateUsername() {
	suite.createTestUser("duplicate", "first@example.com")

	w := suite.request("POST", "/api/users", gin.H{
		"username": "duplicate",
		"email":    "second@example.com",
		"password": "supersecret",
	})

	suite.Require().Equal(http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.User{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *UserHandlerTestSuite) TestCreateUser_WithInitialRole() {
	role := suite.createTestRole("admin")

	w := suite.request("POST", "/api/users", gin.H{
		"username": "roleduser",
		"email":    "roled@example.com",
		"password": "supersecret",
		"role_id":  role.ID,
	})

	suite.Require().Equal(http.StatusCreated, w.Code)

	var response dto.UserDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Roles, 1)
	assert.Equal(suite.T(), role.ID, response.Roles[0].ID)
}

func (suite *UserHandlerTestSuite) TestCreateUser_MissingInitialRole() {
	w := suite.request("POST", "/api/users", gin.H{
		"username": "roleduser",
		"email":    "roled@example.com",
		"password": "supersecret",
		"role_id":  999,
	})

	suite.Require().Equal(http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.User{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *UserHandlerTestSuite) TestGetUser_NotFound() {
	w := suite.request("GET", "/api/users/999", nil)

	suite.Require().Equal(http.StatusNotFound, w.Code)
}

func (suite *UserHandlerTestSuite) TestUpdateUser_Partial() {
	user := suite.createTestUser("original1", "original@example.com")

	w := suite.request("PUT", fmt.Sprintf("/api/users/%d", user.ID), gin.H{
		"full_name": "Updated Name",
	})

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.UserDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "original1", response.Username)
	assert.Equal(suite.T(), "original@example.com", response.Email)
	assert.Equal(suite.T(), "Updated Name", response.FullName)
}

func (suite *UserHandlerTestSuite) TestUpdateUser_ExplicitNullClearsFullName() {
	user := &models.User{
		Username: "cleared1",
		Email:    "cleared@example.com",
		Password: "hashedpassword",
		FullName: "Soon Gone",
	}
	suite.Require().NoError(suite.db.Create(user).Error)

	w := suite.request("PUT", fmt.Sprintf("/api/users/%d", user.ID), gin.H{
		"full_name": nil,
	})

	suite.Require().Equal(http.StatusOK, w.Code)

	var stored models.User
	suite.Require().NoError(suite.db.First(&stored, user.ID).Error)
	assert.Empty(suite.T(), stored.FullName)
	assert.Equal(suite.T(), "cleared1", stored.Username)
}

func (suite *UserHandlerTestSuite) TestUpdateUser_AbsentFullNameIsKept() {
	user := &models.User{
		Username: "keeper1",
		Email:    "keeper@example.com",
		Password: "hashedpassword",
		FullName: "Keep Me",
	}
	suite.Require().NoError(suite.db.Create(user).Error)

	w := suite.request("PUT", fmt.Sprintf("/api/users/%d", user.ID), gin.H{
		"email": "keeper2@example.com",
	})

	suite.Require().Equal(http.StatusOK, w.Code)

	var stored models.User
	suite.Require().NoError(suite.db.First(&stored, user.ID).Error)
	assert.Equal(suite.T(), "Keep Me", stored.FullName)
	assert.Equal(suite.T(), "keeper2@example.com", stored.Email)
}

func (suite *UserHandlerTestSuite) TestDuplicateFromStore_MapsToConflict() {
	suite.createTestUser("existing1", "existing1@example.com")

	// A concurrent create can pass the service pre-check and still hit the
	// unique index; the translated store error must answer as a conflict.
	repo := repository.NewUserRepository(suite.db)
	err := repo.Create(&models.User{
		Username: "existing1",
		Email:    "other@example.com",
		Password: "hashedpassword",
	})
	suite.Require().ErrorIs(err, gorm.ErrDuplicatedKey)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondServiceError(c, fmt.Errorf("failed to create user: %w", err))

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "ALREADY_EXISTS")
}

func (suite *UserHandlerTestSuite) TestReplaceRoles_ReplacesEntireSet() {
	user := suite.createTestUser("assignee", "assignee@example.com")
	r1 := suite.createTestRole("admin")
	r2 := suite.createTestRole("editor")
	r3 := suite.createTestRole("viewer")

	w := suite.request("PUT", fmt.Sprintf("/api/users/%d/roles", user.ID), gin.H{
		"role_ids": []uint64{r1.ID, r2.ID},
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.UserDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.ElementsMatch(suite.T(), []uint64{r1.ID, r2.ID}, suite.roleIDsOf(response))

	// The second replace installs exactly the new set, never a union.
	w = suite.request("PUT", fmt.Sprintf("/api/users/%d/roles", user.ID), gin.H{
		"role_ids": []uint64{r3.ID},
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), []uint64{r3.ID}, suite.roleIDsOf(response))
}

func (suite *UserHandlerTestSuite) TestReplaceRoles_EmptyList() {
	user := suite.createTestUser("assignee", "assignee@example.com")
	role := suite.createTestRole("admin")
	suite.associate(user.ID, role.ID)

	w := suite.request("PUT", fmt.Sprintf("/api/users/%d/roles", user.ID), gin.H{
		"role_ids": []uint64{},
	})

	suite.Require().Equal(http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.UserRole{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *UserHandlerTestSuite) TestReplaceRoles_MissingRole() {
	user := suite.createTestUser("assignee", "assignee@example.com")
	r1 := suite.createTestRole("admin")
	suite.associate(user.ID, r1.ID)

	w := suite.request("PUT", fmt.Sprintf("/api/users/%d/roles", user.ID), gin.H{
		"role_ids": []uint64{r1.ID, 999},
	})

	suite.Require().Equal(http.StatusNotFound, w.Code)

	// Validation failed before any mutation, the edge set is untouched.
	var edges []models.UserRole
	suite.db.Where("user_id = ?", user.ID).Find(&edges)
	suite.Require().Len(edges, 1)
	assert.Equal(suite.T(), r1.ID, edges[0].RoleID)
}

func (suite *UserHandlerTestSuite) TestRemoveRoles_NotAssociatedIsNoOp() {
	user := suite.createTestUser("assignee", "assignee@example.com")
	r1 := suite.createTestRole("admin")
	r2 := suite.createTestRole("editor")
	suite.associate(user.ID, r1.ID)

	w := suite.request("DELETE", fmt.Sprintf("/api/users/%d/roles", user.ID), gin.H{
		"role_ids": []uint64{r2.ID},
	})

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.UserDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), []uint64{r1.ID}, suite.roleIDsOf(response))
}

func (suite *UserHandlerTestSuite) TestRemoveRoles_MissingRole() {
	user := suite.createTestUser("assignee", "assignee@example.com")
	r1 := suite.createTestRole("admin")
	suite.associate(user.ID, r1.ID)

	w := suite.request("DELETE", fmt.Sprintf("/api/users/%d/roles", user.ID), gin.H{
		"role_ids": []uint64{999},
	})

	suite.Require().Equal(http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.UserRole{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *UserHandlerTestSuite) TestDeleteUser_CascadesTasksAndEdges() {
	user := suite.createTestUser("owner", "owner@example.com")
	role := suite.createTestRole("admin")
	suite.associate(user.ID, role.ID)

	due := time.Now().Add(24 * time.Hour)
	for i := 0; i < 2; i++ {
		task := &models.Task{
			Title:   fmt.Sprintf("Owned task %d", i),
			Status:  models.TaskStatusPending,
			DueDate: due,
			UserID:  user.ID,
		}
		suite.Require().NoError(suite.db.Create(task).Error)
	}

	w := suite.request("DELETE", fmt.Sprintf("/api/users/%d", user.ID), nil)
	suite.Require().Equal(http.StatusNoContent, w.Code)

	var taskCount, edgeCount, roleCount int64
	suite.db.Model(&models.Task{}).Where("user_id = ?", user.ID).Count(&taskCount)
	suite.db.Model(&models.UserRole{}).Where("user_id = ?", user.ID).Count(&edgeCount)
	suite.db.Model(&models.Role{}).Count(&roleCount)

	assert.Equal(suite.T(), int64(0), taskCount)
	assert.Equal(suite.T(), int64(0), edgeCount)
	// Roles themselves survive the cascade.
	assert.Equal(suite.T(), int64(1), roleCount)
}

func (suite *UserHandlerTestSuite) TestDeleteUser_NotFound() {
	w := suite.request("DELETE", "/api/users/999", nil)

	suite.Require().Equal(http.StatusNotFound, w.Code)
}

func (suite *UserHandlerTestSuite) TestListUsers_ReturnsEveryUserOnce() {
	suite.createTestUser("usera", "a@example.com")
	suite.createTestUser("userb", "b@example.com")
	suite.createTestUser("userc", "c@example.com")

	w := suite.request("GET", "/api/users", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.UserListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Users, 3)

	seen := make(map[string]int)
	for _, user := range response.Users {
		seen[user.Username]++
	}
	assert.Equal(suite.T(), map[string]int{"usera": 1, "userb": 1, "userc": 1}, seen)
}

func (suite *UserHandlerTestSuite) TestListUsers_SortedDescending() {
	suite.createTestUser("alice", "alice@example.com")
	suite.createTestUser("carol", "carol@example.com")
	suite.createTestUser("bobby", "bobby@example.com")

	w := suite.request("GET", "/api/users?sort_by=username&order=desc", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.UserListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Users, 3)
	assert.Equal(suite.T(), "carol", response.Users[0].Username)
	assert.Equal(suite.T(), "bobby", response.Users[1].Username)
	assert.Equal(suite.T(), "alice", response.Users[2].Username)
}

func (suite *UserHandlerTestSuite) TestListUsers_InvalidSortField() {
	suite.createTestUser("alice", "alice@example.com")

	w := suite.request("GET", "/api/users?sort_by=password", nil)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "password")
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
