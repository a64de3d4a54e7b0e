package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/habitrail/habit-tracker-api/internal/models"
	"github.com/habitrail/habit-tracker-api/internal/repository"
	"github.com/habitrail/habit-tracker-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// HabitHandlerTestSuite defines the test suite for HabitHandler
type HabitHandlerTestSuite struct {
	suite.Suite
	db           *gorm.DB
	handler      *HabitHandler
	habitService *services.HabitService
}

// SetupTest runs before each test
func (suite *HabitHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Habit{},
		&models.ActivityLog{},
	)
	suite.Require().NoError(err)

	suite.habitService = services.NewHabitService(repository.NewHabitRepository(suite.db))
	suite.handler = NewHabitHandler(suite.habitService)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *HabitHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *HabitHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *HabitHandlerTestSuite) createTestHabit(userID uint64, name string) *models.Habit {
	result, err := suite.habitService.Create(userID, name)
	suite.Require().NoError(err)
	return result.Habit
}

// Helper function to create authenticated context
func (suite *HabitHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

func setHabitParam(c *gin.Context, habitID uint64) {
	c.Params = gin.Params{{Key: "habitId", Value: strconv.FormatUint(habitID, 10)}}
}

// TestCreateHabit_Success tests successful habit creation
func (suite *HabitHandlerTestSuite) TestCreateHabit_Success() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{"name": "read"})
	c, w := suite.createAuthContext("POST", "/habits", body, user.ID)

	suite.handler.CreateHabit(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), response, "id")
	assert.Equal(suite.T(), false, response["reactivated"])
}

// TestCreateHabit_ReactivatedFlag tests recreating a soft-deleted habit
func (suite *HabitHandlerTestSuite) TestCreateHabit_ReactivatedFlag() {
	user := suite.createTestUser("alice")
	habit := suite.createTestHabit(user.ID, "read")

	_, err := suite.habitService.Delete(user.ID, habit.ID)
	suite.Require().NoError(err)

	body, _ := json.Marshal(map[string]interface{}{"name": "read"})
	c, w := suite.createAuthContext("POST", "/habits", body, user.ID)

	suite.handler.CreateHabit(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), true, response["reactivated"])
}

// TestCreateHabit_Duplicate tests creating a habit that already exists
func (suite *HabitHandlerTestSuite) TestCreateHabit_Duplicate() {
	user := suite.createTestUser("alice")
	suite.createTestHabit(user.ID, "read")

	body, _ := json.Marshal(map[string]interface{}{"name": "read"})
	c, w := suite.createAuthContext("POST", "/habits", body, user.ID)

	suite.handler.CreateHabit(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestCreateHabit_MissingName tests creation without a name
func (suite *HabitHandlerTestSuite) TestCreateHabit_MissingName() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{})
	c, w := suite.createAuthContext("POST", "/habits", body, user.ID)

	suite.handler.CreateHabit(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateHabit_BodyUserMismatch tests a body user id that contradicts the token
func (suite *HabitHandlerTestSuite) TestCreateHabit_BodyUserMismatch() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{"name": "read", "userId": user.ID + 1})
	c, w := suite.createAuthContext("POST", "/habits", body, user.ID)

	suite.handler.CreateHabit(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestCreateHabit_Unauthorized tests creation without authentication
func (suite *HabitHandlerTestSuite) TestCreateHabit_Unauthorized() {
	body, _ := json.Marshal(map[string]interface{}{"name": "read"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/habits", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	suite.handler.CreateHabit(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestRenameHabit_Success tests renaming a habit
func (suite *HabitHandlerTestSuite) TestRenameHabit_Success() {
	user := suite.createTestUser("alice")
	habit := suite.createTestHabit(user.ID, "read")

	body, _ := json.Marshal(map[string]interface{}{"name": "read more"})
	c, w := suite.createAuthContext("PUT", "/habits/1/1", body, user.ID)
	setHabitParam(c, habit.ID)

	suite.handler.RenameHabit(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "read more", response["name"])
}

// TestRenameHabit_NotFound tests renaming a habit that doesn't exist
func (suite *HabitHandlerTestSuite) TestRenameHabit_NotFound() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{"name": "read more"})
	c, w := suite.createAuthContext("PUT", "/habits/1/999", body, user.ID)
	setHabitParam(c, 999)

	suite.handler.RenameHabit(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestRenameHabit_InvalidID tests a non-numeric habit id
func (suite *HabitHandlerTestSuite) TestRenameHabit_InvalidID() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{"name": "read more"})
	c, w := suite.createAuthContext("PUT", "/habits/1/abc", body, user.ID)
	c.Params = gin.Params{{Key: "habitId", Value: "abc"}}

	suite.handler.RenameHabit(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestReorderHabits_Success tests a priority swap
func (suite *HabitHandlerTestSuite) TestReorderHabits_Success() {
	user := suite.createTestUser("alice")
	first := suite.createTestHabit(user.ID, "read")
	second := suite.createTestHabit(user.ID, "run")

	body, _ := json.Marshal(map[string]interface{}{
		"habits": []map[string]interface{}{
			{"id": first.ID, "priority": 2},
			{"id": second.ID, "priority": 1},
		},
	})
	c, w := suite.createAuthContext("PUT", "/habits/1", body, user.ID)

	suite.handler.ReorderHabits(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), float64(2), response["matched"])
	assert.Equal(suite.T(), float64(2), response["modified"])
}

// TestReorderHabits_ReportsFailures tests per-entry failure reporting
func (suite *HabitHandlerTestSuite) TestReorderHabits_ReportsFailures() {
	user := suite.createTestUser("alice")
	habit := suite.createTestHabit(user.ID, "read")

	body, _ := json.Marshal(map[string]interface{}{
		"habits": []map[string]interface{}{
			{"id": habit.ID, "priority": 1},
			{"id": 999, "priority": 2},
		},
	})
	c, w := suite.createAuthContext("PUT", "/habits/1", body, user.ID)

	suite.handler.ReorderHabits(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	failures := response["failures"].([]interface{})
	assert.Len(suite.T(), failures, 1)
}

// TestReorderHabits_MissingBody tests reorder without a habits array
func (suite *HabitHandlerTestSuite) TestReorderHabits_MissingBody() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{})
	c, w := suite.createAuthContext("PUT", "/habits/1", body, user.ID)

	suite.handler.ReorderHabits(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestDeleteHabit_Success tests soft-deleting a habit
func (suite *HabitHandlerTestSuite) TestDeleteHabit_Success() {
	user := suite.createTestUser("alice")
	habit := suite.createTestHabit(user.ID, "read")

	c, w := suite.createAuthContext("DELETE", "/habits/1/1", nil, user.ID)
	setHabitParam(c, habit.ID)

	suite.handler.DeleteHabit(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Habit
	err := suite.db.First(&stored, habit.ID).Error
	suite.Require().NoError(err)
	assert.False(suite.T(), stored.Active)
}

// TestDeleteHabit_NotFound tests deleting a habit that doesn't exist
func (suite *HabitHandlerTestSuite) TestDeleteHabit_NotFound() {
	user := suite.createTestUser("alice")

	c, w := suite.createAuthContext("DELETE", "/habits/1/999", nil, user.ID)
	setHabitParam(c, 999)

	suite.handler.DeleteHabit(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestDeleteHabit_Repeated tests that a second delete reports not found
func (suite *HabitHandlerTestSuite) TestDeleteHabit_Repeated() {
	user := suite.createTestUser("alice")
	habit := suite.createTestHabit(user.ID, "read")

	c, w := suite.createAuthContext("DELETE", "/habits/1/1", nil, user.ID)
	setHabitParam(c, habit.ID)
	suite.handler.DeleteHabit(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	c, w = suite.createAuthContext("DELETE", "/habits/1/1", nil, user.ID)
	setHabitParam(c, habit.ID)
	suite.handler.DeleteHabit(c)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestHabitHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HabitHandlerTestSuite))
}
