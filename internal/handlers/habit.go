package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/habitrail/habit-tracker-api/internal/errors"
	"github.com/habitrail/habit-tracker-api/internal/middleware"
	"github.com/habitrail/habit-tracker-api/internal/services"
)

// HabitHandler coordinates habit CRUD and ordering HTTP handlers.
type HabitHandler struct {
	habitService *services.HabitService
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(habitService *services.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

// CreateHabit registers a habit for the authenticated user.
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateHabitRequest struct {
		Name   string `json:"name" binding:"required"`
		UserID uint64 `json:"userId"`
	}

	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Valid habit name is required")
		return
	}

	// A client may echo its own user id; it must match the token.
	if req.UserID != 0 && req.UserID != userID {
		apierrors.Forbidden(c, "")
		return
	}

	result, err := h.habitService.Create(userID, req.Name)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          result.Habit.ID,
		"reactivated": result.Reactivated,
	})
}

// RenameHabit updates a habit's display name.
func (h *HabitHandler) RenameHabit(c *gin.Context) {
	userID, habitID, ok := pathIDs(c)
	if !ok {
		return
	}

	type RenameRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Valid habit name is required")
		return
	}

	habit, err := h.habitService.Rename(userID, habitID, req.Name)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   habit.ID,
		"name": habit.Name,
	})
}

// ReorderHabits applies a batch of priority/name updates for the user.
func (h *HabitHandler) ReorderHabits(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ReorderRequest struct {
		Habits []services.ReorderEntry `json:"habits" binding:"required"`
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.habitService.BulkReorder(userID, req.Habits)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteHabit soft-deletes a habit and compacts the remaining ordering.
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	userID, habitID, ok := pathIDs(c)
	if !ok {
		return
	}

	habit, err := h.habitService.Delete(userID, habitID)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habit deleted successfully",
		"habitId": habit.ID,
	})
}

// pathIDs extracts the user and habit ids from the route parameters. It
// writes the error response itself when parsing fails.
func pathIDs(c *gin.Context) (userID, habitID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}

	habitID, err := strconv.ParseUint(c.Param("habitId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid habit id")
		return 0, 0, false
	}

	return userID, habitID, true
}

func respondHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHabitNotFound):
		apierrors.NotFound(c, "Habit not found or doesn't belong to this user")
	case errors.Is(err, services.ErrHabitAlreadyExists):
		apierrors.Conflict(c, "This habit already exists for this user")
	case errors.Is(err, services.ErrHabitNameRequired),
		errors.Is(err, services.ErrNoEntriesProvided):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidDate):
		apierrors.InvalidDate(c, "")
	case errors.Is(err, services.ErrInvalidRange):
		apierrors.InvalidRange(c, "")
	default:
		apierrors.InternalError(c, "")
	}
}
