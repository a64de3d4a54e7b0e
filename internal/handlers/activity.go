package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitrail/habit-tracker-api/internal/dto"
	apierrors "github.com/habitrail/habit-tracker-api/internal/errors"
	"github.com/habitrail/habit-tracker-api/internal/middleware"
	"github.com/habitrail/habit-tracker-api/internal/services"
)

// ActivityHandler serves the day view, completion toggling, and summaries.
type ActivityHandler struct {
	activityService *services.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// ListHabits returns the user's active habits with completion state for the
// requested day, ordered by priority.
func (h *ActivityHandler) ListHabits(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	statuses, err := h.activityService.ListForDay(userID, c.Query("date"))
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitListResponse(statuses))
}

// ToggleHabit sets the completion state of one habit for one day.
func (h *ActivityHandler) ToggleHabit(c *gin.Context) {
	userID, habitID, ok := pathIDs(c)
	if !ok {
		return
	}

	type ToggleRequest struct {
		Date   string `json:"date" binding:"required"`
		IsDone bool   `json:"isDone"`
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.activityService.Toggle(userID, habitID, req.Date, req.IsDone)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id": habit.ID,
	})
}

// Summary returns per-day totals and completions for an inclusive date range.
func (h *ActivityHandler) Summary(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	summaries, err := h.activityService.Summary(userID, c.Query("start"), c.Query("end"))
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summaries))
}
