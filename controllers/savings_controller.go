package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Chukwuemekamusic/money-saver-api/config"
	"github.com/Chukwuemekamusic/money-saver-api/services"

	"github.com/gin-gonic/gin"
)

func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Saving plan not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func planIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func CreateSavingPlan(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var input services.SavingPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := services.NewSavingsService(config.DB).CreatePlan(userID, input)
	if err != nil {
		writeServiceError(c, err, "Failed to create saving plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func GetSavingPlans(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	includeDeleted := c.Query("include_deleted") == "true"

	plans, total, err := services.NewSavingsService(config.DB).ListPlans(userID, skip, limit, includeDeleted)
	if err != nil {
		writeServiceError(c, err, "Failed to fetch saving plans")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plans":    plans,
		"total":    total,
		"page":     skip/limit + 1,
		"size":     limit,
		"has_next": int64(skip+limit) < total,
		"has_prev": skip > 0,
	})
}

func GetSavingPlan(c *gin.Context) {
	userID := c.MustGet("userID").(string)
	planID, ok := planIDParam(c, "id")
	if !ok {
		return
	}

	plan, err := services.NewSavingsService(config.DB).GetPlan(planID, userID)
	if err != nil {
		writeServiceError(c, err, "Failed to fetch saving plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func UpdateSavingPlan(c *gin.Context) {
	userID := c.MustGet("userID").(string)
	planID, ok := planIDParam(c, "id")
	if !ok {
		return
	}

	var input services.SavingPlanUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := services.NewSavingsService(config.DB).UpdatePlan(planID, userID, input)
	if err != nil {
		writeServiceError(c, err, "Failed to update saving plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func DeleteSavingPlan(c *gin.Context) {
	userID := c.MustGet("userID").(string)
	planID, ok := planIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewSavingsService(config.DB).DeletePlan(planID, userID); err != nil {
		writeServiceError(c, err, "Failed to delete saving plan")
		return
	}
	c.Status(http.StatusNoContent)
}

func UpdateWeeklyAmount(c *gin.Context) {
	userID := c.MustGet("userID").(string)
	weeklyAmountID, ok := planIDParam(c, "id")
	if !ok {
		return
	}

	var input services.WeeklyAmountUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	week, err := services.NewSavingsService(config.DB).UpdateWeeklyAmount(weeklyAmountID, userID, input)
	if err != nil {
		writeServiceError(c, err, "Failed to update weekly amount")
		return
	}
	c.JSON(http.StatusOK, week)
}

// SelectWeeklyAmount is the quick select/deselect endpoint; ranking and
// the plan total follow from the selection change.
func SelectWeeklyAmount(c *gin.Context) {
	userID := c.MustGet("userID").(string)
	weeklyAmountID, ok := planIDParam(c, "id")
	if !ok {
		return
	}

	var body struct {
		Selected *bool `json:"selected" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	week, err := services.NewSavingsService(config.DB).UpdateWeeklyAmount(weeklyAmountID, userID, services.WeeklyAmountUpdateInput{
		Selected: body.Selected,
	})
	if err != nil {
		writeServiceError(c, err, "Failed to update weekly amount selection")
		return
	}
	c.JSON(http.StatusOK, week)
}

func GetSavingsStats(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	stats, err := services.NewSavingsService(config.DB).GetStats(userID)
	if err != nil {
		writeServiceError(c, err, "Failed to fetch savings statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func GetPlanScheduleStatus(c *gin.Context) {
	userID := c.MustGet("userID").(string)
	planID, ok := planIDParam(c, "id")
	if !ok {
		return
	}

	status, err := services.NewSavingsService(config.DB).GetScheduleStatus(planID, userID)
	if err != nil {
		writeServiceError(c, err, "Failed to fetch plan schedule status")
		return
	}
	c.JSON(http.StatusOK, status)
}
