package controllers

import (
	"net/http"
	"time"

	"calorie-tracker/services"

	"github.com/gin-gonic/gin"
)

type FavoriteMealController struct {
	Svc     *services.FavoriteMealService
	Metrics *services.MetricsService
	Hub     *services.RealtimeHub
}

func NewFavoriteMealController(svc *services.FavoriteMealService, metrics *services.MetricsService, hub *services.RealtimeHub) *FavoriteMealController {
	return &FavoriteMealController{Svc: svc, Metrics: metrics, Hub: hub}
}

func (h *FavoriteMealController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	out, err := h.Svc.List(userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type favoriteMealInput struct {
	Name        string                           `json:"name" binding:"required"`
	Description string                           `json:"description"`
	Items       []services.FavoriteMealItemInput `json:"items" binding:"required"`
}

func (h *FavoriteMealController) Create(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input favoriteMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Svc.Create(userID, input.Name, input.Description, input.Items)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *FavoriteMealController) Delete(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	mealID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := h.Svc.Delete(userID, mealID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite meal deleted"})
}

// Log expands the template into ledger entries for the given day.
func (h *FavoriteMealController) Log(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	mealID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	var input struct {
		Date *string `json:"date"`
	}
	// body is optional for this endpoint
	_ = c.ShouldBindJSON(&input)

	var date *time.Time
	if input.Date != nil && *input.Date != "" {
		t, err := time.Parse("2006-01-02", *input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		t = t.UTC()
		date = &t
	}

	out, err := h.Svc.Log(userID, mealID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if h.Hub != nil && len(out) > 0 {
		if daily, derr := h.Metrics.Daily(userID, out[0].CreatedAt); derr == nil {
			h.Hub.BroadcastProgress(userID, "entries", out[0].CreatedAt, daily)
		}
	}
	c.JSON(http.StatusCreated, out)
}
