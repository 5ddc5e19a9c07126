package controllers

import (
	"net/http"
	"time"

	"calorie-tracker/services"

	"github.com/gin-gonic/gin"
)

type WaterController struct {
	Svc *services.WaterService
	Hub *services.RealtimeHub
}

func NewWaterController(svc *services.WaterService, hub *services.RealtimeHub) *WaterController {
	return &WaterController{Svc: svc, Hub: hub}
}

func (h *WaterController) pushProgress(userID uint, date time.Time) {
	if h.Hub == nil {
		return
	}
	h.Hub.BroadcastProgress(userID, "water", date, nil)
}

func (h *WaterController) Summary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date, present, err := dateQuery(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	if !present {
		date = time.Now().UTC()
	}

	out, err := h.Svc.Summary(userID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type waterLogInput struct {
	Milliliters int     `json:"milliliters" binding:"required"`
	Date        *string `json:"date"`
}

func (h *WaterController) Log(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input waterLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

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

	out, err := h.Svc.Log(userID, input.Milliliters, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.pushProgress(userID, out.Date)
	c.JSON(http.StatusCreated, out)
}

func (h *WaterController) Delete(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	entryID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	// resolve the entry's day first so backdated deletes notify the right one
	entry, err := h.Svc.Get(userID, entryID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if err := h.Svc.Delete(userID, entryID); err != nil {
		writeServiceError(c, err)
		return
	}
	h.pushProgress(userID, entry.Date)
	c.JSON(http.StatusOK, gin.H{"message": "Water entry deleted"})
}
