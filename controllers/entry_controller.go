package controllers

import (
	"net/http"
	"time"

	"calorie-tracker/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type EntryController struct {
	Svc     *services.EntryService
	Metrics *services.MetricsService
	Hub     *services.RealtimeHub
}

func NewEntryController(svc *services.EntryService, metrics *services.MetricsService, hub *services.RealtimeHub) *EntryController {
	return &EntryController{Svc: svc, Metrics: metrics, Hub: hub}
}

// pushProgress recomputes the day's totals after a ledger write and fans
// them out to the user's open sockets. Best effort only.
func (h *EntryController) pushProgress(userID uint, date time.Time) {
	if h.Hub == nil {
		return
	}
	daily, err := h.Metrics.Daily(userID, date)
	if err != nil {
		return
	}
	h.Hub.BroadcastProgress(userID, "entries", date, daily)
}

func (h *EntryController) List(c *gin.Context) {
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
	var filter *time.Time
	if present {
		filter = &date
	}

	out, err := h.Svc.List(userID, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *EntryController) Get(c *gin.Context) {
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

	out, err := h.Svc.Get(userID, entryID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type entryCreateInput struct {
	FoodID uint            `json:"foodId" binding:"required"`
	Grams  decimal.Decimal `json:"grams" binding:"required"`
	Date   *string         `json:"date"`
}

func (h *EntryController) Create(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input entryCreateInput
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

	out, err := h.Svc.Create(userID, input.FoodID, input.Grams, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.pushProgress(userID, out.CreatedAt)
	c.JSON(http.StatusCreated, out)
}

type entryUpdateInput struct {
	FoodID uint            `json:"foodId" binding:"required"`
	Grams  decimal.Decimal `json:"grams" binding:"required"`
}

func (h *EntryController) Update(c *gin.Context) {
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

	var input entryUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Svc.Update(userID, entryID, input.FoodID, input.Grams)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.pushProgress(userID, out.CreatedAt)
	c.JSON(http.StatusOK, out)
}

func (h *EntryController) Delete(c *gin.Context) {
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

	entry, err := h.Svc.Get(userID, entryID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if err := h.Svc.Delete(userID, entryID); err != nil {
		writeServiceError(c, err)
		return
	}
	h.pushProgress(userID, entry.CreatedAt)
	c.Status(http.StatusNoContent)
}
