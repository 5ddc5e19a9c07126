package controllers

import (
	"net/http"
	"time"

	"calorie-tracker/services"

	"github.com/gin-gonic/gin"
)

type MetricsController struct {
	Svc *services.MetricsService
}

func NewMetricsController(svc *services.MetricsService) *MetricsController {
	return &MetricsController{Svc: svc}
}

func (h *MetricsController) Daily(c *gin.Context) {
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

	out, err := h.Svc.Daily(userID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MetricsController) Range(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	from, present, err := dateQuery(c, "from")
	if err != nil || !present {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, present, err := dateQuery(c, "to")
	if err != nil || !present {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}

	out, err := h.Svc.Range(userID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
