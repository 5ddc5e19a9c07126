package controllers

import (
	"net/http"
	"time"

	"calorie-tracker/services"

	"github.com/gin-gonic/gin"
)

type SuggestionController struct {
	Svc *services.SuggestionService
}

func NewSuggestionController(svc *services.SuggestionService) *SuggestionController {
	return &SuggestionController{Svc: svc}
}

func (h *SuggestionController) Get(c *gin.Context) {
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

	out, err := h.Svc.GetSuggestions(c.Request.Context(), userID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
