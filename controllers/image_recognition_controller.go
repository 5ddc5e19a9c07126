package controllers

import (
	"io"
	"net/http"

	"calorie-tracker/services"

	"github.com/gin-gonic/gin"
)

// maxFoodImageBytes caps uploads before they reach the vision model.
const maxFoodImageBytes = 10 << 20

type ImageRecognitionController struct {
	Svc *services.VisionService
}

func NewImageRecognitionController(svc *services.VisionService) *ImageRecognitionController {
	return &ImageRecognitionController{Svc: svc}
}

func (h *ImageRecognitionController) Analyze(c *gin.Context) {
	if _, ok := userIDFromCtx(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxFoodImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxFoodImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	out, err := h.Svc.AnalyzeFoodImage(c.Request.Context(), data, contentType)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
