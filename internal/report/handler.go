package report

import (
	"errors"
	"net/http"

	"caktus/internal/llm"
	"caktus/internal/plant"
	"caktus/internal/sensor"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /plants/:id/conditions
// --------------------------------------------------
func (h *Handler) Conditions(c *gin.Context) {
	snap, err := h.service.Conditions(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// --------------------------------------------------
// POST /plants/:id/report
// --------------------------------------------------
func (h *Handler) Generate(c *gin.Context) {
	rep, err := h.service.Generate(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, rep)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, plant.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, plant.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, sensor.ErrNoReading):
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
			"hint":  "Conecte um sensor para obter leituras.",
		})
	case errors.Is(err, llm.ErrUnavailable), errors.Is(err, ErrEmptyReport):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "report service unavailable",
			"hint":  "Não foi possível gerar o relatório. Tente novamente.",
			"retry": true,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
