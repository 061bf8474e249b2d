package sensor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	manager *Manager
	repo    Repository
}

func NewHandler(manager *Manager, repo Repository) *Handler {
	return &Handler{manager: manager, repo: repo}
}

// --------------------------------------------------
// GET /devices
// --------------------------------------------------
func (h *Handler) Devices(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.State())
}

// --------------------------------------------------
// POST /devices/scan
// --------------------------------------------------
func (h *Handler) StartScan(c *gin.Context) {
	c.JSON(http.StatusAccepted, h.manager.StartScan())
}

// --------------------------------------------------
// POST /devices/scan/stop
// --------------------------------------------------
func (h *Handler) StopScan(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.StopScan())
}

// --------------------------------------------------
// POST /devices/:id/connect
// --------------------------------------------------
func (h *Handler) Connect(c *gin.Context) {
	err := h.manager.Connect(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrUnknownDevice) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
			"state": h.manager.State(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "failed to connect device",
			"state": h.manager.State(),
		})
		return
	}

	c.JSON(http.StatusOK, h.manager.State())
}

// --------------------------------------------------
// POST /devices/disconnect
// --------------------------------------------------
func (h *Handler) Disconnect(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.Disconnect())
}

// --------------------------------------------------
// GET /readings/latest
// --------------------------------------------------
func (h *Handler) Latest(c *gin.Context) {
	r, err := h.manager.Latest(c.Request.Context())
	if errors.Is(err, ErrNoReading) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reading"})
		return
	}

	c.JSON(http.StatusOK, r)
}

// --------------------------------------------------
// GET /readings?limit=N
// --------------------------------------------------
func (h *Handler) History(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > memoryHistorySize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}
		limit = n
	}

	readings, err := h.repo.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch readings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}
