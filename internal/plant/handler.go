package plant

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /plants
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	plants, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch plants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(plants),
		"plants": plants,
	})
}

// --------------------------------------------------
// GET /plants/presets
// --------------------------------------------------
func (h *Handler) Presets(c *gin.Context) {
	c.JSON(http.StatusOK, Presets())
}

// --------------------------------------------------
// POST /plants
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name            string      `json:"name"`
		Preset          string      `json:"preset"`
		Species         string      `json:"species"`
		Icon            string      `json:"icon"`
		IdealConditions *Conditions `json:"ideal_conditions"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := h.service.Create(c.Request.Context(), userID, CreateInput{
		Name:       req.Name,
		Preset:     req.Preset,
		Species:    req.Species,
		Icon:       req.Icon,
		Conditions: req.IdealConditions,
	})
	if err != nil {
		writeError(c, err, createHint)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// --------------------------------------------------
// GET /plants/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		writeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, p)
}

// --------------------------------------------------
// DELETE /plants/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		writeError(c, err, "")
		return
	}

	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// POST /plants/:id/photo
// --------------------------------------------------
func (h *Handler) UploadPhoto(c *gin.Context) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}
	defer file.Close()

	url, err := h.service.UploadPhoto(
		c.Request.Context(),
		c.GetString("userID"),
		c.Param("id"),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}

// --------------------------------------------------
// POST /plants/search
// --------------------------------------------------
func (h *Handler) Search(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.Search(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err, searchHint)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Hints shown when the ideal conditions fail validation.
const (
	createHint = "Revise as condições ideais."
	searchHint = "Tente outro nome."
)

func writeError(c *gin.Context, err error, validationHint string) {
	var rangeErr *RangeError

	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrMissingName),
		errors.Is(err, ErrUnknownPreset),
		errors.Is(err, ErrInvalidPhotoExt):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &rangeErr):
		body := gin.H{"error": err.Error(), "pair": rangeErr.Pair}
		if validationHint != "" {
			body["hint"] = validationHint
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.Is(err, ErrMissingSpecies):
		body := gin.H{"error": err.Error()}
		if validationHint != "" {
			body["hint"] = validationHint
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.Is(err, ErrMalformedPayload):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
			"hint":  "O serviço retornou dados inválidos. Tente novamente.",
		})
	case errors.Is(err, ErrServiceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "plant lookup service unavailable",
			"hint":  "Verifique sua conexão e tente novamente.",
		})
	case errors.Is(err, ErrPhotosDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
