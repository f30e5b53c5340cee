package attachment

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"backend/internal/apperrors"
	"backend/internal/providers/minio"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	GetAttachments(c *gin.Context)
	GetDownloadURL(c *gin.Context)
	UpdateDescription(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Get attachments
// @Description Resolve a batch of attachment ids to metadata rows
// @Tags Attachment
// @Accept json
// @Produce json
// @Param ids query string true "Comma-separated attachment IDs"
// @Success 200 {object} AttachmentListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/attachments [get]
func (h *handler) GetAttachments(c *gin.Context) {
	ids, ok := parseIDList(c.Query("ids"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "ids must be a comma-separated list of numbers"})
		return
	}

	attachments, err := h.service.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, AttachmentListResponse{Attachments: attachments})
}

// @Summary Get download URL
// @Description Get a short-lived signed download URL for an attachment
// @Tags Attachment
// @Produce json
// @Param id path int true "Attachment ID"
// @Success 200 {object} SignedURLResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/attachments/{id}/url [get]
func (h *handler) GetDownloadURL(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attachment id"})
		return
	}

	url, err := h.service.DownloadURL(c.Request.Context(), id, minio.SignedURLTTL)
	if err != nil {
		if errors.Is(err, apperrors.ErrAttachmentNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SignedURLResponse{
		URL:       url,
		ExpiresIn: int(minio.SignedURLTTL.Seconds()),
	})
}

// @Summary Update description
// @Description Update an attachment's free-text description
// @Tags Attachment
// @Accept json
// @Produce json
// @Param id path int true "Attachment ID"
// @Param request body UpdateDescriptionRequest true "New description"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/attachments/{id} [patch]
func (h *handler) UpdateDescription(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attachment id"})
		return
	}

	var req UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "description required"})
		return
	}

	if err := h.service.UpdateDescription(c.Request.Context(), id, req.Description); err != nil {
		if errors.Is(err, apperrors.ErrAttachmentNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func parseIDList(raw string) ([]uint64, bool) {
	if strings.TrimSpace(raw) == "" {
		return []uint64{}, true
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
