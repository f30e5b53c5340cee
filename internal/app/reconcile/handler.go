package reconcile

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"backend/internal/app/link"
	"backend/internal/apperrors"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	ListAttachments(c *gin.Context)
	SubmitAttachments(c *gin.Context)
	PurgeAttachments(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger}
}

type listResponse struct {
	Files []RemoteFile `json:"files"`
}

type submitResponse struct {
	Files []RemoteFile `json:"files"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// @Summary List parent attachments
// @Description List attachments linked to a parent entity
// @Tags Reconcile
// @Produce json
// @Param kind path string true "Parent kind" Enums(claims, tickets, letters, court-cases, units)
// @Param id path int true "Parent ID"
// @Success 200 {object} listResponse
// @Failure 400 {object} errorResponse
// @Router /api/parents/{kind}/{id}/attachments [get]
func (h *handler) ListAttachments(c *gin.Context) {
	kind, parentID, ok := h.parentParams(c)
	if !ok {
		return
	}

	remote, err := h.service.Load(c.Request.Context(), kind, parentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, listResponse{Files: remote})
}

// @Summary Submit attachment changes
// @Description Apply one edit session's attachment additions, removals and type changes
// @Tags Reconcile
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "Parent kind" Enums(claims, tickets, letters, court-cases, units)
// @Param id path int true "Parent ID"
// @Param files formData file false "New files"
// @Param type_ids formData string false "Comma-separated type ids parallel to files; empty entry for none"
// @Param removed_ids formData string false "Comma-separated attachment ids to remove"
// @Param changed_types formData string false "JSON map of attachment id to new type id"
// @Success 200 {object} submitResponse
// @Failure 400 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /api/parents/{kind}/{id}/attachments [post]
func (h *handler) SubmitAttachments(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user identity required"})
		return
	}

	kind, parentID, ok := h.parentParams(c)
	if !ok {
		return
	}

	remote, err := h.service.Load(c.Request.Context(), kind, parentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	ws := NewWorkingSet(remote)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "failed to parse form"})
		return
	}

	typeIDs := splitTypeIDs(formValue(form.Value, "type_ids"))
	files := form.File["files"]
	for i, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "failed to open " + fileHeader.Filename})
			return
		}
		defer src.Close()

		var typeID *uint64
		if i < len(typeIDs) {
			typeID = typeIDs[i]
		}
		ws.QueueFile(NewFile{
			Name:     fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
			TypeID:   typeID,
			Content:  src,
		})
	}

	for _, raw := range strings.Split(formValue(form.Value, "removed_ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid removed_ids"})
			return
		}
		ws.MarkRemoved(id)
	}

	if raw := formValue(form.Value, "changed_types"); raw != "" {
		var changed map[string]uint64
		if err := json.Unmarshal([]byte(raw), &changed); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid changed_types"})
			return
		}
		for idStr, typeID := range changed {
			id, err := strconv.ParseUint(idStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid changed_types"})
				return
			}
			ws.SetType(id, typeID)
		}
	}

	result, err := h.service.Submit(c.Request.Context(), kind, parentID, ws, actor)
	if err != nil {
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("Attachment submit failed",
			zap.String("kind", kind.Name),
			zap.Uint64("parent_id", parentID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	ws.MarkPersisted(result.Created)
	c.JSON(http.StatusOK, submitResponse{Files: ws.Remote})
}

// @Summary Purge parent attachments
// @Description Remove every attachment of a parent, used when the parent entity is deleted
// @Tags Reconcile
// @Produce json
// @Param kind path string true "Parent kind" Enums(claims, tickets, letters, court-cases, units)
// @Param id path int true "Parent ID"
// @Success 204
// @Failure 400 {object} errorResponse
// @Router /api/parents/{kind}/{id}/attachments [delete]
func (h *handler) PurgeAttachments(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user identity required"})
		return
	}

	kind, parentID, ok := h.parentParams(c)
	if !ok {
		return
	}

	if err := h.service.Purge(c.Request.Context(), kind, parentID); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) parentParams(c *gin.Context) (link.Kind, uint64, bool) {
	kind, ok := link.KindByName(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown parent kind"})
		return link.Kind{}, 0, false
	}

	parentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid parent id"})
		return link.Kind{}, 0, false
	}
	return kind, parentID, true
}

func formValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

// splitTypeIDs parses the comma-separated type_ids field; an empty entry
// yields nil for the file at that position.
func splitTypeIDs(raw string) []*uint64 {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]*uint64, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if id, err := strconv.ParseUint(p, 10, 64); err == nil {
			out[i] = &id
		}
	}
	return out
}
