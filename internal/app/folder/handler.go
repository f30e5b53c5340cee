package folder

import (
	"errors"
	"net/http"
	"strconv"

	"backend/internal/apperrors"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	ListFolders(c *gin.Context)
	CreateFolder(c *gin.Context)
	UpdateFolder(c *gin.Context)
	DeleteFolder(c *gin.Context)
	ListFiles(c *gin.Context)
	AttachFile(c *gin.Context)
	DetachFile(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List folders
// @Description List document folders, optionally scoped to a project
// @Tags Folder
// @Produce json
// @Param project_id query int false "Project ID"
// @Success 200 {object} FolderListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/folders [get]
func (h *handler) ListFolders(c *gin.Context) {
	var projectID *uint64
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id"})
			return
		}
		projectID = &id
	}

	folders, err := h.service.ListFolders(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, FolderListResponse{Folders: folders})
}

// @Summary Create folder
// @Tags Folder
// @Accept json
// @Produce json
// @Param request body CreateFolderRequest true "Folder"
// @Success 201 {object} Folder
// @Failure 400 {object} ErrorResponse
// @Router /api/folders [post]
func (h *handler) CreateFolder(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "user identity required"})
		return
	}

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name required"})
		return
	}

	f, err := h.service.CreateFolder(c.Request.Context(), &req, actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, f)
}

// @Summary Update folder
// @Tags Folder
// @Accept json
// @Produce json
// @Param id path int true "Folder ID"
// @Param request body UpdateFolderRequest true "Changes"
// @Success 200 {object} Folder
// @Failure 404 {object} ErrorResponse
// @Router /api/folders/{id} [patch]
func (h *handler) UpdateFolder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid folder id"})
		return
	}

	var req UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	f, err := h.service.UpdateFolder(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrFolderNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, f)
}

// @Summary Delete folder
// @Description Delete a folder. Fails with 409 while it still contains files.
// @Tags Folder
// @Produce json
// @Param id path int true "Folder ID"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Router /api/folders/{id} [delete]
func (h *handler) DeleteFolder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid folder id"})
		return
	}

	if err := h.service.DeleteFolder(c.Request.Context(), id); err != nil {
		var repoErr *apperrors.RepositoryError
		if errors.As(err, &repoErr) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List folder files
// @Description List a folder's documents with author names and file sizes
// @Tags Folder
// @Produce json
// @Param id path int true "Folder ID"
// @Success 200 {object} DocumentListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/folders/{id}/files [get]
func (h *handler) ListFiles(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid folder id"})
		return
	}

	docs, err := h.service.ListByFolder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, DocumentListResponse{Documents: docs})
}

// @Summary Attach file
// @Tags Folder
// @Accept json
// @Produce json
// @Param id path int true "Folder ID"
// @Param request body AttachFileRequest true "Attachment"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/folders/{id}/files [post]
func (h *handler) AttachFile(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "user identity required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid folder id"})
		return
	}

	var req AttachFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "attachment_id required"})
		return
	}

	if err := h.service.Attach(c.Request.Context(), id, req.AttachmentID, actor); err != nil {
		if errors.Is(err, apperrors.ErrFolderNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Detach file
// @Tags Folder
// @Produce json
// @Param id path int true "Folder ID"
// @Param attachmentId path int true "Attachment ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/folders/{id}/files/{attachmentId} [delete]
func (h *handler) DetachFile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid folder id"})
		return
	}

	attID, err := strconv.ParseUint(c.Param("attachmentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attachment id"})
		return
	}

	if err := h.service.Detach(c.Request.Context(), id, attID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
