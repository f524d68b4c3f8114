package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/noticeboard-service/internal/files"
	"github.com/campusboard/noticeboard-service/internal/services"
	"github.com/campusboard/noticeboard-service/internal/utils"
)

type MaterialHandler struct {
	BaseHandler
	materialService services.MaterialService
	fileStore       files.Store
}

func NewMaterialHandler(materialService services.MaterialService, fileStore files.Store, logger utils.Logger) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler:     NewBaseHandler(logger),
		materialService: materialService,
		fileStore:       fileStore,
	}
}

func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	materials, err := h.materialService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "list materials")
		return
	}

	c.JSON(http.StatusOK, materials)
}

func (h *MaterialHandler) GetMaterial(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	material, err := h.materialService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "get material")
		return
	}

	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) GetMaterialsByTeacher(c *gin.Context) {
	teacherID, ok := h.parseIDParam(c, "teacherId")
	if !ok {
		return
	}

	materials, err := h.materialService.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		h.handleServiceError(c, err, "list materials by teacher")
		return
	}

	c.JSON(http.StatusOK, materials)
}

// CreateMaterial accepts a multipart form with an optional "file" part.
// The file is stored before the row is written; if the write then fails
// the stored file is removed so no orphan survives a failed request.
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	teacher, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return
	}

	req := services.MaterialCreateRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		FileURL:     c.PostForm("fileUrl"),
	}
	if classID := c.PostForm("classId"); classID != "" {
		req.ClassID = &classID
	}
	if category := c.PostForm("category"); category != "" {
		req.Category = &category
	}

	savedURL := ""
	if fileHeader, err := c.FormFile("file"); err == nil {
		url, err := h.fileStore.Save(fileHeader)
		if err != nil {
			h.LogError(c, err, "failed to store uploaded file")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "failed to store uploaded file"})
			return
		}
		savedURL = url
		req.FileURL = url
	}

	h.LogRequest(c, "creating material", "title", req.Title, "teacher_id", teacher.ID)

	material, err := h.materialService.Create(c.Request.Context(), &req, teacher.ID)
	if err != nil {
		if savedURL != "" {
			if removeErr := h.fileStore.Remove(savedURL); removeErr != nil {
				h.LogError(c, removeErr, "failed to clean up uploaded file", "file_url", savedURL)
			}
		}
		h.handleServiceError(c, err, "create material")
		return
	}

	c.JSON(http.StatusCreated, material)
}

func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return
	}

	h.LogRequest(c, "deleting material", "material_id", id, "actor_id", actor.ID)

	if err := h.materialService.Delete(c.Request.Context(), id, actor); err != nil {
		h.handleServiceError(c, err, "delete material")
		return
	}

	c.Status(http.StatusNoContent)
}
