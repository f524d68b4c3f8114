package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/noticeboard-service/internal/services"
	"github.com/campusboard/noticeboard-service/internal/utils"
)

type AnnouncementHandler struct {
	BaseHandler
	announcementService services.AnnouncementService
}

func NewAnnouncementHandler(announcementService services.AnnouncementService, logger utils.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler:         NewBaseHandler(logger),
		announcementService: announcementService,
	}
}

func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	announcements, err := h.announcementService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "list announcements")
		return
	}

	c.JSON(http.StatusOK, announcements)
}

func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	announcement, err := h.announcementService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "get announcement")
		return
	}

	c.JSON(http.StatusOK, announcement)
}

func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var req services.AnnouncementCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	author, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return
	}

	h.LogRequest(c, "creating announcement", "title", req.Title, "author_id", author.ID)

	announcement, err := h.announcementService.Create(c.Request.Context(), &req, author.ID)
	if err != nil {
		h.handleServiceError(c, err, "create announcement")
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "deleting announcement", "announcement_id", id)

	if err := h.announcementService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "delete announcement")
		return
	}

	c.Status(http.StatusNoContent)
}
