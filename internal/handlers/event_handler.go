package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/noticeboard-service/internal/services"
	"github.com/campusboard/noticeboard-service/internal/utils"
)

type EventHandler struct {
	BaseHandler
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService, logger utils.Logger) *EventHandler {
	return &EventHandler{
		BaseHandler:  NewBaseHandler(logger),
		eventService: eventService,
	}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "list events")
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "get event")
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req services.EventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	creator, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return
	}

	h.LogRequest(c, "creating event", "title", req.Title, "creator_id", creator.ID)

	event, err := h.eventService.Create(c.Request.Context(), &req, creator.ID)
	if err != nil {
		h.handleServiceError(c, err, "create event")
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "deleting event", "event_id", id)

	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "delete event")
		return
	}

	c.Status(http.StatusNoContent)
}
