package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/noticeboard-service/internal/services"
	"github.com/campusboard/noticeboard-service/internal/utils"
)

type AssignmentHandler struct {
	BaseHandler
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(assignmentService services.AssignmentService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assignmentService: assignmentService,
	}
}

func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.assignmentService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "list assignments")
		return
	}

	c.JSON(http.StatusOK, assignments)
}

func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "get assignment")
		return
	}

	c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) GetAssignmentsByTeacher(c *gin.Context) {
	teacherID, ok := h.parseIDParam(c, "teacherId")
	if !ok {
		return
	}

	assignments, err := h.assignmentService.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		h.handleServiceError(c, err, "list assignments by teacher")
		return
	}

	c.JSON(http.StatusOK, assignments)
}

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req services.AssignmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	teacher, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return
	}

	h.LogRequest(c, "creating assignment", "title", req.Title, "teacher_id", teacher.ID)

	assignment, err := h.assignmentService.Create(c.Request.Context(), &req, teacher.ID)
	if err != nil {
		h.handleServiceError(c, err, "create assignment")
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return
	}

	h.LogRequest(c, "deleting assignment", "assignment_id", id, "actor_id", actor.ID)

	if err := h.assignmentService.Delete(c.Request.Context(), id, actor); err != nil {
		h.handleServiceError(c, err, "delete assignment")
		return
	}

	c.Status(http.StatusNoContent)
}
