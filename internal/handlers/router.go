package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/noticeboard-service/internal/auth"
	"github.com/campusboard/noticeboard-service/internal/files"
	"github.com/campusboard/noticeboard-service/internal/models"
	"github.com/campusboard/noticeboard-service/internal/services"
	"github.com/campusboard/noticeboard-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	userHandler         *UserHandler
	announcementHandler *AnnouncementHandler
	assignmentHandler   *AssignmentHandler
	materialHandler     *MaterialHandler
	eventHandler        *EventHandler
	sessionMW           *SessionAuthMiddleware
	fileDir             string
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessions *auth.Manager,
	fileStore files.Store,
	logger utils.Logger,
	secureCookie bool,
) *HandlerManager {
	sessionMW := NewSessionAuthMiddleware(sessions, serviceManager.User(), secureCookie)

	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), sessionMW, logger),
		userHandler:         NewUserHandler(serviceManager.User(), logger),
		announcementHandler: NewAnnouncementHandler(serviceManager.Announcement(), logger),
		assignmentHandler:   NewAssignmentHandler(serviceManager.Assignment(), logger),
		materialHandler:     NewMaterialHandler(serviceManager.Material(), fileStore, logger),
		eventHandler:        NewEventHandler(serviceManager.Event(), logger),
		sessionMW:           sessionMW,
		fileDir:             fileStore.Dir(),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Uploaded files are served publicly; the URLs are unguessable.
	router.Static(files.PublicPrefix, hm.fileDir)

	api := router.Group("/api")
	{
		api.POST("/register", hm.authHandler.Register)
		api.POST("/login", hm.authHandler.Login)
		api.POST("/logout", hm.authHandler.Logout)
		api.GET("/user", hm.sessionMW.AuthMiddleware(), hm.authHandler.CurrentUser)

		announcements := api.Group("/announcements")
		announcements.Use(hm.sessionMW.AuthMiddleware())
		{
			announcements.GET("", hm.announcementHandler.ListAnnouncements)
			announcements.GET("/:id", hm.announcementHandler.GetAnnouncement)
			announcements.POST("", hm.sessionMW.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.announcementHandler.CreateAnnouncement)
			announcements.DELETE("/:id", hm.sessionMW.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.announcementHandler.DeleteAnnouncement)
		}

		assignments := api.Group("/assignments")
		assignments.Use(hm.sessionMW.AuthMiddleware())
		{
			assignments.GET("", hm.assignmentHandler.ListAssignments)
			assignments.GET("/:id", hm.assignmentHandler.GetAssignment)
			assignments.GET("/teacher/:teacherId", hm.assignmentHandler.GetAssignmentsByTeacher)
			assignments.POST("", hm.sessionMW.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.assignmentHandler.CreateAssignment)
			assignments.DELETE("/:id", hm.sessionMW.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.assignmentHandler.DeleteAssignment)
		}

		materials := api.Group("/materials")
		materials.Use(hm.sessionMW.AuthMiddleware())
		{
			materials.GET("", hm.materialHandler.ListMaterials)
			materials.GET("/:id", hm.materialHandler.GetMaterial)
			materials.GET("/teacher/:teacherId", hm.materialHandler.GetMaterialsByTeacher)
			materials.POST("", hm.sessionMW.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.materialHandler.CreateMaterial)
			materials.DELETE("/:id", hm.sessionMW.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.materialHandler.DeleteMaterial)
		}

		calendar := api.Group("/events")
		calendar.Use(hm.sessionMW.AuthMiddleware())
		{
			calendar.GET("", hm.eventHandler.ListEvents)
			calendar.GET("/:id", hm.eventHandler.GetEvent)
			calendar.POST("", hm.sessionMW.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.eventHandler.CreateEvent)
			calendar.DELETE("/:id", hm.sessionMW.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.eventHandler.DeleteEvent)
		}

		users := api.Group("/users")
		users.Use(hm.sessionMW.AuthMiddleware(), hm.sessionMW.RequireRoleMiddleware(models.RoleAdmin))
		{
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/export", hm.userHandler.ExportUsers)
			users.POST("", hm.userHandler.CreateUser)
			users.PATCH("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "noticeboard-service",
		})
	})
}
