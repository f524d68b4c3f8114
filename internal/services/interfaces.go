package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/campusboard/noticeboard-service/internal/models"
	"github.com/campusboard/noticeboard-service/internal/validator"
)

// Request DTOs are shared with the validator package so binding tags and
// business rules live in one place.
type (
	RegisterRequest           = validator.RegisterRequest
	LoginRequest              = validator.LoginRequest
	UserUpdateRequest         = validator.UserUpdateRequest
	AnnouncementCreateRequest = validator.AnnouncementCreateRequest
	AssignmentCreateRequest   = validator.AssignmentCreateRequest
	MaterialCreateRequest     = validator.MaterialCreateRequest
	EventCreateRequest        = validator.EventCreateRequest
)

// AuthService handles registration and credential verification. Session
// issuance stays in the transport layer.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*models.User, error)
}

// UserService is the admin-facing account management surface.
type UserService interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Create(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Update(ctx context.Context, id uint, req *UserUpdateRequest) (*models.User, error)
	// Delete removes the user; actorID is the authenticated admin and
	// may never equal id.
	Delete(ctx context.Context, id uint, actorID uint) error
	// ExportRoster builds an xlsx workbook of all accounts.
	ExportRoster(ctx context.Context) (*excelize.File, error)
}

type AnnouncementService interface {
	List(ctx context.Context) ([]*models.Announcement, error)
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	Create(ctx context.Context, req *AnnouncementCreateRequest, authorID uint) (*models.Announcement, error)
	Delete(ctx context.Context, id uint) error
}

type AssignmentService interface {
	List(ctx context.Context) ([]*models.Assignment, error)
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Assignment, error)
	Create(ctx context.Context, req *AssignmentCreateRequest, teacherID uint) (*models.Assignment, error)
	// Delete enforces owner-or-admin on the stored row.
	Delete(ctx context.Context, id uint, actor *models.User) error
}

type MaterialService interface {
	List(ctx context.Context) ([]*models.Material, error)
	GetByID(ctx context.Context, id uint) (*models.Material, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Material, error)
	Create(ctx context.Context, req *MaterialCreateRequest, teacherID uint) (*models.Material, error)
	// Delete removes the row and best-effort unlinks the stored file.
	Delete(ctx context.Context, id uint, actor *models.User) error
}

type EventService interface {
	List(ctx context.Context) ([]*models.Event, error)
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	Create(ctx context.Context, req *EventCreateRequest, creatorID uint) (*models.Event, error)
	Delete(ctx context.Context, id uint) error
}

// ServiceManager wires the services over shared storage and owns their
// lifecycle.
type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Announcement() AnnouncementService
	Assignment() AssignmentService
	Material() MaterialService
	Event() EventService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
