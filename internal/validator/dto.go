package validator

import (
	"github.com/campusboard/noticeboard-service/internal/models"
)

// RegisterRequest covers self-service registration and admin user creation.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Role     string `json:"role" validate:"omitempty,role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserUpdateRequest is a partial update; nil fields are left untouched.
type UserUpdateRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Password *string `json:"password" validate:"omitempty,min=6,max=128"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Role     *string `json:"role" validate:"omitempty,role"`
}

type AnnouncementCreateRequest struct {
	Title     string  `json:"title" validate:"required,min=1,max=200"`
	Content   string  `json:"content" validate:"required,min=1"`
	Important bool    `json:"important"`
	Category  *string `json:"category" validate:"omitempty,max=100"`
	Audience  *string `json:"audience" validate:"omitempty,max=100"`
}

type AssignmentCreateRequest struct {
	Title       string           `json:"title" validate:"required,min=1,max=200"`
	Description string           `json:"description" validate:"required,min=1"`
	DueDate     models.Timestamp `json:"dueDate" validate:"required"`
	ClassID     *string          `json:"classId" validate:"omitempty,max=100"`
	Status      string           `json:"status" validate:"omitempty,assignment_status"`
}

// MaterialCreateRequest arrives as multipart form fields; FileURL is filled
// in by the upload handler before validation runs.
type MaterialCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"required,min=1"`
	FileURL     string  `json:"fileUrl" validate:"required,min=1"`
	ClassID     *string `json:"classId" validate:"omitempty,max=100"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
}

type EventCreateRequest struct {
	Title       string           `json:"title" validate:"required,min=1,max=200"`
	Description string           `json:"description" validate:"required,min=1"`
	StartDate   models.Timestamp `json:"startDate" validate:"required"`
	EndDate     models.Timestamp `json:"endDate" validate:"required"`
	Location    *string          `json:"location" validate:"omitempty,max=200"`
	Important   bool             `json:"important"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
}
