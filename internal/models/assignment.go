package models

import "time"

type AssignmentStatus string

const (
	AssignmentDraft    AssignmentStatus = "draft"
	AssignmentActive   AssignmentStatus = "active"
	AssignmentArchived AssignmentStatus = "archived"
)

// ParseAssignmentStatus maps a raw string onto the closed status set.
func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	switch AssignmentStatus(s) {
	case AssignmentDraft:
		return AssignmentDraft, nil
	case AssignmentActive:
		return AssignmentActive, nil
	case AssignmentArchived:
		return AssignmentArchived, nil
	}
	return "", &InvalidEnumError{Field: "status", Value: s}
}

type Assignment struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Title       string           `json:"title" gorm:"not null;size:200"`
	Description string           `json:"description" gorm:"not null;type:text"`
	DueDate     time.Time        `json:"dueDate" gorm:"not null"`
	CreatedAt   time.Time        `json:"createdAt" gorm:"not null;<-:create"`
	TeacherID   uint             `json:"teacherId" gorm:"not null;index"`
	ClassID     *string          `json:"classId" gorm:"size:100"`
	Status      AssignmentStatus `json:"status" gorm:"not null;default:active;size:20"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// InvalidEnumError reports a value outside a closed enum set.
type InvalidEnumError struct {
	Field string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return "invalid " + e.Field + " value " + e.Value
}
