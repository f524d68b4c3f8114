package models

import "time"

type Material struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Description string    `json:"description" gorm:"not null;type:text"`
	FileURL     *string   `json:"fileUrl" gorm:"size:500"`
	UploadedAt  time.Time `json:"uploadedAt" gorm:"not null;<-:create"`
	TeacherID   uint      `json:"teacherId" gorm:"not null;index"`
	ClassID     *string   `json:"classId" gorm:"size:100"`
	Category    *string   `json:"category" gorm:"size:100"`
}

func (Material) TableName() string {
	return "materials"
}
