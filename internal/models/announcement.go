package models

import "time"

type Announcement struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null;size:200"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;<-:create"`
	AuthorID  uint      `json:"authorId" gorm:"not null;index"`
	Important bool      `json:"important" gorm:"not null;default:false"`
	Category  *string   `json:"category" gorm:"size:100"`
	Audience  *string   `json:"audience" gorm:"size:100"`
}

func (Announcement) TableName() string {
	return "announcements"
}
