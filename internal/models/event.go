package models

import "time"

type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Description string    `json:"description" gorm:"not null;type:text"`
	StartDate   time.Time `json:"startDate" gorm:"not null"`
	EndDate     time.Time `json:"endDate" gorm:"not null"`
	Location    *string   `json:"location" gorm:"size:200"`
	CreatedBy   uint      `json:"createdBy" gorm:"not null;index"`
	Important   bool      `json:"important" gorm:"not null;default:false"`
	Category    *string   `json:"category" gorm:"size:100"`
}

func (Event) TableName() string {
	return "events"
}
