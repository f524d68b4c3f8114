package models

import (
	"time"

	"gorm.io/datatypes"
)

// Session is the server-side record behind a session cookie. Rows live in
// the relational store when the gorm-backed session backend is selected;
// the redis and in-memory backends persist the same shape elsewhere.
type Session struct {
	Token     string         `json:"token" gorm:"primaryKey;size:100"`
	UserID    uint           `json:"userId" gorm:"not null;index"`
	CreatedAt time.Time      `json:"createdAt" gorm:"not null"`
	ExpiresAt time.Time      `json:"expiresAt" gorm:"not null;index"`
	Data      datatypes.JSON `json:"data"`
}

func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
