package model

import (
	"time"

	"gorm.io/datatypes"
)

type SessionTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type KeuzehulpSession struct {
	Id            string                                `gorm:"type:varchar(64);primaryKey"`
	Authenticated bool                                  `gorm:"not null;default:false"`
	Messages      datatypes.JSONSlice[SessionTurn]      `gorm:"type:jsonb"`
	Preferences   datatypes.JSONType[map[string]string] `gorm:"type:jsonb"`
	QuestionIndex int                                   `gorm:"not null;default:0"`
	Answers       datatypes.JSONSlice[string]           `gorm:"type:jsonb"`
	ExpiresAt     time.Time                             `gorm:"not null;index"`
	CreatedAt     time.Time                             `gorm:"autoCreateTime"`
	UpdatedAt     time.Time                             `gorm:"autoUpdateTime"`
}

func (KeuzehulpSession) TableName() string {
	return "keuzehulp_sessions"
}
