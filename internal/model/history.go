package model

import "time"

// HistoryTimeLayout - формат timestamp в ответах истории.
const HistoryTimeLayout = "2006-01-02 15:04:05"

// ChatHistory - запись диалога. Пользователь удаляет запись мягко (IsDeletedByUser),
// администратор - физически.
type ChatHistory struct {
	ID              int64      `gorm:"primaryKey"`
	UserID          int64      `gorm:"not null;index"`
	UserMessage     string     `gorm:"type:text;not null"`
	AIResponse      string     `gorm:"type:text;not null"`
	CollectionID    *int64     `gorm:"index"`
	CollectionName  string
	ModelID         *int64
	ModelName       string
	SourceDocuments string     `gorm:"type:text"` // JSON
	IsDeletedByUser bool       `gorm:"not null;default:false"`
	DeletedAt       *time.Time
	Timestamp       time.Time  `gorm:"autoCreateTime;index"`

	Username string `gorm:"->;-:migration"`
}

// All перечисляет модели для AutoMigrate в порядке зависимостей.
func All() []any {
	return []any{
		&Department{}, &Grade{}, &User{},
		&Collection{}, &CollectionFile{},
		&ModelConfig{}, &ModelAssignment{},
		&ChatHistory{},
	}
}
