package model

import "time"

// Collection - именованная группа загруженных документов.
type Collection struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex" json:"name"`
	StoragePath string    `gorm:"not null" json:"chroma_db_path"`
	CreatedBy   *int64    `json:"created_by,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Files []CollectionFile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// CollectionFile - файл коллекции с извлечённым текстом.
type CollectionFile struct {
	ID           int64     `gorm:"primaryKey"`
	CollectionID int64     `gorm:"not null;index;uniqueIndex:idx_collection_file"`
	Name         string    `gorm:"not null;uniqueIndex:idx_collection_file"`
	StoredPath   string    `gorm:"not null"`
	Content      string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}
