package service

import (
	"context"

	"PolicyDesk/internal/repo"

	"gorm.io/gorm"
)

// Readiness - флаги /api/status.
type Readiness struct {
	DBReady     bool `json:"db_ready"`
	ModelLoaded bool `json:"model_loaded"`
	Ready       bool `json:"ready"`
}

// StatusService проверяет базу и наличие загруженной модели.
type StatusService struct {
	db     *gorm.DB
	models repo.ModelRepository
}

func NewStatusService(db *gorm.DB, models repo.ModelRepository) *StatusService {
	return &StatusService{db: db, models: models}
}

// Check никогда не возвращает ошибку: недоступность отражается во флагах.
func (s *StatusService) Check(ctx context.Context) Readiness {
	var r Readiness
	if sqlDB, err := s.db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
		r.DBReady = true
	}
	if r.DBReady {
		r.ModelLoaded, _ = s.models.AnyLoaded(ctx)
	}
	r.Ready = r.DBReady && r.ModelLoaded
	return r
}
