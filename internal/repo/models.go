package repo

import (
	"context"

	"PolicyDesk/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ModelRepository - конфигурации моделей и их назначения.
type ModelRepository interface {
	Models(ctx context.Context, ids []int64) ([]model.ModelConfig, error)
	ModelByID(ctx context.Context, id int64) (*model.ModelConfig, error)
	NameTaken(ctx context.Context, name string) (bool, error)
	CreateModel(ctx context.Context, m *model.ModelConfig) error
	SetStatus(ctx context.Context, id int64, status string) error
	AnyLoaded(ctx context.Context) (bool, error)

	// Assign создаёт назначение или обновляет is_default/assigned_by существующего.
	Assign(ctx context.Context, a *model.ModelAssignment) error
	// AssignedModelIDs - модели, назначенные пользователю напрямую, его подразделению или грейду.
	AssignedModelIDs(ctx context.Context, userID int64, departmentID, gradeID *int64) ([]int64, error)
}

type modelRepo struct {
	db *gorm.DB
}

func NewModelRepository(db *gorm.DB) ModelRepository {
	return &modelRepo{db: db}
}

func (r *modelRepo) Models(ctx context.Context, ids []int64) ([]model.ModelConfig, error) {
	q := r.db.WithContext(ctx)
	if ids != nil {
		if len(ids) == 0 {
			return []model.ModelConfig{}, nil
		}
		q = q.Where("id IN ?", ids)
	}
	var out []model.ModelConfig
	err := q.Order("id").Find(&out).Error
	return out, err
}

func (r *modelRepo) ModelByID(ctx context.Context, id int64) (*model.ModelConfig, error) {
	var m model.ModelConfig
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *modelRepo) NameTaken(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ModelConfig{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

func (r *modelRepo) CreateModel(ctx context.Context, m *model.ModelConfig) error {
	if m.Status == "" {
		m.Status = model.ModelNotLoaded
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *modelRepo) SetStatus(ctx context.Context, id int64, status string) error {
	tx := r.db.WithContext(ctx).Model(&model.ModelConfig{}).Where("id = ?", id).Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *modelRepo) AnyLoaded(ctx context.Context) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ModelConfig{}).Where("status = ?", model.ModelLoaded).Count(&n).Error
	return n > 0, err
}

func (r *modelRepo) Assign(ctx context.Context, a *model.ModelAssignment) error {
	return r.db.WithContext(ctx).Omit("Model").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "target_id"}, {Name: "model_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_default", "assigned_by"}),
	}).Create(a).Error
}

func (r *modelRepo) AssignedModelIDs(ctx context.Context, userID int64, departmentID, gradeID *int64) ([]int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ModelAssignment{}).
		Where("scope = ? AND target_id = ?", model.ScopeUser, userID)
	if departmentID != nil {
		q = q.Or("scope = ? AND target_id = ?", model.ScopeDepartment, *departmentID)
	}
	if gradeID != nil {
		q = q.Or("scope = ? AND target_id = ?", model.ScopeGrade, *gradeID)
	}
	ids := []int64{}
	err := q.Distinct().Order("model_id").Pluck("model_id", &ids).Error
	return ids, err
}
