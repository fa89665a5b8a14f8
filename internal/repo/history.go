package repo

import (
	"context"
	"time"

	"PolicyDesk/internal/model"

	"gorm.io/gorm"
)

// HistoryRepository - история диалогов.
type HistoryRepository interface {
	Append(ctx context.Context, h *model.ChatHistory) error
	// ForUser - записи пользователя без удалённых им самим, новые первыми.
	ForUser(ctx context.Context, userID int64, limit int) ([]model.ChatHistory, error)
	// All - все записи с именами пользователей, новые первыми.
	All(ctx context.Context, limit int) ([]model.ChatHistory, error)
	// HideForUser помечает запись удалённой пользователем.
	HideForUser(ctx context.Context, id, userID int64) error
	Delete(ctx context.Context, id int64) error
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Append(ctx context.Context, h *model.ChatHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *historyRepo) ForUser(ctx context.Context, userID int64, limit int) ([]model.ChatHistory, error) {
	var out []model.ChatHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted_by_user = ?", userID, false).
		Order("timestamp DESC, id DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *historyRepo) All(ctx context.Context, limit int) ([]model.ChatHistory, error) {
	var out []model.ChatHistory
	err := r.db.WithContext(ctx).Model(&model.ChatHistory{}).
		Select("chat_histories.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = chat_histories.user_id").
		Order("chat_histories.timestamp DESC, chat_histories.id DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *historyRepo) HideForUser(ctx context.Context, id, userID int64) error {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).Model(&model.ChatHistory{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"is_deleted_by_user": true, "deleted_at": &now})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *historyRepo) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&model.ChatHistory{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
