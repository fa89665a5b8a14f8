package service

import (
	"context"
	"errors"

	"PolicyDesk/internal/model"
	"PolicyDesk/internal/repo"
)

// access определяет, какие модели и коллекции видит пользователь.
type access struct {
	dir    repo.DirectoryRepository
	models repo.ModelRepository
}

// user возвращает активного пользователя; ok=false, если его нет.
func (a access) user(ctx context.Context, id int64) (*model.User, bool, error) {
	u, err := a.dir.UserByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// modelIDs - назначенные пользователю модели; nil для администратора (все модели).
func (a access) modelIDs(ctx context.Context, u *model.User) ([]int64, error) {
	if u.Role == model.RoleAdmin {
		return nil, nil
	}
	return a.models.AssignedModelIDs(ctx, u.ID, u.DepartmentID, u.GradeID)
}

// collectionIDs - коллекции назначенных моделей; nil для администратора.
func (a access) collectionIDs(ctx context.Context, u *model.User) ([]int64, error) {
	ids, err := a.modelIDs(ctx, u)
	if err != nil || ids == nil {
		return nil, err
	}
	models, err := a.models.Models(ctx, ids)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]bool)
	out := []int64{}
	for _, m := range models {
		if m.CollectionID != nil && !seen[*m.CollectionID] {
			seen[*m.CollectionID] = true
			out = append(out, *m.CollectionID)
		}
	}
	return out, nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
