package repo

import (
	"context"

	"PolicyDesk/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRepository - коллекции документов и их файлы.
type DocumentRepository interface {
	// Collections возвращает коллекции с файлами; пустой ids - все.
	Collections(ctx context.Context, ids []int64) ([]model.Collection, error)
	CollectionByName(ctx context.Context, name string) (*model.Collection, error)
	CollectionByID(ctx context.Context, id int64) (*model.Collection, error)
	CreateCollection(ctx context.Context, c *model.Collection) error
	// AddFiles добавляет файлы; файл с тем же именем заменяется.
	AddFiles(ctx context.Context, files []model.CollectionFile) error
	DeleteFile(ctx context.Context, collectionID int64, name string) (*model.CollectionFile, error)
	DeleteCollection(ctx context.Context, id int64) error
}

type documentRepo struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Collections(ctx context.Context, ids []int64) ([]model.Collection, error) {
	q := r.db.WithContext(ctx).Preload("Files", func(db *gorm.DB) *gorm.DB { return db.Order("name") })
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	var out []model.Collection
	err := q.Order("name").Find(&out).Error
	return out, err
}

func (r *documentRepo) CollectionByName(ctx context.Context, name string) (*model.Collection, error) {
	var c model.Collection
	if err := r.db.WithContext(ctx).Preload("Files").Where("name = ?", name).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *documentRepo) CollectionByID(ctx context.Context, id int64) (*model.Collection, error) {
	var c model.Collection
	if err := r.db.WithContext(ctx).Preload("Files").First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *documentRepo) CreateCollection(ctx context.Context, c *model.Collection) error {
	return r.db.WithContext(ctx).Omit("Files").Create(c).Error
}

func (r *documentRepo) AddFiles(ctx context.Context, files []model.CollectionFile) error {
	if len(files) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"stored_path", "content"}),
	}).Create(&files).Error
}

func (r *documentRepo) DeleteFile(ctx context.Context, collectionID int64, name string) (*model.CollectionFile, error) {
	var f model.CollectionFile
	err := r.db.WithContext(ctx).Where("collection_id = ? AND name = ?", collectionID, name).First(&f).Error
	if err != nil {
		return nil, notFound(err)
	}
	if err := r.db.WithContext(ctx).Delete(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *documentRepo) DeleteCollection(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&model.CollectionFile{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Collection{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
