package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"PolicyDesk/internal/model"
	"PolicyDesk/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadFile - файл из multipart-запроса.
type UploadFile struct {
	Name string
	Data []byte
}

// CollectionView - коллекция в ответе /api/documents/collections.
type CollectionView struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	StoragePath string   `json:"chroma_db_path"`
	CreatedBy   *int64   `json:"created_by,omitempty"`
	Files       []string `json:"files"`
}

func viewOf(c model.Collection) CollectionView {
	v := CollectionView{ID: c.ID, Name: c.Name, StoragePath: c.StoragePath, CreatedBy: c.CreatedBy, Files: []string{}}
	for _, f := range c.Files {
		v.Files = append(v.Files, f.Name)
	}
	return v
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// safeName приводит имя к виду, пригодному для файловой системы.
func safeName(name string) string {
	name = strings.Trim(unsafeName.ReplaceAllString(strings.TrimSpace(name), "_"), "._")
	return name
}

// DocumentService - коллекции документов и загрузка файлов.
type DocumentService struct {
	access
	docs      repo.DocumentRepository
	uploadDir string
	logger    *zap.SugaredLogger

	now func() time.Time
}

func NewDocumentService(dir repo.DirectoryRepository, models repo.ModelRepository, docs repo.DocumentRepository, uploadDir string, logger *zap.SugaredLogger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &DocumentService{
		access:    access{dir: dir, models: models},
		docs:      docs,
		uploadDir: uploadDir,
		logger:    logger,
		now:       time.Now,
	}
}

// Collections - коллекции, видимые пользователю. userID == 0 или неизвестный
// пользователь видят все коллекции.
func (s *DocumentService) Collections(ctx context.Context, userID int64) ([]CollectionView, error) {
	var ids []int64
	if userID != 0 {
		u, ok, err := s.user(ctx, userID)
		if err != nil {
			return nil, err
		}
		if ok {
			if ids, err = s.collectionIDs(ctx, u); err != nil {
				return nil, err
			}
		}
	}
	out := []CollectionView{}
	if ids != nil && len(ids) == 0 {
		return out, nil
	}
	cols, err := s.docs.Collections(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range cols {
		out = append(out, viewOf(c))
	}
	return out, nil
}

func (s *DocumentService) requireAdmin(ctx context.Context, userID int64, msg string) error {
	u, ok, err := s.user(ctx, userID)
	if err != nil {
		return err
	}
	if !ok || u.Role != model.RoleAdmin {
		return forbidden(msg)
	}
	return nil
}

// Upload добавляет файлы в коллекцию dbName, создавая её при необходимости.
// Возвращает сообщение и имя коллекции.
func (s *DocumentService) Upload(ctx context.Context, userID int64, dbName string, files []UploadFile) (string, string, error) {
	if err := s.requireAdmin(ctx, userID, "Only admins can upload documents"); err != nil {
		return "", "", err
	}
	if len(files) == 0 {
		return "", "", badRequest("No files provided")
	}
	name := safeName(dbName)
	if name == "" {
		name = fmt.Sprintf("collection_%d_%s", s.now().Unix(), uuid.NewString()[:8])
	}

	coll, err := s.docs.CollectionByName(ctx, name)
	if errors.Is(err, repo.ErrNotFound) {
		coll = &model.Collection{
			Name:        name,
			StoragePath: filepath.Join(s.uploadDir, fmt.Sprintf("db_%d_%s", s.now().Unix(), uuid.NewString()[:8])),
			CreatedBy:   &userID,
		}
		if err := s.docs.CreateCollection(ctx, coll); err != nil {
			return "", "", fmt.Errorf("create collection: %w", err)
		}
	} else if err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(coll.StoragePath, 0o755); err != nil {
		return "", "", fmt.Errorf("prepare storage: %w", err)
	}

	var (
		stored []model.CollectionFile
		chunks int
	)
	for _, f := range files {
		fname := filepath.Base(f.Name)
		if !Allowed(fname) {
			s.logger.Warnw("skipping file with unsupported extension", "file", fname)
			continue
		}
		text, err := ExtractText(fname, f.Data)
		if err != nil {
			s.logger.Warnw("text extraction failed", "file", fname, "error", err)
			continue
		}
		parts := Chunk(text, ChunkSize, ChunkOverlap)
		if len(parts) == 0 {
			continue
		}
		path := filepath.Join(coll.StoragePath, uuid.NewString()[:8]+"_"+safeName(fname))
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return "", "", fmt.Errorf("save %s: %w", fname, err)
		}
		stored = append(stored, model.CollectionFile{CollectionID: coll.ID, Name: fname, StoredPath: path, Content: text})
		chunks += len(parts)
	}
	if chunks == 0 {
		return "", "", badRequest("No textual content found in uploaded files")
	}
	if err := s.docs.AddFiles(ctx, stored); err != nil {
		return "", "", fmt.Errorf("store files: %w", err)
	}
	s.logger.Infow("documents uploaded", "collection", coll.Name, "files", len(stored), "chunks", chunks)
	return fmt.Sprintf("Uploaded and added %d chunks to collection: %s", chunks, coll.Name), coll.Name, nil
}

// DeleteFile удаляет файл из коллекции вместе с сохранённой копией.
func (s *DocumentService) DeleteFile(ctx context.Context, userID int64, dbName, filename string) (string, error) {
	if err := s.requireAdmin(ctx, userID, "Only admins can delete documents"); err != nil {
		return "", err
	}
	if dbName == "" || filename == "" {
		return "", badRequest("Collection name and filename required")
	}
	coll, err := s.docs.CollectionByName(ctx, dbName)
	if errors.Is(err, repo.ErrNotFound) {
		return "", notFound("Collection '%s' not found", dbName)
	}
	if err != nil {
		return "", err
	}
	f, err := s.docs.DeleteFile(ctx, coll.ID, filename)
	if errors.Is(err, repo.ErrNotFound) {
		return "", notFound("File '%s' not found in collection '%s'", filename, dbName)
	}
	if err != nil {
		return "", err
	}
	if err := os.Remove(f.StoredPath); err != nil && !os.IsNotExist(err) {
		s.logger.Warnw("stored file not removed", "path", f.StoredPath, "error", err)
	}
	return fmt.Sprintf("Successfully deleted file '%s' from collection '%s'", filename, dbName), nil
}

// DeleteCollection удаляет коллекцию, её файлы и каталог хранения.
func (s *DocumentService) DeleteCollection(ctx context.Context, userID int64, dbName string) (string, error) {
	if err := s.requireAdmin(ctx, userID, "Only admins can delete collections"); err != nil {
		return "", err
	}
	if dbName == "" {
		return "", badRequest("Collection name required")
	}
	coll, err := s.docs.CollectionByName(ctx, dbName)
	if errors.Is(err, repo.ErrNotFound) {
		return "", notFound("Collection '%s' not found", dbName)
	}
	if err != nil {
		return "", err
	}
	if err := s.docs.DeleteCollection(ctx, coll.ID); err != nil {
		return "", err
	}
	if err := os.RemoveAll(coll.StoragePath); err != nil {
		s.logger.Warnw("collection storage not removed", "path", coll.StoragePath, "error", err)
	}
	return fmt.Sprintf("Successfully deleted collection '%s'", dbName), nil
}
