package panels

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"PolicyDesk/internal/cli/api"
	"PolicyDesk/internal/cli/model"
)

// AllowedExtensions — расширения файлов, принимаемых при загрузке.
var AllowedExtensions = map[string]bool{"pdf": true, "txt": true, "docx": true}

// CollectionsClient — часть api.Client для коллекций документов.
type CollectionsClient interface {
	Collections(ctx context.Context, userID int64) ([]model.Collection, error)
	Upload(ctx context.Context, userID int64, dbName string, files []api.FilePart) (model.UploadResult, error)
	DeleteFile(ctx context.Context, userID int64, dbName, filename string) (string, error)
	DeleteCollection(ctx context.Context, userID int64, dbName string) (string, error)
}

// Collections — экран документов.
type Collections struct {
	base
	client CollectionsClient
	userID int64
	items  []model.Collection
	recent []Activity

	// readFile подменяется в тестах.
	readFile func(string) ([]byte, error)
}

func NewCollections(client CollectionsClient, userID int64, o Options) *Collections {
	p := &Collections{client: client, userID: userID, readFile: os.ReadFile}
	p.init(o)
	return p
}

// Load загружает коллекции пользователя.
func (p *Collections) Load(ctx context.Context) error {
	list, err := p.client.Collections(ctx, p.userID)
	if err != nil {
		return err
	}
	p.apply(func() { p.items = list })
	return nil
}

// Items возвращает копию списка.
func (p *Collections) Items() []model.Collection {
	var out []model.Collection
	p.read(func() { out = append(out, p.items...) })
	return out
}

// Find ищет коллекцию по имени.
func (p *Collections) Find(name string) (model.Collection, bool) {
	var (
		c  model.Collection
		ok bool
	)
	p.read(func() {
		for _, it := range p.items {
			if it.Name == name {
				c, ok = it, true
				return
			}
		}
	})
	return c, ok
}

// Recent — лента последних действий (не более пяти).
func (p *Collections) Recent() []Activity {
	var out []Activity
	p.read(func() { out = append(out, p.recent...) })
	return out
}

// ValidateFiles проверяет расширения файлов.
func ValidateFiles(paths []string) error {
	for _, path := range paths {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if !AllowedExtensions[ext] {
			return invalid("files", "Only PDF, TXT, and DOCX files are allowed")
		}
	}
	return nil
}

// Upload читает файлы с диска и загружает их в коллекцию name (создаёт или дополняет).
func (p *Collections) Upload(ctx context.Context, name string, paths []string) (model.UploadResult, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(paths) == 0 {
		return model.UploadResult{}, invalid("upload", "Please enter a collection name and select files")
	}
	if err := ValidateFiles(paths); err != nil {
		return model.UploadResult{}, err
	}
	parts := make([]api.FilePart, 0, len(paths))
	for _, path := range paths {
		data, err := p.readFile(path)
		if err != nil {
			return model.UploadResult{}, fmt.Errorf("read %s: %w", path, err)
		}
		parts = append(parts, api.FilePart{Name: filepath.Base(path), Data: data})
	}
	var res model.UploadResult
	err := p.run(ctx, "collections.upload", func(ctx context.Context) error {
		var err error
		res, err = p.client.Upload(ctx, p.userID, name, parts)
		return err
	}, func() {
		p.apply(func() {
			p.recent = pushRecent(p.recent, Activity{
				ID:    res.CollectionName,
				Label: fmt.Sprintf("Uploaded %d file(s) to %s", len(parts), name),
			})
		})
	})
	if err != nil {
		return res, err
	}
	return res, p.Load(ctx)
}

// DeleteFile удаляет файл из коллекции после подтверждения.
func (p *Collections) DeleteFile(ctx context.Context, collection, file string) (string, error) {
	if err := p.confirmed(fmt.Sprintf("Are you sure you want to delete %q from %q?", file, collection)); err != nil {
		return "", err
	}
	var msg string
	err := p.run(ctx, "collections.delete_file", func(ctx context.Context) error {
		var err error
		msg, err = p.client.DeleteFile(ctx, p.userID, collection, file)
		return err
	}, func() {
		p.apply(func() {
			p.recent = pushRecent(p.recent, Activity{ID: collection, Label: fmt.Sprintf("Deleted %s from %s", file, collection)})
		})
	})
	if err != nil {
		return "", err
	}
	return msg, p.Load(ctx)
}

// DeleteCollection удаляет коллекцию вместе с файлами после подтверждения.
func (p *Collections) DeleteCollection(ctx context.Context, name string) (string, error) {
	if err := p.confirmed(fmt.Sprintf("Are you sure you want to delete the collection %q and all its files?", name)); err != nil {
		return "", err
	}
	var msg string
	err := p.run(ctx, "collections.delete", func(ctx context.Context) error {
		var err error
		msg, err = p.client.DeleteCollection(ctx, p.userID, name)
		return err
	}, func() {
		p.apply(func() {
			p.recent = pushRecent(p.recent, Activity{ID: name, Label: "Deleted collection " + name})
		})
	})
	if err != nil {
		return "", err
	}
	return msg, p.Load(ctx)
}
