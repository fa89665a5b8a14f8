package api

import (
	"context"
	"net/url"
	"strconv"

	"PolicyDesk/internal/cli/model"
)

type collectionTarget struct {
	DBName   string `json:"db_name"`
	Filename string `json:"filename,omitempty"`
	UserID   int64  `json:"user_id"`
}

// Collections lists the collections visible to userID, with file names.
func (c *Client) Collections(ctx context.Context, userID int64) ([]model.Collection, error) {
	var resp struct {
		Collections []model.Collection `json:"collections"`
	}
	q := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	if err := c.GetJSON(ctx, "/api/documents/collections", q, &resp); err != nil {
		return nil, err
	}
	return resp.Collections, nil
}

// Upload creates the collection dbName (or appends to it) with the given files.
func (c *Client) Upload(ctx context.Context, userID int64, dbName string, files []FilePart) (model.UploadResult, error) {
	var res model.UploadResult
	fields := map[string]string{
		"db_name": dbName,
		"user_id": strconv.FormatInt(userID, 10),
	}
	err := c.PostMultipart(ctx, "/api/upload", fields, "files", files, &res)
	return res, err
}

// DeleteFile удаляет один файл из коллекции и возвращает сообщение сервера.
func (c *Client) DeleteFile(ctx context.Context, userID int64, dbName, filename string) (string, error) {
	var resp messageResponse
	body := collectionTarget{DBName: dbName, Filename: filename, UserID: userID}
	if err := c.DeleteJSON(ctx, "/api/documents/files", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// DeleteCollection удаляет коллекцию вместе с файлами.
func (c *Client) DeleteCollection(ctx context.Context, userID int64, dbName string) (string, error) {
	var resp messageResponse
	body := collectionTarget{DBName: dbName, UserID: userID}
	if err := c.DeleteJSON(ctx, "/api/documents/collections", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
