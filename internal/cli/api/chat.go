package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"PolicyDesk/internal/cli/model"
)

// Chat submits a query and returns the answer with its source attribution.
func (c *Client) Chat(ctx context.Context, req model.ChatRequest) (model.ChatResponse, error) {
	var resp model.ChatResponse
	err := c.PostJSON(ctx, "/api/chat", req, &resp)
	return resp, err
}

// History возвращает историю чата пользователя.
func (c *Client) History(ctx context.Context, userID int64) (model.HistoryList, error) {
	var resp model.HistoryList
	q := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	err := c.GetJSON(ctx, "/api/history", q, &resp)
	return resp, err
}

// UserHistory — история произвольного пользователя (экран администратора).
func (c *Client) UserHistory(ctx context.Context, userID int64) ([]model.HistoryEntry, error) {
	var resp model.HistoryList
	if err := c.GetJSON(ctx, fmt.Sprintf("/api/history/user/%d", userID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

// DeleteHistory удаляет запись истории от имени userID.
func (c *Client) DeleteHistory(ctx context.Context, userID, id int64) error {
	q := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	return c.DeleteJSON(ctx, fmt.Sprintf("/api/history/%d", id), q, nil, nil)
}
