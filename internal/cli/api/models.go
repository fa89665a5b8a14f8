package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"PolicyDesk/internal/cli/model"
)

// Models returns model configurations; userID > 0 narrows the list to models available to that user.
func (c *Client) Models(ctx context.Context, userID int64) ([]model.ModelConfig, error) {
	var resp struct {
		Models []model.ModelConfig `json:"models"`
	}
	var q url.Values
	if userID > 0 {
		q = url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	}
	if err := c.GetJSON(ctx, "/api/models", q, &resp); err != nil {
		return nil, err
	}
	return resp.Models, nil
}

// CreateModel создаёт конфигурацию модели.
func (c *Client) CreateModel(ctx context.Context, d model.ModelDraft) (int64, string, error) {
	var resp struct {
		Message string `json:"message"`
		ModelID int64  `json:"model_id"`
	}
	if err := c.PostJSON(ctx, "/api/models/create", d, &resp); err != nil {
		return 0, "", err
	}
	return resp.ModelID, resp.Message, nil
}

// LoadModel запускает загрузку модели и возвращает сообщение о статусе.
func (c *Client) LoadModel(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	if err := c.PostJSON(ctx, fmt.Sprintf("/api/load-model/%d", id), struct{}{}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// AssignModel posts an assignment record for scope user, department or grade.
func (c *Client) AssignModel(ctx context.Context, scope string, a model.Assignment) (string, error) {
	switch scope {
	case model.ScopeUser, model.ScopeDepartment, model.ScopeGrade:
	default:
		return "", fmt.Errorf("unknown assignment scope %q", scope)
	}
	var resp messageResponse
	if err := c.PostJSON(ctx, "/api/models/assign/"+scope, a, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
