package controllers

import (
	"encoding/json"
	"time"

	"synthflow/models"
)

// --- Request payloads ---

type GoogleAuthRequest struct {
	Credential string `json:"credential" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type WorkflowCreateRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=255"`
	Description       string          `json:"description"`
	GraphData         json.RawMessage `json:"graph_data"`
	ConcurrencyPolicy string          `json:"concurrency_policy" validate:"omitempty,oneof=allow_parallel queue cancel_existing"`
}

type WorkflowUpdateRequest struct {
	Name              *string         `json:"name" validate:"omitempty,min=1,max=255"`
	Description       *string         `json:"description"`
	GraphData         json.RawMessage `json:"graph_data"`
	IsActive          *bool           `json:"is_active"`
	ConcurrencyPolicy *string         `json:"concurrency_policy" validate:"omitempty,oneof=allow_parallel queue cancel_existing"`
}

// --- Response payloads ---

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type WorkflowResponse struct {
	ID                string          `json:"id"`
	OwnerID           string          `json:"owner_id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	GraphData         json.RawMessage `json:"graph_data"`
	IsActive          bool            `json:"is_active"`
	ConcurrencyPolicy string          `json:"concurrency_policy"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type WorkflowCreateResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	WebhookURL string    `json:"webhook_url"`
	CreatedAt  time.Time `json:"created_at"`
}

type WorkflowListItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	NodeCount   int       `json:"node_count"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type WorkflowListResponse struct {
	Workflows []WorkflowListItem `json:"workflows"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PerPage   int                `json:"per_page"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		Plan:      user.Plan,
		CreatedAt: user.CreatedAt,
	}
}

func newWorkflowResponse(workflow *models.Workflow) WorkflowResponse {
	return WorkflowResponse{
		ID:                workflow.ID,
		OwnerID:           workflow.OwnerID,
		Name:              workflow.Name,
		Description:       workflow.Description,
		GraphData:         json.RawMessage(workflow.GraphData),
		IsActive:          workflow.IsActive,
		ConcurrencyPolicy: workflow.ConcurrencyPolicy,
		Version:           workflow.Version,
		CreatedAt:         workflow.CreatedAt,
		UpdatedAt:         workflow.UpdatedAt,
	}
}

// nodeCount counts the graph's nodes without assuming anything else about
// the payload.
func nodeCount(graph []byte) int {
	if len(graph) == 0 {
		return 0
	}
	var partial struct {
		Nodes []json.RawMessage `json:"nodes"`
	}
	if err := json.Unmarshal(graph, &partial); err != nil {
		return 0
	}
	return len(partial.Nodes)
}
