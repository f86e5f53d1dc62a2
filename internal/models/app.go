// internal/models/app.go
package models

import "time"

const (
	AppStatusDraft    = "draft"
	AppStatusActive   = "active"
	AppStatusArchived = "archived"
)

type GeneratedApp struct {
	ID          string                 `json:"id"`
	AppName     string                 `json:"appName"`
	Description string                 `json:"description"`
	Entities    []string               `json:"entities"`
	Roles       []string               `json:"roles"`
	Features    []string               `json:"features"`
	Status      string                 `json:"status"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

type SaveAppRequest struct {
	AppName     string                 `json:"appName"`
	Description string                 `json:"description"`
	Entities    []string               `json:"entities"`
	Roles       []string               `json:"roles"`
	Features    []string               `json:"features"`
	Status      string                 `json:"status,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalApps   int  `json:"totalApps"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

type AppList struct {
	Apps       []GeneratedApp `json:"apps"`
	Pagination Pagination     `json:"pagination"`
}
