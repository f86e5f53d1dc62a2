// internal/workers/requirements/save-generated-app/models.go
package savegeneratedapp

type Input struct {
	AppName     string                 `json:"appName"`
	Description string                 `json:"description"`
	Entities    []string               `json:"entities"`
	Roles       []string               `json:"roles"`
	Features    []string               `json:"features"`
	Status      string                 `json:"status"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type Output struct {
	AppID     string `json:"appId"`
	AppName   string `json:"appName"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"` // ISO 8601
}
