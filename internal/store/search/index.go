// Package search keeps a full-text index of generated apps in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"requirement-extractor/internal/models"
)

const DefaultIndex = "generated-apps"

var (
	ErrIndexFailed  = errors.New("SEARCH_INDEX_FAILED")
	ErrSearchFailed = errors.New("SEARCH_QUERY_FAILED")
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"appName":     {"type": "text", "fields": {"raw": {"type": "keyword"}}},
			"description": {"type": "text"},
			"entities":    {"type": "text"},
			"roles":       {"type": "keyword"},
			"features":    {"type": "text"},
			"status":      {"type": "keyword"},
			"createdAt":   {"type": "date"}
		}
	}
}`

type document struct {
	AppName     string    `json:"appName"`
	Description string    `json:"description"`
	Entities    []string  `json:"entities"`
	Roles       []string  `json:"roles"`
	Features    []string  `json:"features"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Hits is one page of matching app ids, best match first.
type Hits struct {
	IDs   []string
	Total int
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

type Index struct {
	client *elasticsearch.Client
	name   string
}

func New(client *elasticsearch.Client, name string) *Index {
	if name == "" {
		name = DefaultIndex
	}
	return &Index{client: client, name: name}
}

func (i *Index) Name() string {
	return i.name
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (i *Index) EnsureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{i.name}}.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = esapi.IndicesCreateRequest{
		Index: i.name,
		Body:  strings.NewReader(indexMapping),
	}.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: create index %s: %s", ErrIndexFailed, i.name, res.String())
	}
	return nil
}

func (i *Index) Index(ctx context.Context, app *models.GeneratedApp) error {
	body, err := json.Marshal(document{
		AppName:     app.AppName,
		Description: app.Description,
		Entities:    app.Entities,
		Roles:       app.Roles,
		Features:    app.Features,
		Status:      app.Status,
		CreatedAt:   app.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}

	res, err := esapi.IndexRequest{
		Index:      i.name,
		DocumentID: app.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: index app %s: %s", ErrIndexFailed, app.ID, res.String())
	}
	return nil
}

// Delete removes an app document. A missing document is not an error.
func (i *Index) Delete(ctx context.Context, id string) error {
	res, err := esapi.DeleteRequest{
		Index:      i.name,
		DocumentID: id,
		Refresh:    "true",
	}.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: delete app %s: %s", ErrIndexFailed, id, res.String())
	}
	return nil
}

func buildQuery(query string, from, size int) map[string]interface{} {
	return map[string]interface{}{
		"from":    from,
		"size":    size,
		"_source": false,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"appName^3", "description", "entities^2", "features"},
				"fuzziness": "AUTO",
			},
		},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"createdAt": map[string]interface{}{"order": "desc"}},
		},
	}
}

// Search runs a multi_match query over names, descriptions, entities and
// features.
func (i *Index) Search(ctx context.Context, query string, from, size int) (*Hits, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(query, from, size)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	res, err := esapi.SearchRequest{
		Index: []string{i.name},
		Body:  &buf,
	}.Do(ctx, i.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrSearchFailed, res.String())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	hits := &Hits{IDs: make([]string, 0, len(r.Hits.Hits)), Total: r.Hits.Total.Value}
	for _, h := range r.Hits.Hits {
		hits.IDs = append(hits.IDs, h.ID)
	}
	return hits, nil
}
