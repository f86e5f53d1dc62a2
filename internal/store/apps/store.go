// Package apps persists generated app specifications in PostgreSQL.
package apps

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"requirement-extractor/internal/models"
)

var (
	ErrInvalidApp   = errors.New("APP_VALIDATION_FAILED")
	ErrDuplicateApp = errors.New("DUPLICATE_APP")
	ErrAppNotFound  = errors.New("APP_NOT_FOUND")
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	uniqueViolation = "23505"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS generated_apps (
	id          UUID PRIMARY KEY,
	app_name    TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	entities    JSONB NOT NULL,
	roles       JSONB NOT NULL,
	features    JSONB NOT NULL,
	status      TEXT NOT NULL DEFAULT 'draft',
	metadata    JSONB NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS generated_apps_created_at_idx ON generated_apps (created_at DESC)`

const appColumns = `id, app_name, description, entities, roles, features, status, metadata, created_at, updated_at`

type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// NewPagination computes page metadata for a result set of total items.
func NewPagination(page, limit, total int) models.Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return models.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalApps:   total,
		HasNext:     page*limit < total,
		HasPrev:     page > 1,
	}
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("create generated_apps schema: %w", err)
	}
	return nil
}

// Save validates req and inserts a new app.
func (s *Store) Save(ctx context.Context, req models.SaveAppRequest) (*models.GeneratedApp, error) {
	if err := ValidateSaveRequest(&req); err != nil {
		return nil, err
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	app := &models.GeneratedApp{
		ID:          uuid.NewString(),
		AppName:     req.AppName,
		Description: req.Description,
		Entities:    req.Entities,
		Roles:       req.Roles,
		Features:    req.Features,
		Status:      req.Status,
		Metadata:    metadata,
	}

	entities, roles, features, meta, err := encodeJSON(app)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	query := `
		INSERT INTO generated_apps (id, app_name, description, entities, roles, features, status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING created_at, updated_at`

	err = s.db.QueryRowContext(ctx, query,
		app.ID, app.AppName, app.Description, entities, roles, features, app.Status, meta, now,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateApp, app.AppName)
		}
		return nil, fmt.Errorf("insert app: %w", err)
	}

	return app, nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.GeneratedApp, error) {
	query := `SELECT ` + appColumns + ` FROM generated_apps WHERE id = $1`

	app, err := scanApp(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrAppNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get app: %w", err)
	}
	return app, nil
}

// GetMany returns the apps with the given ids, in the order of ids. Missing
// ids are skipped.
func (s *Store) GetMany(ctx context.Context, ids []string) ([]models.GeneratedApp, error) {
	if len(ids) == 0 {
		return []models.GeneratedApp{}, nil
	}

	query := `SELECT ` + appColumns + ` FROM generated_apps WHERE id = ANY($1)`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("get apps: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]models.GeneratedApp, len(ids))
	for rows.Next() {
		app, err := scanApp(rows)
		if err != nil {
			return nil, fmt.Errorf("scan app: %w", err)
		}
		byID[app.ID] = *app
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate apps: %w", err)
	}

	out := make([]models.GeneratedApp, 0, len(byID))
	for _, id := range ids {
		if app, ok := byID[id]; ok {
			out = append(out, app)
		}
	}
	return out, nil
}

// List returns one page of apps, newest first.
func (s *Store) List(ctx context.Context, params ListParams) (*models.AppList, error) {
	params = params.normalized()

	where := ""
	args := []interface{}{}
	if params.Search != "" {
		where = ` WHERE app_name ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+escapeLike(params.Search)+"%")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM generated_apps`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count apps: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM generated_apps%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		appColumns, where, n+1, n+2)
	args = append(args, params.Limit, (params.Page-1)*params.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	defer rows.Close()

	list := &models.AppList{Apps: []models.GeneratedApp{}}
	for rows.Next() {
		app, err := scanApp(rows)
		if err != nil {
			return nil, fmt.Errorf("scan app: %w", err)
		}
		list.Apps = append(list.Apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate apps: %w", err)
	}

	list.Pagination = NewPagination(params.Page, params.Limit, total)
	return list, nil
}

// Delete removes an app and returns its id and name.
func (s *Store) Delete(ctx context.Context, id string) (*models.GeneratedApp, error) {
	app := &models.GeneratedApp{}
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM generated_apps WHERE id = $1 RETURNING id, app_name`, id,
	).Scan(&app.ID, &app.AppName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrAppNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("delete app: %w", err)
	}
	return app, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApp(row rowScanner) (*models.GeneratedApp, error) {
	var app models.GeneratedApp
	var entities, roles, features, metadata []byte
	if err := row.Scan(&app.ID, &app.AppName, &app.Description, &entities, &roles, &features,
		&app.Status, &metadata, &app.CreatedAt, &app.UpdatedAt); err != nil {
		return nil, err
	}

	for _, f := range []struct {
		raw []byte
		dst interface{}
	}{
		{entities, &app.Entities},
		{roles, &app.Roles},
		{features, &app.Features},
		{metadata, &app.Metadata},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode app %s: %w", app.ID, err)
		}
	}
	return &app, nil
}

func encodeJSON(app *models.GeneratedApp) (entities, roles, features, metadata []byte, err error) {
	if entities, err = json.Marshal(app.Entities); err != nil {
		return
	}
	if roles, err = json.Marshal(app.Roles); err != nil {
		return
	}
	if features, err = json.Marshal(app.Features); err != nil {
		return
	}
	metadata, err = json.Marshal(app.Metadata)
	return
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
