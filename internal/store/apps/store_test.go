// internal/store/apps/store_test.go
package apps

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"requirement-extractor/internal/models"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var appRowColumns = []string{
	"id", "app_name", "description", "entities", "roles", "features",
	"status", "metadata", "created_at", "updated_at",
}

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewStore(db)
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func validRequest() models.SaveAppRequest {
	return models.SaveAppRequest{
		AppName:     "Task Manager",
		Description: "Track tasks and projects",
		Entities:    []string{"Task", "Project"},
		Roles:       []string{"Manager", "User"},
		Features:    []string{"Create Task", "Assign Task"},
	}
}

func addAppRow(rows *sqlmock.Rows, id, name string, created time.Time) *sqlmock.Rows {
	return rows.AddRow(id, name, "desc", []byte(`["Task"]`), []byte(`["Admin","User"]`),
		[]byte(`["Create Task"]`), models.AppStatusDraft, []byte(`{"source":"rule-based"}`), created, created)
}

// ==========================
// Save
// ==========================

func TestStore_Save_Success(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO generated_apps")).
		WithArgs(sqlmock.AnyArg(), "Task Manager", "Track tasks and projects",
			[]byte(`["Task","Project"]`), []byte(`["Manager","User"]`), []byte(`["Create Task","Assign Task"]`),
			models.AppStatusDraft, []byte(`{}`), fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(fixedNow, fixedNow))

	app, err := s.Save(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Len(t, app.ID, 36)
	assert.Equal(t, "Task Manager", app.AppName)
	assert.Equal(t, models.AppStatusDraft, app.Status)
	assert.Equal(t, fixedNow, app.CreatedAt)
	assert.Equal(t, fixedNow, app.UpdatedAt)
	assert.NotNil(t, app.Metadata)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Save_TrimsInput(t *testing.T) {
	s, mock := newTestStore(t)

	req := validRequest()
	req.AppName = "  Task Manager  "
	req.Entities = []string{" Task ", "", "   "}
	req.Status = models.AppStatusActive

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO generated_apps")).
		WithArgs(sqlmock.AnyArg(), "Task Manager", sqlmock.AnyArg(), []byte(`["Task"]`),
			sqlmock.AnyArg(), sqlmock.AnyArg(), models.AppStatusActive, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(fixedNow, fixedNow))

	app, err := s.Save(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Task"}, app.Entities)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Save_Duplicate(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO generated_apps")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})

	_, err := s.Save(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateApp))
	assert.Contains(t, err.Error(), "Task Manager")
}

func TestStore_Save_DatabaseError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO generated_apps")).
		WillReturnError(errors.New("connection reset"))

	_, err := s.Save(context.Background(), validRequest())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDuplicateApp))
	assert.Contains(t, err.Error(), "insert app")
}

func TestStore_Save_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.SaveAppRequest)
		wantMsg string
	}{
		{"short name", func(r *models.SaveAppRequest) { r.AppName = "x" }, "appName"},
		{"blank name", func(r *models.SaveAppRequest) { r.AppName = "   " }, "appName"},
		{"no entities", func(r *models.SaveAppRequest) { r.Entities = nil }, "entities"},
		{"blank roles", func(r *models.SaveAppRequest) { r.Roles = []string{" ", ""} }, "roles"},
		{"no features", func(r *models.SaveAppRequest) { r.Features = []string{} }, "features"},
		{"long feature", func(r *models.SaveAppRequest) { r.Features = []string{strings.Repeat("f", 101)} }, "features"},
		{"unknown status", func(r *models.SaveAppRequest) { r.Status = "deleted" }, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newTestStore(t)

			req := validRequest()
			tt.mutate(&req)

			_, err := s.Save(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidApp))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// ==========================
// Get / GetMany
// ==========================

func TestStore_Get(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM generated_apps WHERE id = $1")).
		WithArgs("app-1").
		WillReturnRows(addAppRow(sqlmock.NewRows(appRowColumns), "app-1", "Task Manager", fixedNow))

	app, err := s.Get(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, "Task Manager", app.AppName)
	assert.Equal(t, []string{"Task"}, app.Entities)
	assert.Equal(t, []string{"Admin", "User"}, app.Roles)
	assert.Equal(t, "rule-based", app.Metadata["source"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_NotFound(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM generated_apps WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrAppNotFound))
}

func TestStore_Get_CorruptRow(t *testing.T) {
	s, mock := newTestStore(t)

	rows := sqlmock.NewRows(appRowColumns).AddRow("app-1", "Broken", "", []byte(`not json`),
		[]byte(`[]`), []byte(`[]`), models.AppStatusDraft, []byte(`{}`), fixedNow, fixedNow)
	mock.ExpectQuery(regexp.QuoteMeta("FROM generated_apps WHERE id = $1")).WillReturnRows(rows)

	_, err := s.Get(context.Background(), "app-1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrAppNotFound))
}

func TestStore_GetMany_PreservesOrder(t *testing.T) {
	s, mock := newTestStore(t)

	rows := sqlmock.NewRows(appRowColumns)
	addAppRow(rows, "a", "Alpha", fixedNow)
	addAppRow(rows, "c", "Gamma", fixedNow)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(rows)

	apps, err := s.GetMany(context.Background(), []string{"c", "b", "a"})
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "c", apps[0].ID)
	assert.Equal(t, "a", apps[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetMany_Empty(t *testing.T) {
	s, mock := newTestStore(t)

	apps, err := s.GetMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, apps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// List
// ==========================

func TestStore_List(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM generated_apps")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := sqlmock.NewRows(appRowColumns)
	addAppRow(rows, "b", "Newer", fixedNow)
	addAppRow(rows, "a", "Older", fixedNow.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT $1 OFFSET $2")).
		WithArgs(10, 10).
		WillReturnRows(rows)

	list, err := s.List(context.Background(), ListParams{Page: 2})
	require.NoError(t, err)

	require.Len(t, list.Apps, 2)
	assert.Equal(t, "Newer", list.Apps[0].AppName)
	assert.Equal(t, models.Pagination{
		CurrentPage: 2, TotalPages: 2, TotalApps: 12, HasNext: false, HasPrev: true,
	}, list.Pagination)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_List_Search(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM generated_apps WHERE app_name ILIKE $1 OR description ILIKE $1")).
		WithArgs(`%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs(`%50\%\_off%`, 5, 0).
		WillReturnRows(sqlmock.NewRows(appRowColumns))

	list, err := s.List(context.Background(), ListParams{Page: 0, Limit: 5, Search: "  50%_off "})
	require.NoError(t, err)

	assert.NotNil(t, list.Apps)
	assert.Empty(t, list.Apps)
	assert.Equal(t, 1, list.Pagination.CurrentPage)
	assert.Equal(t, 0, list.Pagination.TotalPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_List_CountError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).WillReturnError(errors.New("boom"))

	_, err := s.List(context.Background(), ListParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count apps")
}

func TestListParams_Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   ListParams
		want ListParams
	}{
		{"defaults", ListParams{}, ListParams{Page: 1, Limit: DefaultPageSize}},
		{"negative", ListParams{Page: -3, Limit: -1}, ListParams{Page: 1, Limit: DefaultPageSize}},
		{"capped", ListParams{Page: 4, Limit: 500}, ListParams{Page: 4, Limit: MaxPageSize}},
		{"trimmed search", ListParams{Page: 1, Limit: 20, Search: " crm "}, ListParams{Page: 1, Limit: 20, Search: "crm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.normalized())
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int
		want  models.Pagination
	}{
		{"first of three", 1, 10, 25, models.Pagination{CurrentPage: 1, TotalPages: 3, TotalApps: 25, HasNext: true}},
		{"last page", 3, 10, 25, models.Pagination{CurrentPage: 3, TotalPages: 3, TotalApps: 25, HasPrev: true}},
		{"exact fit", 2, 5, 10, models.Pagination{CurrentPage: 2, TotalPages: 2, TotalApps: 10, HasPrev: true}},
		{"empty", 1, 10, 0, models.Pagination{CurrentPage: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.limit, tt.total))
		})
	}
}

// ==========================
// Delete / schema
// ==========================

func TestStore_Delete(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM generated_apps WHERE id = $1 RETURNING id, app_name")).
		WithArgs("app-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "app_name"}).AddRow("app-1", "Task Manager"))

	app, err := s.Delete(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, "app-1", app.ID)
	assert.Equal(t, "Task Manager", app.AppName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Delete_NotFound(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM generated_apps")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "app_name"}))

	_, err := s.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrAppNotFound))
}

func TestStore_EnsureSchema(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS generated_apps").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, s.EnsureSchema(context.Background()))

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	assert.Error(t, s.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
