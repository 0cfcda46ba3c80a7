package quotas

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	selectQuota = `SELECT owner_id, quota_limit, used, created_at, updated_at FROM quotas WHERE owner_id=\$1`
	insertQuota = `(?s)INSERT INTO quotas \(owner_id, quota_limit, used\).*ON CONFLICT \(owner_id\) DO NOTHING`
	casQuota    = `UPDATE quotas SET used=\$3, updated_at=now\(\) WHERE owner_id=\$1 AND used=\$2`
)

func TestGet_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(selectQuota).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "quota_limit", "used", "created_at", "updated_at"}).
			AddRow("u1", int64(1000), int64(600), now, now))

	q, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, &models.Quota{OwnerID: "u1", Limit: 1000, Used: 600, CreatedAt: now, UpdatedAt: now}, q)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuota).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuota).WithArgs("u1").WillReturnError(errors.New("db down"))

	_, err := repo.Get(context.Background(), "u1")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestInsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuota).WithArgs("u1", int64(1000), int64(0)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertQuota).WithArgs("u1", int64(1000), int64(0)).WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.Insert(context.Background(), &models.Quota{OwnerID: "u1", Limit: 1000})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Insert(context.Background(), &models.Quota{OwnerID: "u1", Limit: 1000})
	require.NoError(t, err)
	assert.False(t, created, "conflicting insert must not create a second record")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompareAndSwapUsed(t *testing.T) {
	tests := []struct {
		name    string
		result  driver.Result
		execErr error
		want    bool
		wantErr string
	}{
		{name: "swapped", result: sqlmock.NewResult(0, 1), want: true},
		{name: "lost race", result: sqlmock.NewResult(0, 0), want: false},
		{name: "db error", execErr: errors.New("db down"), wantErr: "db error"},
		{name: "rows affected error", result: sqlmock.NewErrorResult(errors.New("rows-err")), wantErr: "rows affected error"},
		{name: "too many rows", result: sqlmock.NewResult(0, 2), wantErr: "unexpected rows affected: 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			exp := mock.ExpectExec(casQuota).WithArgs("u1", int64(100), int64(250))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(tt.result)
			}

			ok, err := repo.CompareAndSwapUsed(context.Background(), "u1", 100, 250)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
