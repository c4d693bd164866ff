package schema

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockConn struct {
	mock.Mock
}

func (m *MockConn) Exec(ctx context.Context, query string, args ...any) error {
	return m.Called(ctx, query, args).Error(0)
}

func (m *MockConn) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	called := m.Called(ctx, query)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(driver.Rows), called.Error(1)
}

// appliedRows yields one (version, applied_at) row per version.
type appliedRows struct {
	driver.Rows
	versions []int32
	pos      int
}

func (r *appliedRows) Next() bool {
	r.pos++
	return r.pos <= len(r.versions)
}

func (r *appliedRows) Scan(dest ...any) error {
	*dest[0].(*int32) = r.versions[r.pos-1]
	*dest[1].(*time.Time) = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return nil
}

func (r *appliedRows) Close() error { return nil }

func (r *appliedRows) Err() error { return nil }

var (
	first  = Migration{Version: 1, Description: "first", Up: "CREATE TABLE a", Down: "DROP TABLE a"}
	second = Migration{Version: 2, Description: "second", Up: "CREATE TABLE b", Down: "DROP TABLE b"}
)

func TestMigrate_AppliesPendingInOrder(t *testing.T) {
	conn := new(MockConn)
	conn.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	conn.On("Query", mock.Anything, mock.Anything).Return(&appliedRows{versions: []int32{1}}, nil)

	count, err := NewMigrator(conn, zap.NewNop()).Migrate(context.Background(), []Migration{second, first})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	conn.AssertCalled(t, "Exec", mock.Anything, second.Up, mock.Anything)
	conn.AssertNotCalled(t, "Exec", mock.Anything, first.Up, mock.Anything)
}

func TestMigrate_StopsOnFailure(t *testing.T) {
	conn := new(MockConn)
	conn.On("Exec", mock.Anything, first.Up, mock.Anything).Return(errors.New("syntax error"))
	conn.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	conn.On("Query", mock.Anything, mock.Anything).Return(&appliedRows{}, nil)

	count, err := NewMigrator(conn, zap.NewNop()).Migrate(context.Background(), []Migration{first, second})

	assert.ErrorContains(t, err, "failed to apply migration 1")
	assert.Equal(t, 0, count)
	conn.AssertNotCalled(t, "Exec", mock.Anything, second.Up, mock.Anything)
}

func TestMigrate_QueryFailure(t *testing.T) {
	conn := new(MockConn)
	conn.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	conn.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("unavailable"))

	_, err := NewMigrator(conn, zap.NewNop()).Migrate(context.Background(), []Migration{first})

	assert.ErrorContains(t, err, "failed to query migrations")
}

func TestRollbackMigration(t *testing.T) {
	conn := new(MockConn)
	conn.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, NewMigrator(conn, zap.NewNop()).RollbackMigration(context.Background(), second))

	conn.AssertCalled(t, "Exec", mock.Anything, second.Down, mock.Anything)
	conn.AssertCalled(t, "Exec", mock.Anything, "DELETE FROM migrations WHERE version = ?", []any{int32(2)})
}
