package snapshot

import (
	"context"
	"encoding"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aijobs/common/cache"
	domainerrors "aijobs/services/dashboard/internal/errors"
	"aijobs/services/dashboard/internal/models"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Get(ctx context.Context, key string, value interface{}) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) Close() error {
	return m.Called().Error(0)
}

func TestSave(t *testing.T) {
	c := new(MockCache)
	summary := &models.RunSummary{RunID: "run-1", InputChecksum: "abc", TargetResidence: "South Korea"}
	c.On("Set", mock.Anything, Key("abc", "South Korea"), summary, time.Hour).Return(nil)

	require.NoError(t, NewCacheStore(c, time.Hour, zap.NewNop()).Save(context.Background(), summary))
	c.AssertExpectations(t)
}

func TestSave_Failure(t *testing.T) {
	c := new(MockCache)
	c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("READONLY"))

	err := NewCacheStore(c, time.Hour, zap.NewNop()).Save(context.Background(), &models.RunSummary{})

	assert.True(t, domainerrors.IsType(err, domainerrors.ErrTypeUnavailable))
}

func TestLast(t *testing.T) {
	stored := &models.RunSummary{RunID: "run-0", FilteredRows: 12}
	payload, err := stored.MarshalBinary()
	require.NoError(t, err)

	c := new(MockCache)
	c.On("Get", mock.Anything, Key("abc", "South Korea"), mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, args.Get(2).(encoding.BinaryUnmarshaler).UnmarshalBinary(payload))
		}).
		Return(nil)

	last, err := NewCacheStore(c, time.Hour, zap.NewNop()).Last(context.Background(), "abc", "South Korea")

	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "run-0", last.RunID)
	assert.Equal(t, 12, last.FilteredRows)
}

func TestLast_Miss(t *testing.T) {
	c := new(MockCache)
	c.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(cache.ErrNotFound)

	last, err := NewCacheStore(c, time.Hour, zap.NewNop()).Last(context.Background(), "abc", "Japan")

	assert.NoError(t, err)
	assert.Nil(t, last)
}

func TestKey(t *testing.T) {
	assert.NotEqual(t, Key("abc", "South Korea"), Key("abc", "Japan"))
	assert.Contains(t, Key("abc", "South Korea"), "dashboard:run:")
}
