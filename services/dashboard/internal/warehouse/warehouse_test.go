package warehouse

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainerrors "aijobs/services/dashboard/internal/errors"
	"aijobs/services/dashboard/internal/models"
)

type MockConn struct {
	mock.Mock
}

func (m *MockConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(driver.Batch), args.Error(1)
}

// recordingBatch keeps appended rows in memory.
type recordingBatch struct {
	driver.Batch
	rows    [][]any
	sent    bool
	aborted bool
	sendErr error
}

func (b *recordingBatch) Append(v ...any) error {
	b.rows = append(b.rows, v)
	return nil
}

func (b *recordingBatch) Send() error {
	b.sent = true
	return b.sendErr
}

func (b *recordingBatch) Abort() error {
	b.aborted = true
	return nil
}

var loadedAt = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newSink(conn Conn) *ClickHouseSink {
	sink := NewClickHouseSink(conn, zap.NewNop())
	sink.now = func() time.Time { return loadedAt }
	return sink
}

func fixture() ([]models.EnrichedJobRecord, []models.SkillAssociation) {
	jobs := []models.EnrichedJobRecord{
		{JobRecord: models.JobRecord{JobID: "AI1", SalaryUSD: 90000, BenefitsScore: math.NaN(), YearsExperience: 4, DescriptionLength: 1200}},
		{JobRecord: models.JobRecord{JobID: "AI2", SalaryUSD: math.NaN(), BenefitsScore: 7.5, DescriptionLength: math.NaN()}},
	}
	skills := []models.SkillAssociation{
		{JobID: "AI1", Skill: "Python", SalaryUSD: 90000},
		{JobID: "AI1", Skill: "SQL", SalaryUSD: 90000},
		{JobID: "AI2", Skill: "Go", SalaryUSD: math.NaN()},
	}
	return jobs, skills
}

func TestLoad(t *testing.T) {
	jobs, skills := fixture()
	jobBatch, skillBatch := &recordingBatch{}, &recordingBatch{}
	conn := new(MockConn)
	conn.On("PrepareBatch", mock.Anything, insertJobs).Return(jobBatch, nil)
	conn.On("PrepareBatch", mock.Anything, insertSkills).Return(skillBatch, nil)

	err := newSink(conn).Load(context.Background(), "run-1", jobs, skills)

	require.NoError(t, err)
	assert.True(t, jobBatch.sent)
	assert.True(t, skillBatch.sent)

	t.Run("JobRows", func(t *testing.T) {
		require.Len(t, jobBatch.rows, 2)
		first := jobBatch.rows[0]
		assert.Equal(t, models.RecordUUID("AI1"), first[0])
		assert.Equal(t, "run-1", first[1])
		assert.Equal(t, int32(4), first[9])
		require.NotNil(t, first[10])
		assert.Equal(t, 90000.0, *first[10].(*float64))
		assert.Nil(t, first[23].(*float64), "missing benefits load as NULL")
		assert.Equal(t, int32(1200), *first[26].(*int32))
		assert.Equal(t, loadedAt, first[len(first)-1])
		assert.Nil(t, jobBatch.rows[1][10].(*float64), "missing salary loads as NULL")
		assert.Nil(t, jobBatch.rows[1][26].(*int32), "missing description length loads as NULL")
	})

	t.Run("SkillPositionsPerJob", func(t *testing.T) {
		require.Len(t, skillBatch.rows, 3)
		assert.Equal(t, uint16(0), skillBatch.rows[0][3])
		assert.Equal(t, uint16(1), skillBatch.rows[1][3])
		assert.Equal(t, uint16(0), skillBatch.rows[2][3])
		assert.Nil(t, skillBatch.rows[2][6].(*float64))
	})
}

func TestLoad_Empty(t *testing.T) {
	conn := new(MockConn)

	require.NoError(t, newSink(conn).Load(context.Background(), "run-1", nil, nil))
	conn.AssertNotCalled(t, "PrepareBatch", mock.Anything, mock.Anything)
}

func TestLoad_SendFailure(t *testing.T) {
	jobs, skills := fixture()
	conn := new(MockConn)
	conn.On("PrepareBatch", mock.Anything, insertJobs).Return(&recordingBatch{sendErr: errors.New("connection reset")}, nil)

	err := newSink(conn).Load(context.Background(), "run-1", jobs, skills)

	assert.True(t, domainerrors.IsType(err, domainerrors.ErrTypeUnavailable))
	assert.ErrorContains(t, err, "connection reset")
	conn.AssertNotCalled(t, "PrepareBatch", mock.Anything, insertSkills)
}

func TestLoad_PrepareFailure(t *testing.T) {
	jobs, _ := fixture()
	conn := new(MockConn)
	conn.On("PrepareBatch", mock.Anything, insertJobs).Return(nil, errors.New("table missing"))

	err := newSink(conn).Load(context.Background(), "run-1", jobs, nil)

	assert.ErrorContains(t, err, "prepare batch")
}
