// Package warehouse loads the enriched fact table and the skills table of a
// run into ClickHouse.
package warehouse

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"aijobs/common/telemetry"
	"aijobs/services/dashboard/internal/errors"
	"aijobs/services/dashboard/internal/models"
)

const (
	insertJobs = `
		INSERT INTO dashboard_jobs (
			id, run_id, job_id, job_title, industry, employment_type,
			experience_level, experience_level_full, experience_category,
			years_experience, salary_usd, salary_range, remote_ratio, remote_category,
			company_size, company_name, company_location, employee_residence,
			posting_date, posting_year_month, posting_quarter, application_deadline,
			is_active, benefits_score, benefits_category, required_skills,
			job_description_length, loaded_at
		)`

	insertSkills = `
		INSERT INTO dashboard_job_skills (
			job_uuid, run_id, job_id, position, skill, job_title, salary_usd,
			experience_level, industry, company_size, loaded_at
		)`
)

// Sink receives the tables of a finished run.
type Sink interface {
	Load(ctx context.Context, runID string, jobs []models.EnrichedJobRecord, skills []models.SkillAssociation) error
}

// Conn is the part of clickhouse.Conn the loader uses.
type Conn interface {
	PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error)
}

type ClickHouseSink struct {
	conn   Conn
	logger *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func NewClickHouseSink(conn Conn, logger *zap.Logger) *ClickHouseSink {
	return &ClickHouseSink{
		conn:   conn,
		logger: logger,
		tracer: telemetry.GetTracer("aijobs/dashboard/warehouse"),
		now:    time.Now,
	}
}

func (s *ClickHouseSink) Load(ctx context.Context, runID string, jobs []models.EnrichedJobRecord, skills []models.SkillAssociation) error {
	ctx, span := s.tracer.Start(ctx, "Load")
	defer span.End()
	span.SetAttributes(
		telemetry.Int("jobs", len(jobs)),
		telemetry.Int("skills", len(skills)),
	)

	loadedAt := s.now().UTC()

	if err := s.send(ctx, insertJobs, len(jobs), func(batch driver.Batch) error {
		for _, job := range jobs {
			if err := batch.Append(jobRow(runID, job, loadedAt)...); err != nil {
				return fmt.Errorf("append job %s: %w", job.JobID, err)
			}
		}
		return nil
	}); err != nil {
		telemetry.RecordError(span, err)
		return errors.Unavailable("loading dashboard_jobs", err)
	}

	if err := s.send(ctx, insertSkills, len(skills), func(batch driver.Batch) error {
		position := make(map[string]uint16)
		for _, skill := range skills {
			if err := batch.Append(skillRow(runID, skill, position[skill.JobID], loadedAt)...); err != nil {
				return fmt.Errorf("append skill of job %s: %w", skill.JobID, err)
			}
			position[skill.JobID]++
		}
		return nil
	}); err != nil {
		telemetry.RecordError(span, err)
		return errors.Unavailable("loading dashboard_job_skills", err)
	}

	s.logger.Info("Loaded run into warehouse",
		zap.String("run_id", runID),
		zap.Int("jobs", len(jobs)),
		zap.Int("skills", len(skills)),
	)
	return nil
}

func (s *ClickHouseSink) send(ctx context.Context, query string, rows int, fill func(driver.Batch) error) error {
	if rows == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	if err := fill(batch); err != nil {
		batch.Abort()
		return err
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func nullableFloat(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

func nullableInt32(v float64, ok bool) *int32 {
	if !ok {
		return nil
	}
	n := int32(v)
	return &n
}

func jobRow(runID string, job models.EnrichedJobRecord, loadedAt time.Time) []any {
	return []any{
		models.RecordUUID(job.JobID),
		runID,
		job.JobID,
		job.JobTitle,
		job.Industry,
		job.EmploymentType,
		job.ExperienceLevel,
		job.ExperienceLevelFull,
		job.ExperienceCategory,
		int32(job.YearsExperience),
		nullableFloat(job.SalaryUSD, job.HasSalary()),
		job.SalaryRange,
		int32(job.RemoteRatio),
		job.RemoteCategory,
		job.CompanySize,
		job.CompanyName,
		job.CompanyLocation,
		job.EmployeeResidence,
		job.PostingDate,
		job.PostingYearMonth,
		uint8(job.PostingQuarter),
		job.Deadline,
		job.IsActive,
		nullableFloat(job.BenefitsScore, job.HasBenefits()),
		job.BenefitsCategory,
		job.RequiredSkills,
		nullableInt32(job.DescriptionLength, job.HasDescriptionLength()),
		loadedAt,
	}
}

func skillRow(runID string, skill models.SkillAssociation, position uint16, loadedAt time.Time) []any {
	return []any{
		models.RecordUUID(skill.JobID),
		runID,
		skill.JobID,
		position,
		skill.Skill,
		skill.JobTitle,
		nullableFloat(skill.SalaryUSD, !math.IsNaN(skill.SalaryUSD)),
		skill.ExperienceLevel,
		skill.Industry,
		skill.CompanySize,
		loadedAt,
	}
}

// NopSink is used when no warehouse is configured.
type NopSink struct{}

func (NopSink) Load(context.Context, string, []models.EnrichedJobRecord, []models.SkillAssociation) error {
	return nil
}
