package processor

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"aijobs/common/checksum"
	"aijobs/common/telemetry"
	"aijobs/services/dashboard/internal/aggregate"
	"aijobs/services/dashboard/internal/config"
	"aijobs/services/dashboard/internal/enrich"
	"aijobs/services/dashboard/internal/errors"
	"aijobs/services/dashboard/internal/events"
	"aijobs/services/dashboard/internal/models"
	"aijobs/services/dashboard/internal/report"
	"aijobs/services/dashboard/internal/residence"
	"aijobs/services/dashboard/internal/snapshot"
	"aijobs/services/dashboard/internal/warehouse"
	"aijobs/services/dashboard/internal/workbook"
)

// tableSheet is the sheet name of single-table artifacts.
const tableSheet = "Sheet1"

type Processor struct {
	config    *config.Config
	logger    *zap.Logger
	tracer    trace.Tracer
	warehouse warehouse.Sink
	publisher events.Publisher
	snapshots snapshot.Store
	now       func() time.Time
	newRunID  func() string
}

func NewProcessor(
	cfg *config.Config,
	logger *zap.Logger,
	sink warehouse.Sink,
	publisher events.Publisher,
	snapshots snapshot.Store,
) *Processor {
	return &Processor{
		config:    cfg,
		logger:    logger,
		tracer:    telemetry.GetTracer("aijobs/dashboard/processor"),
		warehouse: sink,
		publisher: publisher,
		snapshots: snapshots,
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
}

// FilterResult reports the row counts of a residence filter run.
type FilterResult struct {
	RawRows      int
	FilteredRows int
	Output       string
}

// Filter writes the rows of the input workbook whose residence matches the
// configured target to the filtered workbook.
func (p *Processor) Filter(ctx context.Context) (*FilterResult, error) {
	ctx, span := p.tracer.Start(ctx, "Filter")
	defer span.End()

	raw, filtered, err := p.filter(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return &FilterResult{RawRows: raw.Len(), FilteredRows: filtered.Len(), Output: p.config.FilteredFile}, nil
}

func (p *Processor) filter(ctx context.Context) (raw, filtered workbook.Table, err error) {
	_, span := p.tracer.Start(ctx, "FilterResidence")
	defer span.End()

	raw, filtered, err = residence.Load(p.config.InputFile, p.config.TargetResidence)
	if err != nil {
		return raw, filtered, err
	}

	if err := workbook.Write(p.config.FilteredFile, workbook.Sheet{
		Name:    tableSheet,
		Columns: filtered.Header,
		Rows:    models.TypedRows(filtered),
	}); err != nil {
		return raw, filtered, err
	}

	span.SetAttributes(
		telemetry.String("residence", p.config.TargetResidence),
		telemetry.Int("rows.raw", raw.Len()),
		telemetry.Int("rows.filtered", filtered.Len()),
	)
	p.logger.Info("Filtered jobs by residence",
		zap.String("residence", p.config.TargetResidence),
		zap.Int("rows", raw.Len()),
		zap.Int("matched", filtered.Len()),
		zap.String("path", p.config.FilteredFile),
	)
	return raw, filtered, nil
}

// Prepare runs the whole pipeline over the configured input: filter, enrich,
// aggregate and write every artifact, then hand the run to the sinks. The
// summary is returned even when a sink fails; the error then carries every
// sink failure.
func (p *Processor) Prepare(ctx context.Context) (*models.RunSummary, error) {
	ctx, span := p.tracer.Start(ctx, "Prepare")
	defer span.End()

	summary := &models.RunSummary{
		RunID:           p.newRunID(),
		InputFile:       p.config.InputFile,
		TargetResidence: p.config.TargetResidence,
		ReferenceTime:   p.now(),
	}
	span.SetAttributes(telemetry.String("run.id", summary.RunID))
	logger := p.logger.With(zap.String("run_id", summary.RunID))

	if err := workbook.ValidatePath(p.config.InputFile); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	sum, err := checksum.FileChecksum(p.config.InputFile)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, errors.InvalidInput("reading input workbook", err)
	}
	summary.InputChecksum = sum

	if last, err := p.snapshots.Last(ctx, sum, p.config.TargetResidence); err != nil {
		logger.Warn("Failed to read previous run", zap.Error(err))
	} else if last != nil {
		logger.Info("Input unchanged since previous run",
			zap.String("previous_run_id", last.RunID),
			zap.Time("previous_completed_at", last.CompletedAt),
		)
	}

	raw, filtered, err := p.filter(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	summary.RawRows = raw.Len()
	summary.FilteredRows = filtered.Len()

	result, err := p.enrich(ctx, filtered, summary.ReferenceTime)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	summary.EnrichedRows = len(result.Jobs)
	summary.SkillRows = len(result.Skills)

	if err := p.writeArtifacts(ctx, result); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	summary.KPIs = aggregate.KPIs(result.Jobs, result.Skills)
	summary.Outputs = []string{
		p.config.FilteredFile,
		p.config.MainTableFile,
		p.config.SkillsTableFile,
		p.config.SummaryFile,
	}
	for _, job := range result.Jobs {
		if job.IsActive {
			summary.ActiveJobs++
		}
	}
	summary.CompletedAt = p.now()

	if err := p.publish(ctx, summary, result); err != nil {
		telemetry.RecordError(span, err)
		return summary, err
	}

	logger.Info("Dashboard data prepared",
		zap.Int("jobs", summary.EnrichedRows),
		zap.Int("skills", summary.SkillRows),
		zap.Strings("outputs", summary.Outputs),
	)
	return summary, nil
}

func (p *Processor) enrich(ctx context.Context, table workbook.Table, now time.Time) (enrich.Result, error) {
	_, span := p.tracer.Start(ctx, "Enrich")
	defer span.End()

	records, err := models.ParseJobRecords(table)
	if err != nil {
		telemetry.RecordError(span, err)
		return enrich.Result{}, err
	}

	result := enrich.Enrich(records, now)
	dist := enrich.Summarize(result)

	span.SetAttributes(
		telemetry.Int("rows.enriched", len(result.Jobs)),
		telemetry.Int("rows.skills", len(result.Skills)),
	)
	p.logger.Info("Added calculated columns",
		zap.Int("jobs", len(result.Jobs)),
		zap.Int("active", dist.Active),
		zap.Any("remote_category", dist.RemoteCategory),
		zap.Any("salary_range", dist.SalaryRange),
		zap.Any("experience_category", dist.ExperienceCategory),
		zap.Any("benefits_category", dist.BenefitsCategory),
	)
	p.logger.Info("Created skills table",
		zap.Int("associations", len(result.Skills)),
		zap.Int("unique_skills", dist.UniqueSkills),
		zap.Strings("top_skills", aggregate.Keys(aggregate.TopSkills(result.Skills, p.config.TopSkills))),
	)
	return result, nil
}

func (p *Processor) writeArtifacts(ctx context.Context, result enrich.Result) error {
	_, span := p.tracer.Start(ctx, "WriteArtifacts")
	defer span.End()

	if err := workbook.Write(p.config.MainTableFile, workbook.Sheet{
		Name:    tableSheet,
		Columns: models.FactColumns,
		Rows:    slice.Map(result.Jobs, func(_ int, job models.EnrichedJobRecord) []any { return job.Row() }),
	}); err != nil {
		return err
	}
	p.logger.Info("Saved enhanced table", zap.String("path", p.config.MainTableFile))

	if err := workbook.Write(p.config.SkillsTableFile, workbook.Sheet{
		Name:    tableSheet,
		Columns: models.SkillColumns,
		Rows:    slice.Map(result.Skills, func(_ int, s models.SkillAssociation) []any { return s.Row() }),
	}); err != nil {
		return err
	}
	p.logger.Info("Saved skills table", zap.String("path", p.config.SkillsTableFile))

	sheets := aggregate.Sheets(result.Jobs, result.Skills)
	if err := workbook.Write(p.config.SummaryFile, sheets...); err != nil {
		return err
	}
	for _, sheet := range sheets {
		p.logger.Debug("Wrote summary sheet", zap.String("sheet", sheet.Name), zap.Int("rows", len(sheet.Rows)))
	}
	p.logger.Info("Saved summary tables",
		zap.String("path", p.config.SummaryFile),
		zap.Int("sheets", len(sheets)),
	)
	return nil
}

// publish hands a finished run to every sink. Each sink runs regardless of
// the others failing.
func (p *Processor) publish(ctx context.Context, summary *models.RunSummary, result enrich.Result) error {
	ctx, span := p.tracer.Start(ctx, "Publish")
	defer span.End()

	var errs []error
	if err := p.warehouse.Load(ctx, summary.RunID, result.Jobs, result.Skills); err != nil {
		p.logger.Error("Failed to load warehouse", zap.String("run_id", summary.RunID), zap.Error(err))
		errs = append(errs, err)
	}
	if err := p.publisher.PublishPrepared(ctx, summary); err != nil {
		p.logger.Error("Failed to publish run", zap.String("run_id", summary.RunID), zap.Error(err))
		errs = append(errs, err)
	}
	if err := p.snapshots.Save(ctx, summary); err != nil {
		p.logger.Error("Failed to save run snapshot", zap.String("run_id", summary.RunID), zap.Error(err))
		errs = append(errs, err)
	}
	return stderrors.Join(errs...)
}

// Report renders the console dashboard guide from the filtered workbook.
func (p *Processor) Report(ctx context.Context, out io.Writer) error {
	ctx, span := p.tracer.Start(ctx, "Report")
	defer span.End()

	table, err := workbook.Read(p.config.FilteredFile)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	result, err := p.enrich(ctx, table, p.now())
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	if err := report.Render(out, result.Jobs, result.Skills, report.Options{
		Title:               p.config.TargetResidence + " AI Jobs",
		TopRoles:            p.config.TopRoles,
		TopSkills:           p.config.TopSkills,
		TopRolesBySalary:    p.config.TopRolesBySalary,
		HighQualityBenefits: p.config.HighQualityBenefits,
	}); err != nil {
		telemetry.RecordError(span, err)
		return errors.Internal("writing report", err)
	}
	return nil
}
