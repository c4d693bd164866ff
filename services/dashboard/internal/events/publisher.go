package events

import (
	"context"
	"encoding/json"
	"time"

	"aijobs/common/telemetry"
	"aijobs/services/dashboard/internal/config"
	"aijobs/services/dashboard/internal/errors"
	"aijobs/services/dashboard/internal/models"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("aijobs/dashboard/events")

const (
	PreparedSubject = "dashboard.prepared"
)

// Publisher announces completed runs.
type Publisher interface {
	PublishPrepared(ctx context.Context, summary *models.RunSummary) error
	Close()
}

// conn is the subset of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Close()
}

type natsPublisher struct {
	conn   conn
	logger *zap.Logger
}

// NewPublisher connects to cfg.NATSURL. An empty URL yields a publisher that
// drops every event.
func NewPublisher(logger *zap.Logger, cfg *config.Config) (Publisher, error) {
	if cfg.NATSURL == "" {
		logger.Info("NATS not configured, run events disabled")
		return NopPublisher{}, nil
	}

	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	nc, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, errors.Unavailable("connecting to NATS", err)
	}

	return newPublisher(nc, logger), nil
}

func newPublisher(c conn, logger *zap.Logger) *natsPublisher {
	return &natsPublisher{
		conn:   c,
		logger: logger,
	}
}

func (p *natsPublisher) PublishPrepared(ctx context.Context, summary *models.RunSummary) error {
	_, span := tracer.Start(ctx, "PublishPrepared")
	defer span.End()

	data, err := json.Marshal(summary)
	if err != nil {
		telemetry.RecordError(span, err)
		return errors.Internal("marshaling run summary", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", PreparedSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(PreparedSubject, data); err != nil {
		telemetry.RecordError(span, err)
		p.logger.Error("failed to publish run summary",
			zap.String("run_id", summary.RunID),
			zap.Error(err))
		return errors.Unavailable("publishing to NATS", err)
	}

	p.logger.Debug("published run summary",
		zap.String("run_id", summary.RunID),
		zap.String("subject", PreparedSubject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishPrepared(context.Context, *models.RunSummary) error { return nil }

func (NopPublisher) Close() {}
