// Command prepare runs the whole dashboard pipeline. An optional argument
// overrides the input workbook path.
package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"aijobs/services/dashboard/internal/app"
	"aijobs/services/dashboard/internal/config"
	"aijobs/services/dashboard/internal/processor"
)

func main() {
	configure := func(cfg *config.Config) {
		if len(os.Args) > 1 {
			cfg.InputFile = os.Args[1]
		}
	}

	err := app.Run(configure, func(ctx context.Context, p *processor.Processor, logger *zap.Logger) error {
		summary, err := p.Prepare(ctx)
		if err != nil {
			if summary != nil {
				logger.Warn("Artifacts written but delivery incomplete", zap.String("run_id", summary.RunID))
			}
			return err
		}

		for _, kpi := range summary.KPIs {
			logger.Info("KPI", zap.String("name", kpi.Name), zap.Any("value", kpi.Value))
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
}
