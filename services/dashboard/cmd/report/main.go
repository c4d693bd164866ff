// Command report prints the dashboard guide for the filtered workbook, or for
// the workbook given as the first argument.
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
			cfg.FilteredFile = os.Args[1]
		}
	}

	err := app.Run(configure, func(ctx context.Context, p *processor.Processor, _ *zap.Logger) error {
		return p.Report(ctx, os.Stdout)
	})
	if err != nil {
		log.Fatal(err)
	}
}
