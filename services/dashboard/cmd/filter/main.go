package main

import (
	"context"
	"fmt"
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
		result, err := p.Filter(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Number of matching jobs: %d of %d\n", result.FilteredRows, result.RawRows)
		fmt.Printf("Filtered file saved as: %s\n", result.Output)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
}
