package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"BillFighter/internal/app"
	"BillFighter/internal/config"
	"BillFighter/internal/logging"
)

func main() {
	var (
		file     = flag.String("file", "", "path to the uploaded bill (PDF)")
		prompt   = flag.String("prompt", "", "optional user prompt/instructions")
		model    = flag.String("model", "", "completion model override")
		rounds   = flag.Int("rounds", 3, "number of fighter vs. hospital debate rounds")
		noDebate = flag.Bool("no-debate", false, "skip the debate simulation")
	)
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()
	if *model != "" {
		cfg.OpenAI.Model = *model
	}
	logger := logging.New(cfg.Logging.Level)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: billfighter -file bill.pdf [-prompt s] [-model m] [-rounds n] [-no-debate]")
		os.Exit(2)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("configuration invalid", "error", err)
		emitError(err)
		os.Exit(1)
	}

	application := app.New(cfg, logger)

	report, err := application.Run(ctx, app.RunOptions{
		File:       *file,
		Prompt:     *prompt,
		Rounds:     *rounds,
		SkipDebate: *noDebate,
	})
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		emitError(err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	if err := encoder.Encode(report); err != nil {
		logger.Error("encode report", "error", err)
		os.Exit(1)
	}
}

func emitError(err error) {
	_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"error": err.Error()})
}
