package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"CowsayNews/internal/app"
	"CowsayNews/internal/config"
	"CowsayNews/internal/domain"
	"CowsayNews/internal/logging"
)

func main() {
	daemon := flag.Bool("daemon", false, "run on the configured cron schedule instead of once")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level)
	application := app.New(cfg, logger)

	ctx := context.Background()
	if *daemon {
		err = application.RunDaemon(ctx)
	} else {
		err = application.RunOnce(ctx)
	}

	if err != nil {
		// A failed publish transition still produced a draft on the
		// target; that counts as a (partial) success.
		if errors.Is(err, domain.ErrPublishTransition) {
			logger.Warn("post left in draft state", "error", err)
			return
		}
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
