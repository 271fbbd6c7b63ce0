// Command auto-archive archives every live article older than the configured
// age. It is the one-shot form of the scheduled job, for environments that
// drive maintenance from an external cron.
//
// Flags:
//
//	--older-than   override ARTICLES_AUTO_ARCHIVE_AFTER (e.g. 720h)
//	--config       YAML file to read instead of CONFIG_PATH
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/newsroom-backend/internal/app"
	"github.com/heartmarshall/newsroom-backend/internal/config"
)

func main() {
	olderThan := flag.Duration("older-than", 0, "archive articles dated before now minus this duration")
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	_ = godotenv.Load()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *olderThan > 0 {
		cfg.Articles.AutoArchiveAfter = *olderThan
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("initialize", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer c.Close(context.Background()) //nolint:errcheck

	n, err := c.Articles.AutoArchive(ctx, cfg.Articles.AutoArchiveAfter)
	if err != nil {
		logger.Error("auto-archive failed",
			slog.String("error", err.Error()),
			slog.Duration("older_than", cfg.Articles.AutoArchiveAfter),
		)
		c.Close(context.Background()) //nolint:errcheck
		os.Exit(1)
	}

	logger.Info("auto-archive completed",
		slog.Int("archived", n),
		slog.Duration("older_than", cfg.Articles.AutoArchiveAfter),
	)
}
