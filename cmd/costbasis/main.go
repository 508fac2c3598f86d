package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cryptoclient/internal/config"
	"cryptoclient/internal/costbasis"
	"cryptoclient/internal/rest"
	"cryptoclient/internal/trading"
)

func main() {
	assets := flag.String("assets", "", "comma-separated asset codes to restrict to (default: all holdings)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline for the computation")
	flag.Parse()

	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zerolog.TimeFieldFormat = time.RFC3339
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.Logging)

	client := trading.NewClient(cfg.API.Key, cfg.API.PrivateKeySeed, cfg.API.BaseURL,
		rest.WithTimeout(cfg.HTTP.Timeout),
		rest.WithRateLimit(cfg.HTTP.RateLimitPerSecond, cfg.HTTP.RateLimitBurst),
		rest.WithLogger(log.Logger),
	)
	calc := costbasis.NewCalculator(client, costbasis.WithLogger(log.Logger))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var assetCodes []string
	if *assets != "" {
		assetCodes = strings.Split(*assets, ",")
	}

	summaries, err := calc.ComputeCostBasis(ctx, assetCodes...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compute cost basis")
	}

	if len(summaries) == 0 {
		log.Info().Msg("No holdings found")
		return
	}

	fmt.Printf("%-10s %18s %16s %18s\n", "ASSET", "QUANTITY", "TOTAL COST", "AVG COST/UNIT")
	for _, s := range summaries {
		fmt.Printf("%-10s %18s %16s %18s\n",
			s.AssetCode,
			s.CurrentQuantity.String(),
			s.TotalCost.StringFixed(2),
			s.AverageCostPerUnit.StringFixed(8),
		)
	}
}

func setupLogging(cfg config.LoggingConfig) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
