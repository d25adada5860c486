package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/liigadoku/liigadoku-api/external/liiga"
	"github.com/liigadoku/liigadoku-api/internal/app"
	"github.com/liigadoku/liigadoku-api/internal/config"
	"github.com/liigadoku/liigadoku-api/internal/domain/player"
	"github.com/liigadoku/liigadoku-api/internal/infrastructure/repository/postgres"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
	"github.com/liigadoku/liigadoku-api/internal/usecase"
)

func main() {
	input := flag.String("input", "", "read season records from a JSON file instead of the upstream API")
	output := flag.String("output", "", "write fetched season records to a JSON file")
	skipDB := flag.Bool("skip-db", false, "fetch and dump only, do not write to the database")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *input, *output, *skipDB); err != nil {
		logger.Error("dataloader failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, input, output string, skipDB bool) error {
	started := time.Now()

	seasons, err := loadSeasons(ctx, cfg, logger, input)
	if err != nil {
		return err
	}
	logger.Info("season records loaded", "records", len(seasons))

	if output != "" {
		if err := dumpSeasons(output, seasons); err != nil {
			return err
		}
		logger.Info("season records dumped", "path", output)
	}

	if skipDB {
		return nil
	}
	if cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required unless -skip-db is set")
	}

	db, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	syncSvc := usecase.NewSyncService(
		postgres.NewPlayerRepository(db),
		postgres.NewPlayerDirectoryRepository(db),
		postgres.NewPairingRepository(db),
		cfg.SyncPoolSize,
		logger,
	)

	report, err := syncSvc.Sync(ctx, seasons)
	if err != nil {
		return err
	}

	logger.Info("sync finished",
		"season_records", report.SeasonRecords,
		"dropped_records", report.DroppedRecords,
		"players", report.Players,
		"answer_sets", report.AnswerSets,
		"duration", time.Since(started),
	)

	return nil
}

func loadSeasons(ctx context.Context, cfg config.Config, logger *logging.Logger, input string) ([]player.Season, error) {
	if input != "" {
		raw, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		var seasons []player.Season
		if err := sonic.Unmarshal(raw, &seasons); err != nil {
			return nil, fmt.Errorf("decode input file %s: %w", input, err)
		}
		return seasons, nil
	}

	client := liiga.NewClient(liiga.Config{
		BaseURL:       cfg.LiigaBaseURL,
		Timeout:       cfg.LiigaTimeout,
		BatchInterval: cfg.LiigaBatchInterval,
	}, logger)

	ids, err := client.FetchSeasonPersonIDs(ctx, cfg.LiigaStartSeason, cfg.LiigaEndSeason)
	if err != nil {
		return nil, fmt.Errorf("fetch season person ids: %w", err)
	}
	logger.Info("person ids fetched",
		"start_season", cfg.LiigaStartSeason,
		"end_season", cfg.LiigaEndSeason,
		"ids", len(ids),
	)

	seasons, err := client.FetchProfiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch profiles: %w", err)
	}

	preSeason, err := client.FetchPreSeason(ctx, cfg.LiigaEndSeason+1)
	if err != nil {
		logger.Warn("pre-season fetch failed, continuing without it", "error", err)
	} else {
		seasons = append(seasons, preSeason...)
	}

	return seasons, nil
}

func dumpSeasons(path string, seasons []player.Season) error {
	raw, err := sonic.MarshalIndent(seasons, "", "  ")
	if err != nil {
		return fmt.Errorf("encode season records: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	return nil
}
