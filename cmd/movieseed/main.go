package main

import (
	"context"
	"fmt"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/database"
	"moviecatalog/pkg/logger"
	"moviecatalog/postgres"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cmd := &cli.Command{
		Name:  "movieseed",
		Usage: "import MovieLens movies and genres into the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "csv", Usage: "path to movies.csv, skips the download"},
			&cli.StringFlag{Name: "url", Value: defaultMovieLensURL, Usage: "MovieLens zip URL"},
			&cli.IntFlag{Name: "limit", Usage: "import at most this many rows, 0 imports all"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return seed(ctx, cfg, log, cmd.String("csv"), cmd.String("url"), int(cmd.Int("limit")))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Errorw("import failed", zap.Error(err))
		os.Exit(1)
	}
}

func seed(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger, csvPath, zipURL string, limit int) error {
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}

	if csvPath == "" {
		path, cleanup, err := downloadAndExtract(ctx, zipURL)
		if err != nil {
			return fmt.Errorf("download dataset: %w", err)
		}
		defer cleanup()
		csvPath = path
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer file.Close()

	s, err := newSeeder(ctx, db, postgres.NewMovieRepository(db), postgres.NewGenreRepository(db), log)
	if err != nil {
		return err
	}

	stats, err := s.Import(ctx, file, limit)
	if err != nil {
		return err
	}

	log.Infow("import completed", "movies", stats.Movies, "genres", stats.Genres, "skipped", stats.Skipped)
	return nil
}
