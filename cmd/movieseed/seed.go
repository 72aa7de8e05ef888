package main

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"moviecatalog/genre"
	"moviecatalog/movie"
	"moviecatalog/postgres"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const noGenres = "(no genres listed)"

// titleYear matches MovieLens titles such as "Toy Story (1995)".
var titleYear = regexp.MustCompile(`^(.+?)\s*\((\d{4})(?:[-–]\d{0,4})?\)\s*$`)

type importStats struct {
	Movies  int
	Genres  int
	Skipped int
}

// seeder imports MovieLens rows through the catalog repositories. Genres are
// created on first sight and cached by name.
type seeder struct {
	movies movie.Repository
	genres genre.Repository
	log    *zap.SugaredLogger

	genreIDs map[string]int
}

func newSeeder(ctx context.Context, db *gorm.DB, movies movie.Repository, genres genre.Repository, log *zap.SugaredLogger) (*seeder, error) {
	var existing []postgres.GenreModel
	if err := db.WithContext(ctx).Find(&existing).Error; err != nil {
		return nil, err
	}

	ids := make(map[string]int, len(existing))
	for _, g := range existing {
		ids[g.Name] = int(g.ID)
	}

	return &seeder{movies: movies, genres: genres, log: log, genreIDs: ids}, nil
}

func (s *seeder) Import(ctx context.Context, r io.Reader, limit int) (importStats, error) {
	var stats importStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idxTitle, idxGenres, err := parseHeader(reader)
	if err != nil {
		return stats, err
	}

	for limit <= 0 || stats.Movies < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}

		m, names, ok := parseRecord(record, idxTitle, idxGenres)
		if !ok {
			stats.Skipped++
			s.log.Debugw("skipping row", "record", record)
			continue
		}

		for _, name := range names {
			id, created, err := s.genreID(ctx, name)
			if err != nil {
				return stats, err
			}
			if created {
				stats.Genres++
			}
			m.Genres = append(m.Genres, genre.Genre{ID: id})
		}

		if _, err := s.movies.CreateMovie(ctx, m); err != nil {
			return stats, err
		}
		stats.Movies++
	}

	return stats, nil
}

func (s *seeder) genreID(ctx context.Context, name string) (int, bool, error) {
	if id, ok := s.genreIDs[name]; ok {
		return id, false, nil
	}

	g, err := s.genres.CreateGenre(ctx, genre.Genre{Name: name})
	if err != nil {
		return 0, false, err
	}
	s.genreIDs[name] = g.ID
	return g.ID, true, nil
}

func parseHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxTitle, idxGenres := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			idxTitle = i
		case "genres":
			idxGenres = i
		}
	}
	if idxTitle == -1 || idxGenres == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}

	return idxTitle, idxGenres, nil
}

// parseRecord splits the release year off the title. Rows without a year
// cannot be stored and are rejected.
func parseRecord(record []string, idxTitle, idxGenres int) (movie.Movie, []string, bool) {
	if idxTitle >= len(record) || idxGenres >= len(record) {
		return movie.Movie{}, nil, false
	}

	match := titleYear.FindStringSubmatch(strings.TrimSpace(record[idxTitle]))
	if match == nil {
		return movie.Movie{}, nil, false
	}
	year, err := strconv.Atoi(match[2])
	if err != nil {
		return movie.Movie{}, nil, false
	}

	var names []string
	if raw := strings.TrimSpace(record[idxGenres]); raw != "" && raw != noGenres {
		for _, name := range strings.Split(raw, "|") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}

	return movie.Movie{Title: match[1], Year: year}, names, true
}
