package main

import (
	"context"
	"moviecatalog/genre"
	"moviecatalog/movie"
	"moviecatalog/pkg/logger"
	"moviecatalog/postgres"
	"moviecatalog/sqlite"
	"strings"
	"testing"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `movieId,title,genres
1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy
2,Jumanji (1995),Adventure|Children|Fantasy
3,"American President, The (1995)",Comedy|Drama|Romance
4,Unknown Year,Drama
5,Hyena Road,(no genres listed)
6,"Babylon 5 (1994)",Sci-Fi
`

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   movie.Movie
		genres []string
		ok     bool
	}{
		{
			name:   "title with year",
			record: []string{"1", "Toy Story (1995)", "Adventure|Animation"},
			want:   movie.Movie{Title: "Toy Story", Year: 1995},
			genres: []string{"Adventure", "Animation"},
			ok:     true,
		},
		{
			name:   "parentheses inside title",
			record: []string{"7", "City of Lost Children, The (Cité des enfants perdus, La) (1995)", "Drama"},
			want:   movie.Movie{Title: "City of Lost Children, The (Cité des enfants perdus, La)", Year: 1995},
			genres: []string{"Drama"},
			ok:     true,
		},
		{
			name:   "year range",
			record: []string{"8", "Fawlty Towers (1975-1979)", "Comedy"},
			want:   movie.Movie{Title: "Fawlty Towers", Year: 1975},
			genres: []string{"Comedy"},
			ok:     true,
		},
		{
			name:   "no genres listed",
			record: []string{"9", "Heat (1995) ", "(no genres listed)"},
			want:   movie.Movie{Title: "Heat", Year: 1995},
			ok:     true,
		},
		{
			name:   "missing year",
			record: []string{"10", "Hyena Road", "Drama"},
			ok:     false,
		},
		{
			name:   "short record",
			record: []string{"11"},
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, genres, ok := parseRecord(tt.record, 1, 2)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.genres, genres)
			}
		})
	}
}

func TestSeeder_Import(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db, err := sqlite.NewConnection(":memory:")
	require.NoError(t, err)
	_, err = sqlite.Migrate(db, migrate.Up)
	require.NoError(t, err)

	movies := postgres.NewMovieRepository(db)
	genres := postgres.NewGenreRepository(db)
	_, err = genres.CreateGenre(ctx, genre.Genre{Name: "Drama"})
	require.NoError(t, err)

	s, err := newSeeder(ctx, db, movies, genres, logger.NOOPLogger)
	require.NoError(t, err)

	// Act
	stats, err := s.Import(ctx, strings.NewReader(sampleCSV), 0)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Movies)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 7, stats.Genres, "Drama existed before the import")

	page, err := movies.ListMovies(ctx, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 4, page.Total)
	assert.Equal(t, "Toy Story", page.Movies[0].Title)
	assert.Equal(t, 1995, page.Movies[0].Year)
	assert.Len(t, page.Movies[0].Genres, 5)
	assert.Equal(t, "American President, The", page.Movies[2].Title)
	assert.Equal(t, "Babylon 5", page.Movies[3].Title)
}

func TestSeeder_ImportLimit(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.NewConnection(":memory:")
	require.NoError(t, err)
	_, err = sqlite.Migrate(db, migrate.Up)
	require.NoError(t, err)

	s, err := newSeeder(ctx, db, postgres.NewMovieRepository(db), postgres.NewGenreRepository(db), logger.NOOPLogger)
	require.NoError(t, err)

	stats, err := s.Import(ctx, strings.NewReader(sampleCSV), 2)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Movies)
}

func TestSeeder_MissingColumns(t *testing.T) {
	s := &seeder{log: logger.NOOPLogger, genreIDs: map[string]int{}}

	_, err := s.Import(context.Background(), strings.NewReader("movieId,name\n1,x\n"), 0)

	assert.Error(t, err)
}
