package httpserver_test

import (
	"context"
	"encoding/json"
	"fmt"
	"moviecatalog/actor"
	"moviecatalog/genre"
	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/postgres"
	"net/http"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func TestCatalogIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := MustCreateTestDatabase(t)
	MigrateTestDatabase(t, db, "../migrations")
	server := MustCreateServer(t, db)

	keanu := createResource(t, server, "/actors", `{"name":"Keanu Reeves"}`)
	carrie := createResource(t, server, "/actors", `{"name":"Carrie-Anne Moss"}`)
	scifi := createResource(t, server, "/genres", `{"name":"Sci-Fi"}`)

	// Create
	response := makeJSONRequest(server, http.MethodPost, "/movies",
		fmt.Sprintf(`{"title":"Matrix","year":1999,"actor_ids":[%d,%d],"genre_ids":[%d]}`, keanu, carrie, scifi))
	require.Equal(t, http.StatusCreated, response.Code, response.Body.String())
	var created httpserver.MovieResponse
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &created))
	assert.Equal(t, "Matrix", created.Title)
	assert.Len(t, created.Actors, 2)
	assert.Len(t, created.Genres, 1)

	// Unknown actor
	response = makeJSONRequest(server, http.MethodPost, "/movies", `{"title":"Ghost","year":2000,"actor_ids":[9999]}`)
	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.JSONEq(t, `{"message":"Some actors don't exist"}`, response.Body.String())

	// Edit replaces relations
	response = makeJSONRequest(server, http.MethodPut, fmt.Sprintf("/movies/%d", created.ID),
		fmt.Sprintf(`{"title":"The Matrix","year":1999,"actor_ids":[%d]}`, keanu))
	require.Equal(t, http.StatusOK, response.Code, response.Body.String())
	var edited httpserver.MovieResponse
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &edited))
	assert.Equal(t, []httpserver.ActorResponse{{ID: keanu, Name: "Keanu Reeves"}}, edited.Actors)
	assert.Empty(t, edited.Genres)

	// Aggregation
	response = makeRequest(server, http.MethodGet, "/actors/aggregated", nil)
	require.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"actors":[{"name":"Keanu Reeves","year":1999,"number":1}],"total":1,"limit":100,"offset":0}`,
		response.Body.String())

	// Delete
	response = makeRequest(server, http.MethodDelete, fmt.Sprintf("/movies/%d", created.ID), nil)
	assert.Equal(t, http.StatusNoContent, response.Code)
	response = makeRequest(server, http.MethodGet, fmt.Sprintf("/movies/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.JSONEq(t, `{"message":"Movie not found"}`, response.Body.String())
}

func createResource(t *testing.T, server *httpserver.Server, path, body string) int {
	t.Helper()
	response := makeJSONRequest(server, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, response.Code, response.Body.String())

	var resp struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
	return resp.ID
}

func MustCreateServer(t testing.TB, db *gorm.DB) *httpserver.Server {
	t.Helper()

	server, err := httpserver.New(
		httpserver.WithMovieService(movie.NewUsecase(postgres.NewMovieRepository(db))),
		httpserver.WithActorService(actor.NewUsecase(postgres.NewActorRepository(db))),
		httpserver.WithGenreService(genre.NewUsecase(postgres.NewGenreRepository(db))),
	)
	require.NoError(t, err)

	return server
}

// MustCreateTestDatabase starts a PostgreSQL container and returns a GORM connection to it.
func MustCreateTestDatabase(t testing.TB) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	dbName, dbUser, dbPass := "test_catalog", "test", "testpass"
	postgre, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		pgcontainer.WithDatabase(dbName),
		pgcontainer.WithUsername(dbUser),
		pgcontainer.WithPassword(dbPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		err := postgre.Terminate(ctx)
		assert.NoError(t, err, "failed to terminate postgres container")
	})

	host, port := extractHostAndPort(t, ctx, postgre)
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   dbName,
		DBUser:   dbUser,
		Password: dbPass,
		Host:     host,
		Port:     port.Port(),
	})
	require.NoError(t, err, "failed to connect to postgres database")

	return db
}

func extractHostAndPort(t testing.TB, ctx context.Context, postgre *pgcontainer.PostgresContainer) (string, nat.Port) {
	t.Helper()
	host, err := postgre.Host(ctx)
	require.NoError(t, err, "failed to get container host")

	port, err := postgre.MappedPort(ctx, "5432")
	require.NoError(t, err, "failed to get mapped port")
	return host, port
}

// MigrateTestDatabase runs all migration files against the test database
func MigrateTestDatabase(t testing.TB, db *gorm.DB, migrationPath string) {
	t.Helper()
	migrations := &migrate.FileMigrationSource{
		Dir: migrationPath,
	}

	sqlDB, err := db.DB()
	require.NoError(t, err, "failed to get sql.DB from gorm.DB")

	_, err = migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	require.NoError(t, err, "failed to run database migrations")
}
