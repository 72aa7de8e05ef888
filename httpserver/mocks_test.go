package httpserver_test

import (
	"context"
	"moviecatalog/actor"
	"moviecatalog/genre"
	"moviecatalog/movie"

	"github.com/stretchr/testify/mock"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) GetMovie(ctx context.Context, id int) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) ListMovies(ctx context.Context, offset, limit int) (movie.Page, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockMovieService) CreateMovie(ctx context.Context, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) EditMovie(ctx context.Context, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) DeleteMovie(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockActorService struct {
	mock.Mock
}

func (m *MockActorService) GetActorsAggregated(ctx context.Context, offset, limit int) (actor.AggregatedPage, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).(actor.AggregatedPage), args.Error(1)
}

func (m *MockActorService) CreateActor(ctx context.Context, a actor.Actor) (actor.Actor, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(actor.Actor), args.Error(1)
}

func (m *MockActorService) DeleteActor(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockGenreService struct {
	mock.Mock
}

func (m *MockGenreService) CreateGenre(ctx context.Context, g genre.Genre) (genre.Genre, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(genre.Genre), args.Error(1)
}

func (m *MockGenreService) DeleteGenre(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
