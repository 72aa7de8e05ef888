package postgres

import (
	"errors"
	"moviecatalog/movie"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names from migrations/.
const (
	fkActorMoviesActor = "fk_actor_movies_actor"
	fkActorMoviesMovie = "fk_actor_movies_movie"
	fkGenreMoviesGenre = "fk_genre_movies_genre"
	fkGenreMoviesMovie = "fk_genre_movies_movie"
)

// relationError maps a foreign key violation raised while writing join rows
// to the domain error it stands for. The repositories check references before
// writing, so this only fires when a referenced row is deleted concurrently.
func relationError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.ForeignKeyViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case fkActorMoviesActor:
		return movie.ErrActorsNotExist
	case fkGenreMoviesGenre:
		return movie.ErrGenresNotExist
	case fkActorMoviesMovie, fkGenreMoviesMovie:
		return movie.ErrMovieNotFound
	}
	return err
}
