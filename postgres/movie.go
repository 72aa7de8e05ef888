package postgres

import (
	"context"
	"errors"
	"moviecatalog/actor"
	"moviecatalog/genre"
	"moviecatalog/movie"

	"gorm.io/gorm"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"not null"`
	Year  int    `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface.
// Actor and genre references are checked here because the store is not
// trusted to enforce them.
type MovieRepository struct {
	db     *gorm.DB
	actors *ActorRepository
	genres *GenreRepository
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{
		db:     db,
		actors: NewActorRepository(db),
		genres: NewGenreRepository(db),
	}
}

// GetMovie fetches a movie with its actors and genres.
func (r *MovieRepository) GetMovie(ctx context.Context, id int) (movie.Movie, error) {
	db := r.db.WithContext(ctx)

	var model MovieModel
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}

	actors, genres, err := loadRelations(db, []uint{model.ID})
	if err != nil {
		return movie.Movie{}, err
	}

	return toDomainMovie(model, actors[model.ID], genres[model.ID]), nil
}

// ListMovies returns one page of movies ordered by id.
func (r *MovieRepository) ListMovies(ctx context.Context, offset, limit int) (movie.Page, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&MovieModel{}).Count(&total).Error; err != nil {
		return movie.Page{}, err
	}

	var models []MovieModel
	if err := db.Order("id").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return movie.Page{}, err
	}

	ids := make([]uint, len(models))
	for i, model := range models {
		ids[i] = model.ID
	}
	actors, genres, err := loadRelations(db, ids)
	if err != nil {
		return movie.Page{}, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model, actors[model.ID], genres[model.ID])
	}

	return movie.Page{
		Movies: movies,
		Total:  int(total),
		Limit:  limit,
		Offset: offset,
	}, nil
}

// CreateMovie stores the movie and one join row per referenced actor and
// genre. Only the ids of m.Actors and m.Genres are used.
func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	actorIDs, genreIDs := uniqueIDs(m.ActorIDs()), uniqueIDs(m.GenreIDs())
	if err := r.checkReferences(ctx, actorIDs, genreIDs); err != nil {
		return movie.Movie{}, err
	}

	model := MovieModel{Title: m.Title, Year: m.Year}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return createRelations(tx, model.ID, actorIDs, genreIDs)
	})
	if err != nil {
		return movie.Movie{}, relationError(err)
	}

	return r.GetMovie(ctx, int(model.ID))
}

// EditMovie updates title and year and replaces every actor and genre
// relation of the movie.
func (r *MovieRepository) EditMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	actorIDs, genreIDs := uniqueIDs(m.ActorIDs()), uniqueIDs(m.GenreIDs())
	if err := r.checkReferences(ctx, actorIDs, genreIDs); err != nil {
		return movie.Movie{}, err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model MovieModel
		if err := tx.First(&model, m.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return movie.ErrMovieNotFound
			}
			return err
		}

		err := tx.Model(&model).Updates(map[string]interface{}{
			"title": m.Title,
			"year":  m.Year,
		}).Error
		if err != nil {
			return err
		}

		if err := deleteRelations(tx, m.ID); err != nil {
			return err
		}
		return createRelations(tx, model.ID, actorIDs, genreIDs)
	})
	if err != nil {
		return movie.Movie{}, relationError(err)
	}

	return r.GetMovie(ctx, m.ID)
}

// DeleteMovie removes the movie and its relations. Deleting an unknown movie
// is not an error.
func (r *MovieRepository) DeleteMovie(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteRelations(tx, id); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&MovieModel{}).Error
	})
}

// checkReferences fails when any of the ids does not match a stored row.
// The ids must already be unique, otherwise the counts cannot be compared.
func (r *MovieRepository) checkReferences(ctx context.Context, actorIDs, genreIDs []int) error {
	actors, err := r.actors.GetActors(ctx, actorIDs)
	if err != nil {
		return err
	}
	if len(actors) < len(actorIDs) {
		return movie.ErrActorsNotExist
	}

	genres, err := r.genres.GetGenres(ctx, genreIDs)
	if err != nil {
		return err
	}
	if len(genres) < len(genreIDs) {
		return movie.ErrGenresNotExist
	}

	return nil
}

func createRelations(tx *gorm.DB, movieID uint, actorIDs, genreIDs []int) error {
	if len(actorIDs) > 0 {
		rows := make([]ActorMovieModel, len(actorIDs))
		for i, id := range actorIDs {
			rows[i] = ActorMovieModel{ActorID: uint(id), MovieID: movieID}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}

	if len(genreIDs) > 0 {
		rows := make([]GenreMovieModel, len(genreIDs))
		for i, id := range genreIDs {
			rows[i] = GenreMovieModel{GenreID: uint(id), MovieID: movieID}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}

	return nil
}

func deleteRelations(tx *gorm.DB, movieID int) error {
	if err := tx.Where("movie_id = ?", movieID).Delete(&ActorMovieModel{}).Error; err != nil {
		return err
	}
	return tx.Where("movie_id = ?", movieID).Delete(&GenreMovieModel{}).Error
}

type movieActorRow struct {
	MovieID uint
	ID      uint
	Name    string
}

type movieGenreRow struct {
	MovieID uint
	ID      uint
	Name    string
}

// loadRelations fetches the actors and genres of all given movies in one
// query each, keyed by movie id.
func loadRelations(db *gorm.DB, movieIDs []uint) (map[uint][]actor.Actor, map[uint][]genre.Genre, error) {
	actors := make(map[uint][]actor.Actor, len(movieIDs))
	genres := make(map[uint][]genre.Genre, len(movieIDs))
	if len(movieIDs) == 0 {
		return actors, genres, nil
	}

	var actorRows []movieActorRow
	err := db.Model(&ActorModel{}).
		Select("actor_movies.movie_id, actors.id, actors.name").
		Joins("JOIN actor_movies ON actor_movies.actor_id = actors.id").
		Where("actor_movies.movie_id IN ?", movieIDs).
		Order("actors.id").
		Scan(&actorRows).Error
	if err != nil {
		return nil, nil, err
	}
	for _, row := range actorRows {
		actors[row.MovieID] = append(actors[row.MovieID], actor.Actor{ID: int(row.ID), Name: row.Name})
	}

	var genreRows []movieGenreRow
	err = db.Model(&GenreModel{}).
		Select("genre_movies.movie_id, genres.id, genres.name").
		Joins("JOIN genre_movies ON genre_movies.genre_id = genres.id").
		Where("genre_movies.movie_id IN ?", movieIDs).
		Order("genres.id").
		Scan(&genreRows).Error
	if err != nil {
		return nil, nil, err
	}
	for _, row := range genreRows {
		genres[row.MovieID] = append(genres[row.MovieID], genre.Genre{ID: int(row.ID), Name: row.Name})
	}

	return actors, genres, nil
}

func toDomainMovie(model MovieModel, actors []actor.Actor, genres []genre.Genre) movie.Movie {
	if actors == nil {
		actors = []actor.Actor{}
	}
	if genres == nil {
		genres = []genre.Genre{}
	}

	return movie.Movie{
		ID:     int(model.ID),
		Title:  model.Title,
		Year:   model.Year,
		Actors: actors,
		Genres: genres,
	}
}

// uniqueIDs drops repeated ids, keeping the first occurrence.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
