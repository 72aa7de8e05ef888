package postgres

import (
	"context"
	"moviecatalog/actor"

	"gorm.io/gorm"
)

// ActorModel represents the database model for actors
type ActorModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ActorModel) TableName() string {
	return "actors"
}

// ActorMovieModel is one actor-movie join row. Rows carry their own id and are
// only written as a side effect of movie writes.
type ActorMovieModel struct {
	ID      uint `gorm:"primaryKey"`
	ActorID uint `gorm:"not null"`
	MovieID uint `gorm:"not null"`
}

func (ActorMovieModel) TableName() string {
	return "actor_movies"
}

// ActorRepository implements actor.Repository interface
type ActorRepository struct {
	db *gorm.DB
}

// NewActorRepository creates a new actor repository
func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

// GetActors returns the actors whose id is in ids. Unknown ids are skipped.
func (r *ActorRepository) GetActors(ctx context.Context, ids []int) ([]actor.Actor, error) {
	if len(ids) == 0 {
		return []actor.Actor{}, nil
	}

	var models []ActorModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	actors := make([]actor.Actor, len(models))
	for i, model := range models {
		actors[i] = toDomainActor(model)
	}
	return actors, nil
}

type actorYearRow struct {
	Name   string
	Year   int
	Number int
}

// GetActorsAggregated counts the movies of every actor per release year,
// ordered by actor name then year.
//
// The query joins actors, actor_movies and movies and groups the whole join
// before paging, so its cost follows the number of join rows. A table
// maintained on movie writes (actor id, year, count) would make this a plain
// indexed read.
func (r *ActorRepository) GetActorsAggregated(ctx context.Context, offset, limit int) (actor.AggregatedPage, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Table("(?) AS actor_years", actorYears(db)).Count(&total).Error; err != nil {
		return actor.AggregatedPage{}, err
	}

	var rows []actorYearRow
	err := actorYears(db).
		Order("actors.name, movies.year, actors.id").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return actor.AggregatedPage{}, err
	}

	aggregated := make([]actor.Aggregated, len(rows))
	for i, row := range rows {
		aggregated[i] = actor.Aggregated{
			Name:   row.Name,
			Year:   row.Year,
			Number: row.Number,
		}
	}

	return actor.AggregatedPage{
		Actors: aggregated,
		Total:  int(total),
		Limit:  limit,
		Offset: offset,
	}, nil
}

// actorYears groups actor_movies rows by actor and movie year.
func actorYears(db *gorm.DB) *gorm.DB {
	return db.Model(&ActorModel{}).
		Select("actors.id, actors.name AS name, movies.year AS year, COUNT(movies.id) AS number").
		Joins("JOIN actor_movies ON actor_movies.actor_id = actors.id").
		Joins("JOIN movies ON movies.id = actor_movies.movie_id").
		Group("actors.id, actors.name, movies.year")
}

// CreateActor stores a new actor and returns it with its generated id.
func (r *ActorRepository) CreateActor(ctx context.Context, a actor.Actor) (actor.Actor, error) {
	model := ActorModel{Name: a.Name}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return actor.Actor{}, err
	}
	return toDomainActor(model), nil
}

// DeleteActor removes the actor and its movie relations. Deleting an unknown
// actor is not an error.
func (r *ActorRepository) DeleteActor(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("actor_id = ?", id).Delete(&ActorMovieModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&ActorModel{}).Error
	})
}

func toDomainActor(model ActorModel) actor.Actor {
	return actor.Actor{
		ID:   int(model.ID),
		Name: model.Name,
	}
}
