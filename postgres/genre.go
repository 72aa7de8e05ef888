package postgres

import (
	"context"
	"moviecatalog/genre"

	"gorm.io/gorm"
)

type GenreModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

func (GenreModel) TableName() string {
	return "genres"
}

type GenreMovieModel struct {
	ID      uint `gorm:"primaryKey"`
	GenreID uint `gorm:"not null"`
	MovieID uint `gorm:"not null"`
}

func (GenreMovieModel) TableName() string {
	return "genre_movies"
}

// GenreRepository implements [genre.Repository].
type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// GetGenres implements [genre.Repository]. Unknown ids are skipped.
func (r *GenreRepository) GetGenres(ctx context.Context, ids []int) ([]genre.Genre, error) {
	if len(ids) == 0 {
		return []genre.Genre{}, nil
	}

	var models []GenreModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	genres := make([]genre.Genre, len(models))
	for i, model := range models {
		genres[i] = toDomainGenre(model)
	}
	return genres, nil
}

// CreateGenre implements [genre.Repository].
func (r *GenreRepository) CreateGenre(ctx context.Context, g genre.Genre) (genre.Genre, error) {
	model := GenreModel{Name: g.Name}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return genre.Genre{}, err
	}
	return toDomainGenre(model), nil
}

// DeleteGenre implements [genre.Repository].
func (r *GenreRepository) DeleteGenre(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", id).Delete(&GenreMovieModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&GenreModel{}).Error
	})
}

func toDomainGenre(model GenreModel) genre.Genre {
	return genre.Genre{
		ID:   int(model.ID),
		Name: model.Name,
	}
}
