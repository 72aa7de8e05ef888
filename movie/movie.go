package movie

import (
	"moviecatalog/actor"
	"moviecatalog/errs"
	"moviecatalog/genre"
)

var (
	ErrMovieNotFound  = errs.Errorf(errs.ENOTFOUND, "Movie not found")
	ErrActorsNotExist = errs.Errorf(errs.EINVALID, "Some actors don't exist")
	ErrGenresNotExist = errs.Errorf(errs.EINVALID, "Some genres don't exist")
)

// Movie references its actors and genres by id on writes. Reads return them
// fully populated; their order is not significant.
type Movie struct {
	ID     int
	Title  string
	Year   int
	Actors []actor.Actor
	Genres []genre.Genre
}

func (m Movie) ActorIDs() []int {
	ids := make([]int, len(m.Actors))
	for i, a := range m.Actors {
		ids[i] = a.ID
	}
	return ids
}

func (m Movie) GenreIDs() []int {
	ids := make([]int, len(m.Genres))
	for i, g := range m.Genres {
		ids[i] = g.ID
	}
	return ids
}

type Page struct {
	Movies []Movie
	Total  int
	Limit  int
	Offset int
}
