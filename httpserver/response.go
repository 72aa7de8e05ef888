package httpserver

import (
	"moviecatalog/actor"
	"moviecatalog/genre"
	"moviecatalog/movie"
)

// ErrorResponse is the body of every failed request. Errors is only set for
// validation failures and maps a field to its messages.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type ActorResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type GenreResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type MovieResponse struct {
	ID     int             `json:"id"`
	Title  string          `json:"title"`
	Year   int             `json:"year"`
	Actors []ActorResponse `json:"actors"`
	Genres []GenreResponse `json:"genres"`
}

type MoviesPageResponse struct {
	Movies []MovieResponse `json:"movies"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type AggregatedActorResponse struct {
	Name   string `json:"name"`
	Year   int    `json:"year"`
	Number int    `json:"number"`
}

type AggregatedPageResponse struct {
	Actors []AggregatedActorResponse `json:"actors"`
	Total  int                       `json:"total"`
	Limit  int                       `json:"limit"`
	Offset int                       `json:"offset"`
}

func newActorResponse(a actor.Actor) ActorResponse {
	return ActorResponse{ID: a.ID, Name: a.Name}
}

func newGenreResponse(g genre.Genre) GenreResponse {
	return GenreResponse{ID: g.ID, Name: g.Name}
}

func newMovieResponse(m movie.Movie) MovieResponse {
	resp := MovieResponse{
		ID:     m.ID,
		Title:  m.Title,
		Year:   m.Year,
		Actors: make([]ActorResponse, len(m.Actors)),
		Genres: make([]GenreResponse, len(m.Genres)),
	}
	for i, a := range m.Actors {
		resp.Actors[i] = newActorResponse(a)
	}
	for i, g := range m.Genres {
		resp.Genres[i] = newGenreResponse(g)
	}
	return resp
}

func newMoviesPageResponse(p movie.Page) MoviesPageResponse {
	resp := MoviesPageResponse{
		Movies: make([]MovieResponse, len(p.Movies)),
		Total:  p.Total,
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	for i, m := range p.Movies {
		resp.Movies[i] = newMovieResponse(m)
	}
	return resp
}

func newAggregatedPageResponse(p actor.AggregatedPage) AggregatedPageResponse {
	resp := AggregatedPageResponse{
		Actors: make([]AggregatedActorResponse, len(p.Actors)),
		Total:  p.Total,
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	for i, a := range p.Actors {
		resp.Actors[i] = AggregatedActorResponse{Name: a.Name, Year: a.Year, Number: a.Number}
	}
	return resp
}
