package actor

import (
	"moviecatalog/errs"
	"strings"
)

var ErrInvalidName = errs.Errorf(errs.EINVALID, "actor: invalid name")

type Actor struct {
	ID   int
	Name string
}

func (a Actor) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// Aggregated is the number of movies an actor played in during one year.
type Aggregated struct {
	Name   string
	Year   int
	Number int
}

// AggregatedPage is one page of the aggregation report. Total counts every
// (actor, year) group, not only the ones in Actors.
type AggregatedPage struct {
	Actors []Aggregated
	Total  int
	Limit  int
	Offset int
}
