package httpserver

import (
	"moviecatalog/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterActorRoutes(g *echo.Group) {
	g.GET("/actors/aggregated", s.handleActorsAggregated)
	g.POST("/actors", s.handleCreateActor)
	g.DELETE("/actors/:id", s.handleDeleteActor)
}

// handleActorsAggregated reports how many movies each actor has per year.
func (s *Server) handleActorsAggregated(c echo.Context) error {
	if s.ActorService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "actor service not configured")
	}

	page, err := bindPagination(c)
	if err != nil {
		return err
	}

	report, err := s.ActorService.GetActorsAggregated(c.Request().Context(), page.Offset, page.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAggregatedPageResponse(report))
}

func (s *Server) handleCreateActor(c echo.Context) error {
	if s.ActorService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "actor service not configured")
	}

	var req ActorRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := s.ActorService.CreateActor(c.Request().Context(), req.ToActor())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newActorResponse(a))
}

func (s *Server) handleDeleteActor(c echo.Context) error {
	if s.ActorService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "actor service not configured")
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := s.ActorService.DeleteActor(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
