package httpserver

import (
	"moviecatalog/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterGenreRoutes(g *echo.Group) {
	g.POST("/genres", s.handleCreateGenre)
	g.DELETE("/genres/:id", s.handleDeleteGenre)
}

func (s *Server) handleCreateGenre(c echo.Context) error {
	if s.GenreService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "genre service not configured")
	}

	var req GenreRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	g, err := s.GenreService.CreateGenre(c.Request().Context(), req.ToGenre())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newGenreResponse(g))
}

func (s *Server) handleDeleteGenre(c echo.Context) error {
	if s.GenreService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "genre service not configured")
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := s.GenreService.DeleteGenre(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
