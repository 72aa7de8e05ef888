package httpserver

import (
	"moviecatalog/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.POST("/movies", s.handleCreateMovie)
	g.GET("/movies/:id", s.handleGetMovie)
	g.PUT("/movies/:id", s.handleEditMovie)
	g.DELETE("/movies/:id", s.handleDeleteMovie)
}

func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	page, err := bindPagination(c)
	if err != nil {
		return err
	}

	movies, err := s.MovieService.ListMovies(c.Request().Context(), page.Offset, page.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newMoviesPageResponse(movies))
}

func (s *Server) handleGetMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newMovieResponse(m))
}

func (s *Server) handleCreateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req MovieRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	m, err := s.MovieService.CreateMovie(c.Request().Context(), req.ToMovie(0))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newMovieResponse(m))
}

func (s *Server) handleEditMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req MovieRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	m, err := s.MovieService.EditMovie(c.Request().Context(), req.ToMovie(id))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newMovieResponse(m))
}

func (s *Server) handleDeleteMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := s.MovieService.DeleteMovie(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
