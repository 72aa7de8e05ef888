package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"moviecatalog/actor"
	"moviecatalog/errs"
	"moviecatalog/genre"
	"moviecatalog/movie"
	"net/http"
	"reflect"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultOffset = 0
	defaultLimit  = 100

	msgNotInteger = "must be an integer"
)

var errTrailingData = errors.New("unexpected data after JSON value")

// jsonSerializer is echo's JSON serializer with a stricter decoder: the body
// must hold exactly one JSON value.
type jsonSerializer struct {
	echo.DefaultJSONSerializer
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	if err := dec.Decode(i); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

type PaginationRequest struct {
	Offset int `query:"offset" validate:"min=0"`
	Limit  int `query:"limit" validate:"min=1,max=1000"`
}

type MovieRequest struct {
	Title    *string `json:"title" validate:"required"`
	Year     *int    `json:"year" validate:"required,min=-2147483648,max=2147483647"`
	ActorIDs []int   `json:"actor_ids" validate:"dive,min=1,max=2147483647"`
	GenreIDs []int   `json:"genre_ids" validate:"dive,min=1,max=2147483647"`
}

// ToMovie builds a movie whose actors and genres carry only their ids.
func (r MovieRequest) ToMovie(id int) movie.Movie {
	m := movie.Movie{
		ID:     id,
		Title:  *r.Title,
		Year:   *r.Year,
		Actors: make([]actor.Actor, len(r.ActorIDs)),
		Genres: make([]genre.Genre, len(r.GenreIDs)),
	}
	for i, actorID := range r.ActorIDs {
		m.Actors[i] = actor.Actor{ID: actorID}
	}
	for i, genreID := range r.GenreIDs {
		m.Genres[i] = genre.Genre{ID: genreID}
	}
	return m
}

type ActorRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255"`
}

func (r ActorRequest) ToActor() actor.Actor {
	return actor.Actor{Name: r.Name}
}

type GenreRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255"`
}

func (r GenreRequest) ToGenre() genre.Genre {
	return genre.Genre{Name: r.Name}
}

// bindPagination reads offset and limit from the query string, falling back
// to the defaults for absent parameters. A parameter given without a value is
// not absent and fails like any other non-integer.
func bindPagination(c echo.Context) (PaginationRequest, error) {
	req := PaginationRequest{Offset: defaultOffset, Limit: defaultLimit}

	fields := make(map[string][]string)
	params := c.QueryParams()
	for _, name := range []string{"offset", "limit"} {
		if values, ok := params[name]; ok && len(values) > 0 && values[0] == "" {
			fields[name] = append(fields[name], msgNotInteger)
		}
	}

	bindErrs := echo.QueryParamsBinder(c).
		FailFast(false).
		Int("offset", &req.Offset).
		Int("limit", &req.Limit).
		BindErrors()
	for _, err := range bindErrs {
		var be *echo.BindingError
		if errors.As(err, &be) {
			fields[be.Field] = append(fields[be.Field], msgNotInteger)
		}
	}
	if len(fields) > 0 {
		return req, errs.Invalid(msgInvalidQuery, fields)
	}

	if err := c.Validate(req); err != nil {
		return req, errs.Invalid(msgInvalidQuery, errs.ErrorFields(err))
	}
	return req, nil
}

// bindBody decodes the JSON body into req and validates it. Decoding is left
// to echo's binder, whose errors wrap the underlying json error.
func bindBody(c echo.Context, req interface{}) error {
	if c.Request().ContentLength == 0 {
		return errs.Invalid(msgEmptyBody, nil)
	}

	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return bodyError(err)
	}

	return c.Validate(req)
}

func bodyError(err error) error {
	if errors.Is(err, io.EOF) {
		return errs.Invalid(msgEmptyBody, nil)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return errs.Invalid(msgInvalidBody, map[string][]string{
			field: {"must be " + jsonTypeName(typeErr.Type.Kind())},
		})
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, errTrailingData) {
		return errs.Invalid(msgInvalidBody, map[string][]string{
			"body": {"must be valid JSON"},
		})
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
		return he
	}
	return errs.Invalid(msgInvalidBody, nil)
}

func jsonTypeName(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Bool:
		return "a boolean"
	}
	return "of another type"
}

// pathID parses the :id path parameter. Anything that is not a positive
// 32-bit integer written in plain digits cannot name a stored row and is
// answered like an unmatched route.
func pathID(c echo.Context) (int, error) {
	param := c.Param("id")
	if param == "" || param[0] < '0' || param[0] > '9' {
		return 0, echo.ErrNotFound
	}

	id, err := strconv.ParseInt(param, 10, 32)
	if err != nil || id <= 0 {
		return 0, echo.ErrNotFound
	}
	return int(id), nil
}
