package movie

import "context"

type Service interface {
	GetMovie(ctx context.Context, id int) (Movie, error)
	ListMovies(ctx context.Context, offset, limit int) (Page, error)
	CreateMovie(ctx context.Context, m Movie) (Movie, error)
	EditMovie(ctx context.Context, m Movie) (Movie, error)
	DeleteMovie(ctx context.Context, id int) error
}

// Repository returns ErrMovieNotFound from GetMovie and EditMovie when the
// movie does not exist, and ErrActorsNotExist or ErrGenresNotExist when a
// write references unknown actors or genres.
type Repository interface {
	GetMovie(ctx context.Context, id int) (Movie, error)
	ListMovies(ctx context.Context, offset, limit int) (Page, error)
	CreateMovie(ctx context.Context, m Movie) (Movie, error)
	EditMovie(ctx context.Context, m Movie) (Movie, error)
	DeleteMovie(ctx context.Context, id int) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) GetMovie(ctx context.Context, id int) (Movie, error) {
	return uc.r.GetMovie(ctx, id)
}

func (uc *Usecase) ListMovies(ctx context.Context, offset, limit int) (Page, error) {
	return uc.r.ListMovies(ctx, offset, limit)
}

func (uc *Usecase) CreateMovie(ctx context.Context, m Movie) (Movie, error) {
	return uc.r.CreateMovie(ctx, m)
}

func (uc *Usecase) EditMovie(ctx context.Context, m Movie) (Movie, error) {
	return uc.r.EditMovie(ctx, m)
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id int) error {
	return uc.r.DeleteMovie(ctx, id)
}
