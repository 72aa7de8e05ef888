package genre

import "context"

type Service interface {
	CreateGenre(ctx context.Context, g Genre) (Genre, error)
	DeleteGenre(ctx context.Context, id int) error
}

type Repository interface {
	GetGenres(ctx context.Context, ids []int) ([]Genre, error)
	CreateGenre(ctx context.Context, g Genre) (Genre, error)
	DeleteGenre(ctx context.Context, id int) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) CreateGenre(ctx context.Context, g Genre) (Genre, error) {
	if err := g.Validate(); err != nil {
		return Genre{}, err
	}
	return uc.r.CreateGenre(ctx, g)
}

func (uc *Usecase) DeleteGenre(ctx context.Context, id int) error {
	return uc.r.DeleteGenre(ctx, id)
}
