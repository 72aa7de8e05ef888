package actor

import "context"

type Service interface {
	GetActorsAggregated(ctx context.Context, offset, limit int) (AggregatedPage, error)
	CreateActor(ctx context.Context, a Actor) (Actor, error)
	DeleteActor(ctx context.Context, id int) error
}

type Repository interface {
	GetActors(ctx context.Context, ids []int) ([]Actor, error)
	GetActorsAggregated(ctx context.Context, offset, limit int) (AggregatedPage, error)
	CreateActor(ctx context.Context, a Actor) (Actor, error)
	DeleteActor(ctx context.Context, id int) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) GetActorsAggregated(ctx context.Context, offset, limit int) (AggregatedPage, error) {
	return uc.r.GetActorsAggregated(ctx, offset, limit)
}

func (uc *Usecase) CreateActor(ctx context.Context, a Actor) (Actor, error) {
	if err := a.Validate(); err != nil {
		return Actor{}, err
	}
	return uc.r.CreateActor(ctx, a)
}

func (uc *Usecase) DeleteActor(ctx context.Context, id int) error {
	return uc.r.DeleteActor(ctx, id)
}
