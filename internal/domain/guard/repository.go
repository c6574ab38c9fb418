package guard

import "context"

type Repository interface {
	Get(ctx context.Context) (*Guard, error)
	GetForUpdate(ctx context.Context) (*Guard, error)
	Save(ctx context.Context, g *Guard) error
}
