package guardmock

import (
	"context"

	domain "nft-lending-backend/internal/domain/guard"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetFn          func(ctx context.Context) (*domain.Guard, error)
	GetForUpdateFn func(ctx context.Context) (*domain.Guard, error)
	SaveFn         func(ctx context.Context, g *domain.Guard) error
}

// Running returns a mock whose Get always yields an unpaused guard with the
// given admin. Covers the common "gate passes" setup.
func Running(admin string) *Repo {
	g := &domain.Guard{Admin: admin}
	return &Repo{
		GetFn:          func(context.Context) (*domain.Guard, error) { return g, nil },
		GetForUpdateFn: func(context.Context) (*domain.Guard, error) { return g, nil },
	}
}

// Paused is Running with the paused flag set.
func Paused(admin string) *Repo {
	g := &domain.Guard{Admin: admin, Paused: true}
	return &Repo{
		GetFn:          func(context.Context) (*domain.Guard, error) { return g, nil },
		GetForUpdateFn: func(context.Context) (*domain.Guard, error) { return g, nil },
	}
}

func (m *Repo) Get(ctx context.Context) (*domain.Guard, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return &domain.Guard{}, nil
}

func (m *Repo) GetForUpdate(ctx context.Context) (*domain.Guard, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx)
	}
	return &domain.Guard{}, nil
}

func (m *Repo) Save(ctx context.Context, g *domain.Guard) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, g)
	}
	return nil
}
