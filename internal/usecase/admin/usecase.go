package admin

import (
	"context"
	"time"

	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/guard"
	"nft-lending-backend/internal/domain/uow"
)

type Usecase struct {
	uow    uow.UnitOfWork
	events *event.Publisher
}

func NewUsecase(tx uow.UnitOfWork, events *event.Publisher) *Usecase {
	return &Usecase{uow: tx, events: events}
}

type GuardDTO struct {
	Admin        string `json:"admin"`
	PendingAdmin string `json:"pending_admin,omitempty"`
	Paused       bool   `json:"paused"`
}

func (u *Usecase) mutate(ctx context.Context, fn func(g *guard.Guard) error) (*GuardDTO, error) {
	var dto *GuardDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guard.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if err := fn(g); err != nil {
			return err
		}
		g.UpdatedAt = time.Now().UTC()
		if err := r.Guard.Save(ctx, g); err != nil {
			return err
		}
		dto = &GuardDTO{Admin: g.Admin, PendingAdmin: g.PendingAdmin, Paused: g.Paused}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Pause(ctx context.Context, caller string) (*GuardDTO, error) {
	dto, err := u.mutate(ctx, func(g *guard.Guard) error {
		if err := g.RequireAdmin(caller); err != nil {
			return err
		}
		if err := g.RequireRunning(); err != nil {
			return err
		}
		g.Paused = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelAdmin, event.TypePaused, dto)
	return dto, nil
}

func (u *Usecase) Unpause(ctx context.Context, caller string) (*GuardDTO, error) {
	dto, err := u.mutate(ctx, func(g *guard.Guard) error {
		if err := g.RequireAdmin(caller); err != nil {
			return err
		}
		if err := g.RequirePaused(); err != nil {
			return err
		}
		g.Paused = false
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelAdmin, event.TypeUnpaused, dto)
	return dto, nil
}

// ProposeAdmin is the first half of the two-phase transfer: the current admin
// names a successor but retains control until the successor accepts. A
// single-step transfer can lock administration out on a typo.
func (u *Usecase) ProposeAdmin(ctx context.Context, caller, newAdmin string) (*GuardDTO, error) {
	if newAdmin == "" {
		return nil, guard.ErrEmptyAdmin
	}
	dto, err := u.mutate(ctx, func(g *guard.Guard) error {
		if err := g.RequireAdmin(caller); err != nil {
			return err
		}
		g.PendingAdmin = newAdmin
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelAdmin, event.TypeAdminProposed, dto)
	return dto, nil
}

func (u *Usecase) AcceptAdmin(ctx context.Context, caller string) (*GuardDTO, error) {
	dto, err := u.mutate(ctx, func(g *guard.Guard) error {
		if g.PendingAdmin == "" || caller != g.PendingAdmin {
			return guard.ErrNotPendingAdmin
		}
		g.Admin = g.PendingAdmin
		g.PendingAdmin = ""
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelAdmin, event.TypeAdminAccepted, dto)
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context) (*GuardDTO, error) {
	var dto *GuardDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guard.Get(ctx)
		if err != nil {
			return err
		}
		dto = &GuardDTO{Admin: g.Admin, PendingAdmin: g.PendingAdmin, Paused: g.Paused}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
