package stake

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/lock"
	domain "nft-lending-backend/internal/domain/stake"
	"nft-lending-backend/internal/domain/token"
	"nft-lending-backend/internal/domain/uow"
)

const (
	lockTTL      = 10 * time.Second
	defaultLimit = 20
	maxLimit     = 100
)

type Config struct {
	// NFTContract is the single collection this ledger escrows for yield.
	NFTContract string
	RewardToken string
	// PoolAccount funds reward payouts; EscrowAccount holds staked NFTs.
	PoolAccount   string
	EscrowAccount string
	// The caps are deployment parameters: they bound payout even when the
	// tunable rate pair is misconfigured to extreme values.
	MaxDailyReward decimal.Decimal
	MaxRewardCap   decimal.Decimal
}

type Usecase struct {
	uow    uow.UnitOfWork
	locks  lock.Manager
	events *event.Publisher
	cfg    Config
}

func NewUsecase(tx uow.UnitOfWork, locks lock.Manager, events *event.Publisher, cfg Config) *Usecase {
	return &Usecase{uow: tx, locks: locks, events: events, cfg: cfg}
}

func (u *Usecase) withLock(ctx context.Context, tokenID uint64, fn func() error) error {
	if u.locks == nil {
		return fn()
	}
	unlock, err := u.locks.Acquire(ctx, fmt.Sprintf("stake:%d", tokenID), lockTTL)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

func (u *Usecase) params(ctx context.Context, r uow.Repos) (domain.Params, error) {
	rate, factor, err := r.Stakes.GetRewardRate(ctx)
	if err != nil {
		return domain.Params{}, err
	}
	return domain.Params{
		BaseRewardRate:   rate,
		TimeWeightFactor: factor,
		MaxDailyReward:   u.cfg.MaxDailyReward,
		MaxRewardCap:     u.cfg.MaxRewardCap,
	}, nil
}

// Stake escrows the caller's NFT and opens accrual at weight zero.
func (u *Usecase) Stake(ctx context.Context, in StakeInput) (*StakeDTO, error) {
	var dto *StakeDTO
	err := u.withLock(ctx, in.TokenID, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			g, err := r.Guard.Get(ctx)
			if err != nil {
				return err
			}
			if err := g.RequireRunning(); err != nil {
				return err
			}

			if _, err := r.Stakes.GetByTokenID(ctx, in.TokenID); err == nil {
				return domain.ErrAlreadyStaked
			} else if err != domain.ErrNotStaked {
				return err
			}

			owner, err := r.Collateral.OwnerOf(ctx, u.cfg.NFTContract, in.TokenID)
			if err != nil {
				return err
			}
			if owner != in.Caller {
				return token.ErrNotOwner
			}

			now := time.Now().UTC()
			s := &domain.Stake{
				TokenID:     in.TokenID,
				Staker:      in.Caller,
				StakedAt:    now,
				LastClaimAt: now,
				Accumulated: decimal.Zero,
			}
			if err := r.Stakes.Create(ctx, s); err != nil {
				return err
			}
			if err := r.Collateral.TransferFrom(ctx, u.cfg.NFTContract, u.cfg.EscrowAccount, in.Caller, u.cfg.EscrowAccount, in.TokenID); err != nil {
				return err
			}

			dto = toDTO(s, decimal.Zero)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelStake, event.TypeNFTStaked, dto)
	return dto, nil
}

// payReward computes, caps, and pays the pending reward within the current
// transaction, mutating the stake row before the token transfer. There is no
// partial payout: a short pool fails the whole operation.
func (u *Usecase) payReward(ctx context.Context, r uow.Repos, s *domain.Stake, now time.Time) (decimal.Decimal, error) {
	p, err := u.params(ctx, r)
	if err != nil {
		return decimal.Zero, err
	}
	reward := s.PendingReward(p, now)

	if reward.IsPositive() {
		bal, err := r.Fungibles.BalanceOf(ctx, u.cfg.RewardToken, u.cfg.PoolAccount)
		if err != nil {
			return decimal.Zero, err
		}
		if bal.LessThan(reward) {
			return decimal.Zero, domain.ErrInsufficientRewardPool
		}
	}

	s.Weight = s.TimeWeight(p.TimeWeightFactor, now)
	s.LastClaimAt = now
	s.Accumulated = s.Accumulated.Add(reward)
	if err := r.Stakes.Save(ctx, s); err != nil {
		return decimal.Zero, err
	}

	if reward.IsPositive() {
		if err := r.Fungibles.Transfer(ctx, u.cfg.RewardToken, u.cfg.PoolAccount, s.Staker, reward); err != nil {
			return decimal.Zero, err
		}
	}
	return reward, nil
}

func (u *Usecase) Claim(ctx context.Context, in ClaimInput) (*ClaimDTO, error) {
	var dto *ClaimDTO
	err := u.withLock(ctx, in.TokenID, func() error {
		return u.uow.WithinStakeTx(ctx, in.TokenID, func(r uow.Repos, s *domain.Stake) error {
			g, err := r.Guard.Get(ctx)
			if err != nil {
				return err
			}
			if err := g.RequireRunning(); err != nil {
				return err
			}
			if s.Staker != in.Caller {
				return domain.ErrNotStaker
			}

			reward, err := u.payReward(ctx, r, s, time.Now().UTC())
			if err != nil {
				return err
			}
			dto = &ClaimDTO{TokenID: s.TokenID, Staker: s.Staker, Reward: reward, Weight: s.Weight}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelStake, event.TypeStakeClaimed, dto)
	return dto, nil
}

// Unstake auto-claims whatever is pending, returns the NFT, and deletes the
// stake record. A drained reward pool blocks it the same way it blocks Claim,
// until the pool is refunded; the stake itself is never lost.
func (u *Usecase) Unstake(ctx context.Context, in UnstakeInput) (*ClaimDTO, error) {
	var dto *ClaimDTO
	err := u.withLock(ctx, in.TokenID, func() error {
		return u.uow.WithinStakeTx(ctx, in.TokenID, func(r uow.Repos, s *domain.Stake) error {
			g, err := r.Guard.Get(ctx)
			if err != nil {
				return err
			}
			if err := g.RequireRunning(); err != nil {
				return err
			}
			if s.Staker != in.Caller {
				return domain.ErrNotStaker
			}

			reward, err := u.payReward(ctx, r, s, time.Now().UTC())
			if err != nil {
				return err
			}
			if err := r.Stakes.Delete(ctx, s); err != nil {
				return err
			}
			if err := r.Collateral.TransferFrom(ctx, u.cfg.NFTContract, u.cfg.EscrowAccount, u.cfg.EscrowAccount, s.Staker, s.TokenID); err != nil {
				return err
			}

			dto = &ClaimDTO{TokenID: s.TokenID, Staker: s.Staker, Reward: reward, Weight: s.Weight}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelStake, event.TypeNFTUnstaked, dto)
	return dto, nil
}

// UpdateRewardParams changes only future accrual; nothing already earned is
// recomputed.
func (u *Usecase) UpdateRewardParams(ctx context.Context, in UpdateRewardParamsInput) (*RewardParamsDTO, error) {
	if in.BaseRewardRate.IsNegative() || in.TimeWeightFactor < 0 {
		return nil, domain.ErrInvalidParams
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guard.Get(ctx)
		if err != nil {
			return err
		}
		if err := g.RequireAdmin(in.Caller); err != nil {
			return err
		}
		if err := g.RequireRunning(); err != nil {
			return err
		}
		return r.Stakes.SaveRewardRate(ctx, in.BaseRewardRate, in.TimeWeightFactor)
	})
	if err != nil {
		return nil, err
	}
	dto := &RewardParamsDTO{BaseRewardRate: in.BaseRewardRate, TimeWeightFactor: in.TimeWeightFactor}
	u.events.Emit(ctx, event.ChannelStake, event.TypeRewardParamsUpdated, dto)
	return dto, nil
}

// EmergencyWithdraw sweeps the whole reward pool to the admin during an
// incident. Escrowed NFTs are untouched and remain individually recoverable
// by their stakers.
func (u *Usecase) EmergencyWithdraw(ctx context.Context, caller string) (decimal.Decimal, error) {
	var swept decimal.Decimal
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guard.Get(ctx)
		if err != nil {
			return err
		}
		if err := g.RequireAdmin(caller); err != nil {
			return err
		}
		if err := g.RequirePaused(); err != nil {
			return err
		}

		bal, err := r.Fungibles.BalanceOf(ctx, u.cfg.RewardToken, u.cfg.PoolAccount)
		if err != nil {
			return err
		}
		if bal.IsPositive() {
			if err := r.Fungibles.Transfer(ctx, u.cfg.RewardToken, u.cfg.PoolAccount, g.Admin, bal); err != nil {
				return err
			}
		}
		swept = bal
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	u.events.Emit(ctx, event.ChannelStake, event.TypeEmergencyWithdraw, map[string]any{"amount": swept})
	return swept, nil
}

// RecoverNFT returns a misdirected NFT sitting in the escrow account. Token
// ids with a live stake are refused outright so active collateral cannot be
// pulled under the guise of recovery.
func (u *Usecase) RecoverNFT(ctx context.Context, in RecoverNFTInput) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guard.Get(ctx)
		if err != nil {
			return err
		}
		if err := g.RequireAdmin(in.Caller); err != nil {
			return err
		}

		if in.TokenContract == u.cfg.NFTContract {
			if _, err := r.Stakes.GetByTokenID(ctx, in.TokenID); err == nil {
				return domain.ErrCannotRecoverStaked
			} else if err != domain.ErrNotStaked {
				return err
			}
		}
		return r.Collateral.TransferFrom(ctx, in.TokenContract, u.cfg.EscrowAccount, u.cfg.EscrowAccount, in.To, in.TokenID)
	})
}

func (u *Usecase) Get(ctx context.Context, tokenID uint64) (*StakeDTO, error) {
	var dto *StakeDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Stakes.GetByTokenID(ctx, tokenID)
		if err != nil {
			return err
		}
		p, err := u.params(ctx, r)
		if err != nil {
			return err
		}
		dto = toDTO(s, s.PendingReward(p, time.Now().UTC()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) ListByStaker(ctx context.Context, staker string, offset, limit int) ([]StakeDTO, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	var out []StakeDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ss, err := r.Stakes.ListByStaker(ctx, staker, offset, limit)
		if err != nil {
			return err
		}
		p, err := u.params(ctx, r)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		out = make([]StakeDTO, 0, len(ss))
		for i := range ss {
			out = append(out, *toDTO(&ss[i], ss[i].PendingReward(p, now)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toDTO(s *domain.Stake, pending decimal.Decimal) *StakeDTO {
	return &StakeDTO{
		TokenID:     s.TokenID,
		Staker:      s.Staker,
		StakedAt:    s.StakedAt,
		LastClaimAt: s.LastClaimAt,
		Accumulated: s.Accumulated,
		Weight:      s.Weight,
		Pending:     pending,
	}
}
