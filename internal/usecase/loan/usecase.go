package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"nft-lending-backend/internal/domain/event"
	domain "nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/lock"
	"nft-lending-backend/internal/domain/token"
	"nft-lending-backend/internal/domain/uow"
	"nft-lending-backend/internal/domain/valuation"
	"nft-lending-backend/pkg/id"
)

// Mode selects which origination variant the deployment runs. Both share the
// same state machine; peer adds the CREATED->ACTIVE funding step, pool
// disburses from the shared pool at creation.
type Mode string

const (
	ModePeer Mode = "peer"
	ModePool Mode = "pool"
)

const (
	lockTTL      = 10 * time.Second
	defaultLimit = 20
	maxLimit     = 100
)

type Config struct {
	Mode Mode
	// BaseLTVBps anchors the rating table; the A tier borrows exactly this
	// fraction of the collateral value.
	BaseLTVBps int64
	// DefaultRateBps is applied when the request does not carry a rate.
	DefaultRateBps int64
	// PoolAccount is the lending pool's token account (pool mode source of
	// principal and sink of repayments).
	PoolAccount string
	// EscrowAccount holds collateral NFTs and is the spender borrowers and
	// funders approve.
	EscrowAccount string
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

// maxLTVBps is monotone in rating quality: S borrows 10 points above base,
// D ten below.
func maxLTVBps(base int64, r valuation.Rating) int64 {
	var bps int64
	switch r {
	case valuation.RatingS:
		bps = base + 1000
	case valuation.RatingA:
		bps = base
	case valuation.RatingB:
		bps = base - 250
	case valuation.RatingC:
		bps = base - 500
	default: // D
		bps = base - 1000
	}
	if bps < 0 {
		bps = 0
	}
	return bps
}

func maxPrincipal(value decimal.Decimal, bps int64) decimal.Decimal {
	return value.Mul(decimal.NewFromInt(bps)).Div(decimal.NewFromInt(10000))
}

func (u *Usecase) withLock(ctx context.Context, key string, fn func() error) error {
	if u.locks == nil {
		return fn()
	}
	unlock, err := u.locks.Acquire(ctx, key, lockTTL)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

func validateTerms(principal decimal.Decimal, durationSecs int64) error {
	if !principal.IsPositive() {
		return domain.ErrZeroPrincipal
	}
	d := time.Duration(durationSecs) * time.Second
	if d < domain.MinDuration || d > domain.MaxDuration {
		return domain.ErrInvalidDuration
	}
	return nil
}

// checkCollateral runs the shared origination gates: allowlists, valuation
// presence, and the rating LTV cap.
func (u *Usecase) checkCollateral(ctx context.Context, r uow.Repos, contract string, tokenID uint64, paymentToken string, principal decimal.Decimal) (*valuation.Valuation, error) {
	ok, err := r.Loans.IsContractSupported(ctx, contract)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrContractNotSupported
	}
	ok, err = r.Loans.IsTokenSupported(ctx, paymentToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrTokenNotSupported
	}
	v, err := r.Valuations.Get(ctx, contract, tokenID)
	if err != nil {
		return nil, err
	}
	if principal.GreaterThan(maxPrincipal(v.Value, maxLTVBps(u.cfg.BaseLTVBps, v.Rating))) {
		return nil, domain.ErrAmountExceedsMaximum
	}
	return v, nil
}

// Create escrows the collateral and opens a loan. Peer mode leaves it CREATED
// awaiting a funder; pool mode disburses from the pool and activates it in
// the same transaction.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if err := validateTerms(in.Principal, in.DurationSecs); err != nil {
		return nil, err
	}
	rate := in.InterestRateBps
	if rate == 0 {
		rate = u.cfg.DefaultRateBps
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guard.Get(ctx)
		if err != nil {
			return err
		}
		if err := g.RequireRunning(); err != nil {
			return err
		}

		v, err := u.checkCollateral(ctx, r, in.NFTContract, in.TokenID, in.PaymentToken, in.Principal)
		if err != nil {
			return err
		}

		owner, err := r.Collateral.OwnerOf(ctx, in.NFTContract, in.TokenID)
		if err != nil {
			return err
		}
		if owner != in.Caller {
			return token.ErrNotOwner
		}

		now := time.Now().UTC()
		l := &domain.Loan{
			LoanID:          id.NewID32(),
			NFTContract:     in.NFTContract,
			TokenID:         in.TokenID,
			Borrower:        in.Caller,
			PaymentToken:    in.PaymentToken,
			Principal:       in.Principal,
			Rating:          v.Rating,
			InterestRateBps: rate,
			DurationSecs:    in.DurationSecs,
			Status:          domain.StatusCreated,
			StateUpdatedAt:  now,
		}
		if u.cfg.Mode == ModePool {
			l.Status = domain.StatusActive
			l.Lender = u.cfg.PoolAccount
			l.StartTime = now
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		// Ledger state is written; only now touch the asset ledgers.
		if err := r.Collateral.TransferFrom(ctx, in.NFTContract, u.cfg.EscrowAccount, in.Caller, u.cfg.EscrowAccount, in.TokenID); err != nil {
			return err
		}
		if u.cfg.Mode == ModePool {
			if err := r.Fungibles.Transfer(ctx, in.PaymentToken, u.cfg.PoolAccount, in.Caller, in.Principal); err != nil {
				return err
			}
		}

		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelLoan, event.TypeLoanCreated, dto)
	return dto, nil
}

// Fund flips a CREATED peer loan to ACTIVE, pulling principal from the funder
// straight to the borrower.
func (u *Usecase) Fund(ctx context.Context, in FundLoanInput) (*LoanDTO, error) {
	if u.cfg.Mode != ModePeer {
		return nil, domain.ErrPeerFundingOnly
	}
	var dto *LoanDTO
	err := u.withLock(ctx, "loan:"+in.LoanID, func() error {
		return u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
			g, err := r.Guard.Get(ctx)
			if err != nil {
				return err
			}
			if err := g.RequireRunning(); err != nil {
				return err
			}
			if l.Status != domain.StatusCreated {
				return domain.ErrNotAvailableForFunding
			}

			now := time.Now().UTC()
			l.Status = domain.StatusActive
			l.Lender = in.Caller
			l.StartTime = now
			l.StateUpdatedAt = now
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}

			if err := r.Fungibles.TransferFrom(ctx, l.PaymentToken, u.cfg.EscrowAccount, in.Caller, l.Borrower, l.Principal); err != nil {
				return err
			}

			dto = toDTO(l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelLoan, event.TypeLoanFunded, dto)
	return dto, nil
}

// Repay settles principal plus accrued simple interest, returns the
// collateral, and counts the repayment in the borrower's history.
func (u *Usecase) Repay(ctx context.Context, in RepayLoanInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.withLock(ctx, "loan:"+in.LoanID, func() error {
		return u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
			g, err := r.Guard.Get(ctx)
			if err != nil {
				return err
			}
			if err := g.RequireRunning(); err != nil {
				return err
			}
			if l.Borrower != in.Caller {
				return domain.ErrNotBorrower
			}
			if l.Status != domain.StatusActive {
				return domain.ErrNotActive
			}

			now := time.Now().UTC()
			debt := l.Debt(now)
			l.Status = domain.StatusRepaid
			l.StateUpdatedAt = now
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			if err := r.Loans.IncrementRepaid(ctx, l.Borrower); err != nil {
				return err
			}

			if err := r.Fungibles.TransferFrom(ctx, l.PaymentToken, u.cfg.EscrowAccount, l.Borrower, l.Lender, debt); err != nil {
				return err
			}
			if err := r.Collateral.TransferFrom(ctx, l.NFTContract, u.cfg.EscrowAccount, u.cfg.EscrowAccount, l.Borrower, l.TokenID); err != nil {
				return err
			}

			dto = toDTO(l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelLoan, event.TypeLoanRepaid, dto)
	return dto, nil
}

// Cancel withdraws an unfunded peer loan, returning the escrowed collateral.
func (u *Usecase) Cancel(ctx context.Context, in CancelLoanInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.withLock(ctx, "loan:"+in.LoanID, func() error {
		return u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
			g, err := r.Guard.Get(ctx)
			if err != nil {
				return err
			}
			if err := g.RequireRunning(); err != nil {
				return err
			}
			if l.Borrower != in.Caller {
				return domain.ErrNotBorrower
			}
			if l.Status != domain.StatusCreated {
				return domain.ErrNotCancellable
			}

			l.Status = domain.StatusCancelled
			l.StateUpdatedAt = time.Now().UTC()
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			if err := r.Collateral.TransferFrom(ctx, l.NFTContract, u.cfg.EscrowAccount, u.cfg.EscrowAccount, l.Borrower, l.TokenID); err != nil {
				return err
			}

			dto = toDTO(l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelLoan, event.TypeLoanCancelled, dto)
	return dto, nil
}

// Liquidate is open to anyone once the loan is overdue or undercollateralized.
// The caller pays the outstanding debt to the lender and takes the collateral.
func (u *Usecase) Liquidate(ctx context.Context, in LiquidateLoanInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.withLock(ctx, "loan:"+in.LoanID, func() error {
		return u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
			g, err := r.Guard.Get(ctx)
			if err != nil {
				return err
			}
			if err := g.RequireRunning(); err != nil {
				return err
			}
			if l.Status != domain.StatusActive {
				return domain.ErrNotEligibleForLiquidation
			}

			now := time.Now().UTC()
			overdue := now.After(l.DueTime())
			if !overdue {
				v, err := r.Valuations.Get(ctx, l.NFTContract, l.TokenID)
				if err != nil {
					return err
				}
				if l.HealthFactor(v.Value, now).GreaterThanOrEqual(decimal.NewFromInt(1)) {
					return domain.ErrNotEligibleForLiquidation
				}
			}

			debt := l.Debt(now)
			l.Status = domain.StatusLiquidated
			l.StateUpdatedAt = now
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}

			if err := r.Fungibles.TransferFrom(ctx, l.PaymentToken, u.cfg.EscrowAccount, in.Caller, l.Lender, debt); err != nil {
				return err
			}
			if err := r.Collateral.TransferFrom(ctx, l.NFTContract, u.cfg.EscrowAccount, u.cfg.EscrowAccount, in.Caller, l.TokenID); err != nil {
				return err
			}

			dto = toDTO(l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelLoan, event.TypeLoanLiquidated, dto)
	return dto, nil
}

// Refinance settles the old loan and opens a new one on the same escrowed
// collateral, without round-tripping the NFT through the borrower's wallet.
func (u *Usecase) Refinance(ctx context.Context, in RefinanceLoanInput) (*RefinanceDTO, error) {
	if err := validateTerms(in.NewPrincipal, in.NewDurationSecs); err != nil {
		return nil, err
	}
	rate := in.InterestRateBps
	if rate == 0 {
		rate = u.cfg.DefaultRateBps
	}

	var dto *RefinanceDTO
	err := u.withLock(ctx, "loan:"+in.LoanID, func() error {
		return u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
			g, err := r.Guard.Get(ctx)
			if err != nil {
				return err
			}
			if err := g.RequireRunning(); err != nil {
				return err
			}
			if l.Borrower != in.Caller {
				return domain.ErrNotBorrower
			}
			if l.Status != domain.StatusActive {
				return domain.ErrNotActive
			}

			v, err := u.checkCollateral(ctx, r, l.NFTContract, l.TokenID, in.NewPaymentToken, in.NewPrincipal)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			debt := l.Debt(now)
			l.Status = domain.StatusRepaid
			l.StateUpdatedAt = now
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			if err := r.Loans.IncrementRepaid(ctx, l.Borrower); err != nil {
				return err
			}

			nl := &domain.Loan{
				LoanID:          id.NewID32(),
				NFTContract:     l.NFTContract,
				TokenID:         l.TokenID,
				Borrower:        l.Borrower,
				PaymentToken:    in.NewPaymentToken,
				Principal:       in.NewPrincipal,
				Rating:          v.Rating,
				InterestRateBps: rate,
				DurationSecs:    in.NewDurationSecs,
				Status:          domain.StatusCreated,
				StateUpdatedAt:  now,
			}
			if u.cfg.Mode == ModePool {
				nl.Status = domain.StatusActive
				nl.Lender = u.cfg.PoolAccount
				nl.StartTime = now
			}
			if err := r.Loans.Create(ctx, nl); err != nil {
				return err
			}

			// Settle the old debt, then disburse the new principal. The NFT
			// stays in escrow throughout.
			if err := r.Fungibles.TransferFrom(ctx, l.PaymentToken, u.cfg.EscrowAccount, l.Borrower, l.Lender, debt); err != nil {
				return err
			}
			if u.cfg.Mode == ModePool {
				if err := r.Fungibles.Transfer(ctx, in.NewPaymentToken, u.cfg.PoolAccount, l.Borrower, in.NewPrincipal); err != nil {
					return err
				}
			}

			dto = &RefinanceDTO{OldLoan: *toDTO(l), NewLoan: *toDTO(nl)}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelLoan, event.TypeRefinanceLoan, dto)
	return dto, nil
}

// EmergencyWithdrawNFT hands the collateral back during an incident. It is the
// one borrower operation gated on the paused state, and it bypasses repayment.
func (u *Usecase) EmergencyWithdrawNFT(ctx context.Context, in EmergencyWithdrawInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.withLock(ctx, "loan:"+in.LoanID, func() error {
		return u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
			g, err := r.Guard.Get(ctx)
			if err != nil {
				return err
			}
			if err := g.RequirePaused(); err != nil {
				return err
			}
			if l.Borrower != in.Caller {
				return domain.ErrNotBorrower
			}
			if l.Status.Terminal() {
				return domain.ErrInvalidTransition
			}

			l.Status = domain.StatusRepaid
			l.StateUpdatedAt = time.Now().UTC()
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			if err := r.Collateral.TransferFrom(ctx, l.NFTContract, u.cfg.EscrowAccount, u.cfg.EscrowAccount, l.Borrower, l.TokenID); err != nil {
				return err
			}

			dto = toDTO(l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.events.Emit(ctx, event.ChannelLoan, event.TypeEmergencyWithdrawNFT, dto)
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrower string, offset, limit int) ([]LoanDTO, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	var out []LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ls, err := r.Loans.ListByBorrower(ctx, borrower, offset, limit)
		if err != nil {
			return err
		}
		out = make([]LoanDTO, 0, len(ls))
		for i := range ls {
			out = append(out, *toDTO(&ls[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) History(ctx context.Context, borrower string) (*HistoryDTO, error) {
	var dto *HistoryDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		h, err := r.Loans.GetHistory(ctx, borrower)
		if err != nil {
			return err
		}
		dto = &HistoryDTO{Borrower: h.Borrower, RepaidCount: h.RepaidCount}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) SetSupportedContract(ctx context.Context, in SetSupportedContractInput) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guard.Get(ctx)
		if err != nil {
			return err
		}
		if err := g.RequireAdmin(in.Caller); err != nil {
			return err
		}
		return r.Loans.SetContractSupported(ctx, in.Contract, in.Enabled)
	})
}

func (u *Usecase) SetSupportedToken(ctx context.Context, in SetSupportedTokenInput) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guard.Get(ctx)
		if err != nil {
			return err
		}
		if err := g.RequireAdmin(in.Caller); err != nil {
			return err
		}
		return r.Loans.SetTokenSupported(ctx, in.Token, in.Enabled, in.Decimals)
	})
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:          l.LoanID,
		NFTContract:     l.NFTContract,
		TokenID:         l.TokenID,
		Borrower:        l.Borrower,
		Lender:          l.Lender,
		PaymentToken:    l.PaymentToken,
		Principal:       l.Principal,
		Rating:          string(l.Rating),
		InterestRateBps: l.InterestRateBps,
		StartTime:       l.StartTime,
		DurationSecs:    l.DurationSecs,
		Status:          string(l.Status),
		CreatedAt:       l.CreatedAt,
	}
}
