// Package tokenmock provides in-memory fungible and collateral ledgers for
// usecase tests. Unlike the function-backed repo mocks, these are stateful:
// most tests want real balance arithmetic, not stubs.
package tokenmock

import (
	"context"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"nft-lending-backend/internal/domain/token"
)

// Fungible is an in-memory token.FungibleLedger.
type Fungible struct {
	mu         sync.Mutex
	balances   map[string]decimal.Decimal // tok|account
	allowances map[string]decimal.Decimal // tok|owner|spender
}

func NewFungible() *Fungible {
	return &Fungible{
		balances:   make(map[string]decimal.Decimal),
		allowances: make(map[string]decimal.Decimal),
	}
}

func bkey(tok, account string) string { return tok + "|" + account }

func akey(tok, owner, spender string) string { return tok + "|" + owner + "|" + spender }

func (f *Fungible) Mint(_ context.Context, tok, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return token.ErrZeroAmount
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[bkey(tok, to)] = f.balances[bkey(tok, to)].Add(amount)
	return nil
}

func (f *Fungible) Transfer(_ context.Context, tok, from, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return token.ErrZeroAmount
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.move(tok, from, to, amount)
}

func (f *Fungible) TransferFrom(_ context.Context, tok, spender, from, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return token.ErrZeroAmount
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if spender != from {
		allowed := f.allowances[akey(tok, from, spender)]
		if allowed.LessThan(amount) {
			return token.ErrInsufficientAllowance
		}
		f.allowances[akey(tok, from, spender)] = allowed.Sub(amount)
	}
	return f.move(tok, from, to, amount)
}

func (f *Fungible) move(tok, from, to string, amount decimal.Decimal) error {
	if f.balances[bkey(tok, from)].LessThan(amount) {
		return token.ErrInsufficientBalance
	}
	f.balances[bkey(tok, from)] = f.balances[bkey(tok, from)].Sub(amount)
	f.balances[bkey(tok, to)] = f.balances[bkey(tok, to)].Add(amount)
	return nil
}

func (f *Fungible) Approve(_ context.Context, tok, owner, spender string, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allowances[akey(tok, owner, spender)] = amount
	return nil
}

func (f *Fungible) BalanceOf(_ context.Context, tok, account string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[bkey(tok, account)], nil
}

// Collateral is an in-memory token.CollateralLedger.
type Collateral struct {
	mu        sync.Mutex
	owners    map[string]string // contract|tokenID
	approved  map[string]string // contract|tokenID -> operator
	operators map[string]bool   // contract|owner|operator
}

func NewCollateral() *Collateral {
	return &Collateral{
		owners:    make(map[string]string),
		approved:  make(map[string]string),
		operators: make(map[string]bool),
	}
}

func nkey(contract string, tokenID uint64) string {
	return contract + "|" + strconv.FormatUint(tokenID, 10)
}

func okey(contract, owner, operator string) string {
	return contract + "|" + owner + "|" + operator
}

func (c *Collateral) Mint(_ context.Context, contract string, tokenID uint64, to string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.owners[nkey(contract, tokenID)] = to
	return nil
}

func (c *Collateral) OwnerOf(_ context.Context, contract string, tokenID uint64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	owner, ok := c.owners[nkey(contract, tokenID)]
	if !ok {
		return "", token.ErrUnknownNFT
	}
	return owner, nil
}

func (c *Collateral) TransferFrom(_ context.Context, contract, caller, from, to string, tokenID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := nkey(contract, tokenID)
	owner, ok := c.owners[key]
	if !ok {
		return token.ErrUnknownNFT
	}
	if owner != from {
		return token.ErrNotOwner
	}
	if caller != owner && c.approved[key] != caller && !c.operators[okey(contract, owner, caller)] {
		return token.ErrNotApproved
	}
	c.owners[key] = to
	delete(c.approved, key)
	return nil
}

func (c *Collateral) Approve(_ context.Context, contract, owner, operator string, tokenID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := nkey(contract, tokenID)
	if c.owners[key] != owner {
		return token.ErrNotOwner
	}
	c.approved[key] = operator
	return nil
}

func (c *Collateral) SetApprovalForAll(_ context.Context, contract, owner, operator string, approvedFlag bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if approvedFlag {
		c.operators[okey(contract, owner, operator)] = true
	} else {
		delete(c.operators, okey(contract, owner, operator))
	}
	return nil
}

func (c *Collateral) IsApprovedForAll(_ context.Context, contract, owner, operator string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.operators[okey(contract, owner, operator)], nil
}
