package valuation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/guard"
	"nft-lending-backend/internal/domain/uow"
	domain "nft-lending-backend/internal/domain/valuation"
	"nft-lending-backend/internal/testutil/guardmock"
	"nft-lending-backend/internal/testutil/uowmock"
	"nft-lending-backend/internal/testutil/valuationmock"
)

var (
	adminID = strings.Repeat("a", 32)
	userID  = strings.Repeat("b", 32)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUsecase(g *guardmock.Repo) (*Usecase, map[string]*domain.Valuation) {
	store := map[string]*domain.Valuation{}
	vrepo := &valuationmock.Repo{
		UpsertFn: func(_ context.Context, v *domain.Valuation) error {
			store[v.Collection+"/"+decimal.NewFromUint64(v.TokenID).String()] = v
			return nil
		},
		GetFn: func(_ context.Context, collection string, tokenID uint64) (*domain.Valuation, error) {
			v, ok := store[collection+"/"+decimal.NewFromUint64(tokenID).String()]
			if !ok {
				return nil, domain.ErrNotValued
			}
			return v, nil
		},
	}
	repos := uow.Repos{Guard: g, Valuations: vrepo}
	return NewUsecase(uowmock.Passthrough(repos), event.NewPublisher(nil, nil), Config{MaxBatchSize: 3}), store
}

func TestSet(t *testing.T) {
	uc, _ := newUsecase(guardmock.Running(adminID))

	dto, err := uc.Set(context.Background(), SetInput{
		Caller: adminID, Collection: "punks", TokenID: 1, Value: dec("10"), Rating: "A",
	})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if dto.Rating != "A" || !dto.Value.Equal(dec("10")) {
		t.Fatalf("dto = %+v", dto)
	}

	got, err := uc.Get(context.Background(), "punks", 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Value.Equal(dec("10")) {
		t.Fatalf("value = %s, want 10", got.Value)
	}
}

func TestSet_Validation(t *testing.T) {
	uc, _ := newUsecase(guardmock.Running(adminID))

	cases := []struct {
		name    string
		in      SetInput
		wantErr error
	}{
		{"bad rating", SetInput{Caller: adminID, Collection: "punks", TokenID: 1, Value: dec("10"), Rating: "X"}, domain.ErrBadRating},
		{"zero value", SetInput{Caller: adminID, Collection: "punks", TokenID: 1, Value: dec("0"), Rating: "A"}, domain.ErrZeroValue},
		{"non-admin", SetInput{Caller: userID, Collection: "punks", TokenID: 1, Value: dec("10"), Rating: "A"}, guard.ErrNotAdmin},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := uc.Set(context.Background(), c.in); !errors.Is(err, c.wantErr) {
				t.Fatalf("err = %v, want %v", err, c.wantErr)
			}
		})
	}
}

func TestSet_Paused(t *testing.T) {
	uc, _ := newUsecase(guardmock.Paused(adminID))
	if _, err := uc.Set(context.Background(), SetInput{
		Caller: adminID, Collection: "punks", TokenID: 1, Value: dec("10"), Rating: "A",
	}); !errors.Is(err, guard.ErrPaused) {
		t.Fatalf("err = %v, want ErrPaused", err)
	}
}

func TestBatchSet(t *testing.T) {
	uc, store := newUsecase(guardmock.Running(adminID))

	dtos, err := uc.BatchSet(context.Background(), BatchSetInput{
		Caller:     adminID,
		Collection: "punks",
		TokenIDs:   []uint64{1, 2, 3},
		Values:     []decimal.Decimal{dec("1"), dec("2"), dec("3")},
		Ratings:    []string{"S", "A", "D"},
	})
	if err != nil {
		t.Fatalf("BatchSet: %v", err)
	}
	if len(dtos) != 3 {
		t.Fatalf("len = %d, want 3", len(dtos))
	}
	if len(store) != 3 {
		t.Fatalf("store len = %d, want 3", len(store))
	}
}

func TestBatchSet_AllOrNothing(t *testing.T) {
	uc, store := newUsecase(guardmock.Running(adminID))

	cases := []struct {
		name    string
		in      BatchSetInput
		wantErr error
	}{
		{
			"length mismatch",
			BatchSetInput{
				Caller: adminID, Collection: "punks",
				TokenIDs: []uint64{1, 2},
				Values:   []decimal.Decimal{dec("1")},
				Ratings:  []string{"A", "A"},
			},
			domain.ErrLengthMismatch,
		},
		{
			"over max size",
			BatchSetInput{
				Caller: adminID, Collection: "punks",
				TokenIDs: []uint64{1, 2, 3, 4},
				Values:   []decimal.Decimal{dec("1"), dec("2"), dec("3"), dec("4")},
				Ratings:  []string{"A", "A", "A", "A"},
			},
			domain.ErrBatchTooLarge,
		},
		{
			"empty batch",
			BatchSetInput{Caller: adminID, Collection: "punks"},
			domain.ErrBatchTooLarge,
		},
		{
			"one bad entry poisons the batch",
			BatchSetInput{
				Caller: adminID, Collection: "punks",
				TokenIDs: []uint64{1, 2},
				Values:   []decimal.Decimal{dec("1"), dec("0")},
				Ratings:  []string{"A", "A"},
			},
			domain.ErrZeroValue,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := uc.BatchSet(context.Background(), c.in); !errors.Is(err, c.wantErr) {
				t.Fatalf("err = %v, want %v", err, c.wantErr)
			}
			if len(store) != 0 {
				t.Fatalf("store must stay empty, len = %d", len(store))
			}
		})
	}
}

func TestGet_NotValued(t *testing.T) {
	uc, _ := newUsecase(guardmock.Running(adminID))
	if _, err := uc.Get(context.Background(), "punks", 99); !errors.Is(err, domain.ErrNotValued) {
		t.Fatalf("err = %v, want ErrNotValued", err)
	}
}

func TestSetFloorPrice(t *testing.T) {
	uc, _ := newUsecase(guardmock.Running(adminID))

	if err := uc.SetFloorPrice(context.Background(), SetFloorPriceInput{
		Caller: adminID, Collection: "punks", FloorPrice: dec("0"),
	}); !errors.Is(err, domain.ErrZeroValue) {
		t.Fatalf("zero floor: err = %v", err)
	}
	if err := uc.SetFloorPrice(context.Background(), SetFloorPriceInput{
		Caller: adminID, Collection: "punks", FloorPrice: dec("2.5"),
	}); err != nil {
		t.Fatalf("SetFloorPrice: %v", err)
	}
}
