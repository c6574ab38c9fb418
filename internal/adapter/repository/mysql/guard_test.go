package mysql

import (
	"context"
	"strings"
	"testing"

	guardDomain "nft-lending-backend/internal/domain/guard"
)

func TestGuard_SaveAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuardRepository(db)
	ctx := context.Background()

	admin := strings.Repeat("a", 32)
	if err := repo.Save(ctx, &guardDomain.Guard{Admin: admin}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Admin != admin || got.Paused {
		t.Fatalf("unexpected guard row: %+v", got)
	}

	got.Paused = true
	got.PendingAdmin = strings.Repeat("b", 32)
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	again, err := repo.GetForUpdate(ctx)
	if err != nil {
		t.Fatalf("GetForUpdate: %v", err)
	}
	if !again.Paused || again.PendingAdmin != got.PendingAdmin {
		t.Fatalf("update not persisted: %+v", again)
	}
	if again.ID != got.ID {
		t.Fatalf("expected a single row, ids %d and %d", got.ID, again.ID)
	}
}
