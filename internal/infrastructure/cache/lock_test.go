package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"nft-lending-backend/internal/domain/lock"
)

func newTestLockManager(t *testing.T) (*LockManager, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	c, err := OpenRedis(s.Addr(), 0)
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return NewLockManager(c), s
}

func TestLockManager_AcquireRelease(t *testing.T) {
	lm, _ := newTestLockManager(t)
	ctx := context.Background()

	unlock, err := lm.Acquire(ctx, "loan:abc", 10*time.Second)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	if _, err := lm.Acquire(ctx, "loan:abc", 10*time.Second); !errors.Is(err, lock.ErrHeld) {
		t.Fatalf("second acquire: err = %v, want ErrHeld", err)
	}

	// a different key is unaffected
	unlock2, err := lm.Acquire(ctx, "stake:7", 10*time.Second)
	if err != nil {
		t.Fatalf("other key: %v", err)
	}
	unlock2()

	unlock()
	unlock() // second release is a no-op

	if _, err := lm.Acquire(ctx, "loan:abc", 10*time.Second); err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
}

func TestLockManager_StaleUnlockKeepsNewHolder(t *testing.T) {
	lm, s := newTestLockManager(t)
	ctx := context.Background()

	staleUnlock, err := lm.Acquire(ctx, "loan:abc", time.Second)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	// let the first lock expire, then hand the key to a new holder
	s.FastForward(2 * time.Second)
	if _, err := lm.Acquire(ctx, "loan:abc", 10*time.Second); err != nil {
		t.Fatalf("acquire after expiry: %v", err)
	}

	// the stale holder's release must not free the new holder's lock
	staleUnlock()
	if _, err := lm.Acquire(ctx, "loan:abc", 10*time.Second); !errors.Is(err, lock.ErrHeld) {
		t.Fatalf("lock was stolen by stale unlock: err = %v", err)
	}
}
