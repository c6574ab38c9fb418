package guard

import (
	"errors"
	"time"
)

var (
	ErrNotAdmin        = errors.New("caller is not admin")
	ErrNotPendingAdmin = errors.New("caller is not the proposed admin")
	ErrPaused          = errors.New("operation unavailable while paused")
	ErrNotPaused       = errors.New("operation requires paused state")
	ErrEmptyAdmin      = errors.New("admin must not be empty")
)

// Guard is the single-row authorization and pause switch shared by every
// mutating operation. Admin transfer is two-phase: the current admin proposes,
// the proposed admin accepts.
type Guard struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	Admin        string    `gorm:"size:32" json:"admin"`
	PendingAdmin string    `gorm:"size:32" json:"pending_admin,omitempty"`
	Paused       bool      `json:"paused"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Guard) TableName() string { return "access_guard" }

// RequireAdmin returns ErrNotAdmin unless caller matches the stored admin.
func (g *Guard) RequireAdmin(caller string) error {
	if caller == "" || caller != g.Admin {
		return ErrNotAdmin
	}
	return nil
}

// RequireRunning gates ordinary business operations.
func (g *Guard) RequireRunning() error {
	if g.Paused {
		return ErrPaused
	}
	return nil
}

// RequirePaused gates the emergency-recovery operations. The asymmetry with
// RequireRunning is intentional: users cannot be forced to act during an
// incident, and the admin cannot run ordinary flows while responding to one.
func (g *Guard) RequirePaused() error {
	if !g.Paused {
		return ErrNotPaused
	}
	return nil
}
