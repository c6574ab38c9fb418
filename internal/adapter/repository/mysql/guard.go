package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	guardDomain "nft-lending-backend/internal/domain/guard"
)

type GuardRepository struct{ db *gorm.DB }

func NewGuardRepository(db *gorm.DB) *GuardRepository { return &GuardRepository{db: db} }

func (r *GuardRepository) Get(ctx context.Context) (*guardDomain.Guard, error) {
	var out guardDomain.Guard
	res := r.db.WithContext(ctx).First(&out)
	return &out, res.Error
}

func (r *GuardRepository) GetForUpdate(ctx context.Context) (*guardDomain.Guard, error) {
	var out guardDomain.Guard
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&out)
	return &out, res.Error
}

func (r *GuardRepository) Save(ctx context.Context, g *guardDomain.Guard) error {
	return r.db.WithContext(ctx).Save(g).Error
}
