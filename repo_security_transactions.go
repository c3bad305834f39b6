package captable

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type SecurityTransactions interface {
	repository.Repository[*SecurityTransaction]

	ListByShareholder(ctx context.Context, shareholderID uuid.UUID) ([]*SecurityTransaction, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type securityTransactions struct {
	repository.Repository[*SecurityTransaction]
	db *bun.DB
}

var _ SecurityTransactions = (*securityTransactions)(nil)

func NewSecurityTransactionsRepository(db *bun.DB) SecurityTransactions {
	repo := repository.NewRepository[*SecurityTransaction](db, repository.ModelHandlers[*SecurityTransaction]{
		NewRecord: func() *SecurityTransaction { return &SecurityTransaction{} },
		GetID: func(t *SecurityTransaction) uuid.UUID {
			if t == nil {
				return uuid.Nil
			}
			return t.ID
		},
		SetID: func(t *SecurityTransaction, id uuid.UUID) {
			if t != nil {
				t.ID = id
			}
		},
	})

	return &securityTransactions{
		Repository: repo,
		db:         db,
	}
}

func (r *securityTransactions) ListByShareholder(ctx context.Context, shareholderID uuid.UUID) ([]*SecurityTransaction, error) {
	var records []*SecurityTransaction
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.shareholder_id = ?", shareholderID).
		Order("issue_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *securityTransactions) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return deleteByID[SecurityTransaction](ctx, r.db, id)
}
