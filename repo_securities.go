package captable

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Securities interface {
	repository.Repository[*Security]

	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Security, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type securities struct {
	repository.Repository[*Security]
	db *bun.DB
}

var _ Securities = (*securities)(nil)

func NewSecuritiesRepository(db *bun.DB) Securities {
	repo := repository.NewRepository[*Security](db, repository.ModelHandlers[*Security]{
		NewRecord: func() *Security { return &Security{} },
		GetID: func(s *Security) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *Security, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
		GetIdentifier: func() string {
			return "name"
		},
	})

	return &securities{
		Repository: repo,
		db:         db,
	}
}

func (r *securities) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Security, error) {
	var records []*Security
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.account_id = ?", accountID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *securities) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return deleteByID[Security](ctx, r.db, id)
}
