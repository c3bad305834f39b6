package captable

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Shareholders interface {
	repository.Repository[*Shareholder]

	GetByInviteToken(ctx context.Context, token string) (*Shareholder, error)
	GetByInviteTokenTx(ctx context.Context, tx bun.IDB, token string) (*Shareholder, error)
	GetByInvitedEmail(ctx context.Context, email string) (*Shareholder, error)
	MarkInvited(ctx context.Context, id uuid.UUID, token string) error
	ConsumeInviteTx(ctx context.Context, tx bun.IDB, id, userID uuid.UUID) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type shareholders struct {
	repository.Repository[*Shareholder]
	db *bun.DB
}

var _ Shareholders = (*shareholders)(nil)

func NewShareholdersRepository(db *bun.DB) Shareholders {
	repo := repository.NewRepository[*Shareholder](db, repository.ModelHandlers[*Shareholder]{
		NewRecord: func() *Shareholder { return &Shareholder{} },
		GetID: func(s *Shareholder) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *Shareholder, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
		GetIdentifier: func() string {
			return "invited_email"
		},
	})

	return &shareholders{
		Repository: repo,
		db:         db,
	}
}

func (r *shareholders) GetByInviteToken(ctx context.Context, token string) (*Shareholder, error) {
	return r.GetByInviteTokenTx(ctx, r.db, token)
}

// GetByInviteTokenTx resolves a shareholder by a live invite token. The
// consumed sentinel is never a valid lookup value.
func (r *shareholders) GetByInviteTokenTx(ctx context.Context, tx bun.IDB, token string) (*Shareholder, error) {
	if token == "" || token == InviteTokenConsumed {
		return nil, repository.NewRecordNotFound()
	}

	record := &Shareholder{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.invite_token = ?", token).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"invite_token": token,
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *shareholders) GetByInvitedEmail(ctx context.Context, email string) (*Shareholder, error) {
	record := &Shareholder{}
	err := r.db.NewSelect().
		Model(record).
		Where("lower(?TableAlias.invited_email) = lower(?)", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"invited_email": email,
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *shareholders) MarkInvited(ctx context.Context, id uuid.UUID, token string) error {
	res, err := r.db.NewUpdate().
		Model((*Shareholder)(nil)).
		Set("invite_token = ?", token).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

// ConsumeInviteTx invalidates the invite token and links the freshly
// created user, in the caller's transaction
func (r *shareholders) ConsumeInviteTx(ctx context.Context, tx bun.IDB, id, userID uuid.UUID) error {
	res, err := tx.NewUpdate().
		Model((*Shareholder)(nil)).
		Set("invite_token = ?", InviteTokenConsumed).
		Set("user_id = ?", userID).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func (r *shareholders) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return deleteByID[Shareholder](ctx, r.db, id)
}
