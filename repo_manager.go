package captable

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Users() Users
	Accounts() Accounts
	UserAccounts() repository.Repository[*UserAccount]
	Securities() Securities
	SecurityTransactions() SecurityTransactions
	Shareholders() Shareholders
}

func NewUserAccountsRepository(db *bun.DB) repository.Repository[*UserAccount] {
	handlers := repository.ModelHandlers[*UserAccount]{
		NewRecord: func() *UserAccount {
			return &UserAccount{}
		},
		GetID: func(record *UserAccount) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *UserAccount, id uuid.UUID) {
			record.ID = id
		},
	}
	return repository.NewRepository(db, handlers)
}

type mngr struct {
	db                   *bun.DB
	users                Users
	accounts             Accounts
	userAccounts         repository.Repository[*UserAccount]
	securities           Securities
	securityTransactions SecurityTransactions
	shareholders         Shareholders
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:                   db,
		users:                NewUsersRepository(db),
		accounts:             NewAccountsRepository(db),
		userAccounts:         NewUserAccountsRepository(db),
		securities:           NewSecuritiesRepository(db),
		securityTransactions: NewSecurityTransactionsRepository(db),
		shareholders:         NewShareholdersRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.accounts == nil {
		return errors.New("repository accounts should be initialized")
	}

	if m.userAccounts == nil {
		return errors.New("repository userAccounts should be initialized")
	}

	if m.securities == nil {
		return errors.New("repository securities should be initialized")
	}

	if m.securityTransactions == nil {
		return errors.New("repository securityTransactions should be initialized")
	}

	if m.shareholders == nil {
		return errors.New("repository shareholders should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users { return m.users }

func (m mngr) Accounts() Accounts { return m.accounts }

func (m mngr) UserAccounts() repository.Repository[*UserAccount] { return m.userAccounts }

func (m mngr) Securities() Securities { return m.securities }

func (m mngr) SecurityTransactions() SecurityTransactions { return m.securityTransactions }

func (m mngr) Shareholders() Shareholders { return m.shareholders }
