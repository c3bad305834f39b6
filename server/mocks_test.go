package server

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"

	"github.com/ishulabs/captable"
)

// The mocks embed the repository interfaces so only the methods a test
// exercises need stubbing; calling anything else panics loudly.

type mockUsers struct {
	mock.Mock
	captable.Users
}

func (m *mockUsers) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*captable.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.User), args.Error(1)
}

func (m *mockUsers) Register(ctx context.Context, user *captable.User) (*captable.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.User), args.Error(1)
}

func (m *mockUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *captable.User) (*captable.User, error) {
	args := m.Called(ctx, tx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.User), args.Error(1)
}

func (m *mockUsers) EmailTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUsers) ChangePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockUsers) TrackAttemptedLogin(ctx context.Context, user *captable.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUsers) TrackSuccessfulLogin(ctx context.Context, user *captable.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockAccounts struct {
	mock.Mock
	captable.Accounts
}

func (m *mockAccounts) Create(ctx context.Context, record *captable.Account, criteria ...repository.InsertCriteria) (*captable.Account, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Account), args.Error(1)
}

func (m *mockAccounts) CreateTx(ctx context.Context, tx bun.IDB, record *captable.Account, criteria ...repository.InsertCriteria) (*captable.Account, error) {
	args := m.Called(ctx, tx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Account), args.Error(1)
}

func (m *mockAccounts) Update(ctx context.Context, record *captable.Account, criteria ...repository.UpdateCriteria) (*captable.Account, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Account), args.Error(1)
}

func (m *mockAccounts) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*captable.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Account), args.Error(1)
}

func (m *mockAccounts) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserAccounts struct {
	mock.Mock
	repository.Repository[*captable.UserAccount]
}

func (m *mockUserAccounts) Create(ctx context.Context, record *captable.UserAccount, criteria ...repository.InsertCriteria) (*captable.UserAccount, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.UserAccount), args.Error(1)
}

func (m *mockUserAccounts) CreateTx(ctx context.Context, tx bun.IDB, record *captable.UserAccount, criteria ...repository.InsertCriteria) (*captable.UserAccount, error) {
	args := m.Called(ctx, tx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.UserAccount), args.Error(1)
}

type mockSecurities struct {
	mock.Mock
	captable.Securities
}

func (m *mockSecurities) Create(ctx context.Context, record *captable.Security, criteria ...repository.InsertCriteria) (*captable.Security, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Security), args.Error(1)
}

func (m *mockSecurities) CreateTx(ctx context.Context, tx bun.IDB, record *captable.Security, criteria ...repository.InsertCriteria) (*captable.Security, error) {
	args := m.Called(ctx, tx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Security), args.Error(1)
}

func (m *mockSecurities) Update(ctx context.Context, record *captable.Security, criteria ...repository.UpdateCriteria) (*captable.Security, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Security), args.Error(1)
}

func (m *mockSecurities) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*captable.Security, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Security), args.Error(1)
}

func (m *mockSecurities) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*captable.Security, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*captable.Security), args.Error(1)
}

func (m *mockSecurities) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockSecurityTransactions struct {
	mock.Mock
	captable.SecurityTransactions
}

func (m *mockSecurityTransactions) Create(ctx context.Context, record *captable.SecurityTransaction, criteria ...repository.InsertCriteria) (*captable.SecurityTransaction, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.SecurityTransaction), args.Error(1)
}

func (m *mockSecurityTransactions) Update(ctx context.Context, record *captable.SecurityTransaction, criteria ...repository.UpdateCriteria) (*captable.SecurityTransaction, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.SecurityTransaction), args.Error(1)
}

func (m *mockSecurityTransactions) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*captable.SecurityTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.SecurityTransaction), args.Error(1)
}

func (m *mockSecurityTransactions) ListByShareholder(ctx context.Context, shareholderID uuid.UUID) ([]*captable.SecurityTransaction, error) {
	args := m.Called(ctx, shareholderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*captable.SecurityTransaction), args.Error(1)
}

func (m *mockSecurityTransactions) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockShareholders struct {
	mock.Mock
	captable.Shareholders
}

func (m *mockShareholders) Create(ctx context.Context, record *captable.Shareholder, criteria ...repository.InsertCriteria) (*captable.Shareholder, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Shareholder), args.Error(1)
}

func (m *mockShareholders) CreateTx(ctx context.Context, tx bun.IDB, record *captable.Shareholder, criteria ...repository.InsertCriteria) (*captable.Shareholder, error) {
	args := m.Called(ctx, tx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Shareholder), args.Error(1)
}

func (m *mockShareholders) Update(ctx context.Context, record *captable.Shareholder, criteria ...repository.UpdateCriteria) (*captable.Shareholder, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Shareholder), args.Error(1)
}

func (m *mockShareholders) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*captable.Shareholder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Shareholder), args.Error(1)
}

func (m *mockShareholders) GetByInviteToken(ctx context.Context, token string) (*captable.Shareholder, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Shareholder), args.Error(1)
}

func (m *mockShareholders) GetByInvitedEmail(ctx context.Context, email string) (*captable.Shareholder, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captable.Shareholder), args.Error(1)
}

func (m *mockShareholders) MarkInvited(ctx context.Context, id uuid.UUID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *mockShareholders) ConsumeInviteTx(ctx context.Context, tx bun.IDB, id, userID uuid.UUID) error {
	args := m.Called(ctx, tx, id, userID)
	return args.Error(0)
}

func (m *mockShareholders) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockRepo aggregates the mocks behind the manager interface. RunInTx just
// invokes the callback; nothing here touches a real database.
type mockRepo struct {
	users        *mockUsers
	accounts     *mockAccounts
	userAccounts *mockUserAccounts
	securities   *mockSecurities
	transactions *mockSecurityTransactions
	shareholders *mockShareholders
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		users:        new(mockUsers),
		accounts:     new(mockAccounts),
		userAccounts: new(mockUserAccounts),
		securities:   new(mockSecurities),
		transactions: new(mockSecurityTransactions),
		shareholders: new(mockShareholders),
	}
}

func (m *mockRepo) Validate() error { return nil }

func (m *mockRepo) MustValidate() {}

func (m *mockRepo) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *mockRepo) Users() captable.Users { return m.users }

func (m *mockRepo) Accounts() captable.Accounts { return m.accounts }

func (m *mockRepo) UserAccounts() repository.Repository[*captable.UserAccount] {
	return m.userAccounts
}

func (m *mockRepo) Securities() captable.Securities { return m.securities }

func (m *mockRepo) SecurityTransactions() captable.SecurityTransactions { return m.transactions }

func (m *mockRepo) Shareholders() captable.Shareholders { return m.shareholders }

// recordingMailer captures outgoing mail for assertions
type recordingMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to, subject, body string
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return m.err
}
