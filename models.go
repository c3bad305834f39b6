package captable

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AccountRole is a user's role within an account
type AccountRole = string

const (
	// RoleOwner created the account
	RoleOwner AccountRole = "owner"
	// RoleEmployee is company staff
	RoleEmployee AccountRole = "employee"
	// RoleShareholder holds equity
	RoleShareholder AccountRole = "shareholder"
	// RoleIssuer can issue securities
	RoleIssuer AccountRole = "issuer"
)

// SecurityType is the class of an equity security
type SecurityType = string

const (
	SecurityWarrant        SecurityType = "warrant"
	SecurityPreferredStock SecurityType = "preferred_stock"
	SecurityCommonStock    SecurityType = "common_stock"
	SecurityOption         SecurityType = "option"
)

// ShareholderType distinguishes people from entities
type ShareholderType = string

const (
	ShareholderIndividual    ShareholderType = "individual"
	ShareholderNonIndividual ShareholderType = "non-individual"
)

// FundingStage is the self-reported funding status of a company
type FundingStage = string

const (
	FundingNone      FundingStage = "Not Raised Any Money"
	FundingNotesOnly FundingStage = "Raised Via Notes Only"
	FundingSeed      FundingStage = "Seed Stage"
	FundingSeriesA   FundingStage = "Series A or Later"
)

// User is the user model. Emails are stored lowercase; PasswordHash holds the
// keyed digest, never the plaintext.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName      string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName       string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone          string     `bun:"phone_number" json:"phone_number,omitempty"`
	PasswordHash   string     `bun:"password_hash" json:"-"`
	EmailConfirmed bool       `bun:"email_confirmed" json:"email_confirmed,omitempty"`
	LoginAttempts  int        `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt *time.Time `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	LoggedInAt     *time.Time `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Account is a company record, the root of a cap table
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`
	ID            uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Type          string       `bun:"account_type" json:"type,omitempty"`
	Name          string       `bun:"name,notnull" json:"name,omitempty"`
	IncDate       *time.Time   `bun:"inc_date" json:"inc_date,omitempty"`
	Website       string       `bun:"website" json:"website,omitempty"`
	Currency      string       `bun:"currency" json:"currency,omitempty"`
	Country       string       `bun:"country" json:"country,omitempty"`
	State         string       `bun:"state" json:"state,omitempty"`
	CompanyType   string       `bun:"company_type" json:"company_type,omitempty"`
	Funding       FundingStage `bun:"funding" json:"funding,omitempty"`
	CreatedAt     *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time   `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`

	Securities []*Security `bun:"rel:has-many,join:id=account_id" json:"securities,omitempty"`
}

// UserAccount links a user to an account with a role
type UserAccount struct {
	bun.BaseModel `bun:"table:user_accounts,alias:uacc"`
	ID            uuid.UUID   `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        *uuid.UUID  `bun:"user_id,type:uuid" json:"user_id,omitempty"`
	AccountID     *uuid.UUID  `bun:"account_id,notnull,type:uuid" json:"account_id,omitempty"`
	ShareholderID *uuid.UUID  `bun:"shareholder_id,type:uuid" json:"shareholder_id,omitempty"`
	Role          AccountRole `bun:"account_role" json:"role,omitempty"`
	CreatedAt     *time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time  `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`

	User    *User    `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Account *Account `bun:"rel:belongs-to,join:account_id=id" json:"account,omitempty"`
}

// Security is an equity class authorized by an account. Warrants and options
// reference a parent stock class through Liquidation.
type Security struct {
	bun.BaseModel `bun:"table:securities,alias:sec"`
	ID            uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string       `bun:"name" json:"name,omitempty"`
	Type          SecurityType `bun:"security_type" json:"type,omitempty"`
	Authorized    int64        `bun:"authorized" json:"authorized,omitempty"`
	Liquidation   string       `bun:"liquidation" json:"liquidation,omitempty"`
	AccountID     *uuid.UUID   `bun:"account_id,type:uuid" json:"account_id,omitempty"`
	CreatedAt     *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time   `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`

	Account *Account `bun:"rel:belongs-to,join:account_id=id" json:"account,omitempty"`
}

// SecurityTransaction records an issuance of shares to a shareholder.
// Price is in cents.
type SecurityTransaction struct {
	bun.BaseModel   `bun:"table:securities_transactions,alias:sectx"`
	ID              uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Status          bool       `bun:"status" json:"status,omitempty"`
	Shares          int64      `bun:"shares" json:"shares,omitempty"`
	Price           int64      `bun:"price" json:"price,omitempty"`
	Restricted      bool       `bun:"restricted,notnull,default:false" json:"restricted,omitempty"`
	RestrictedUntil *time.Time `bun:"restricted_until" json:"restricted_until,omitempty"`
	IssueDate       *time.Time `bun:"issue_date" json:"issue_date,omitempty"`
	SecurityID      *uuid.UUID `bun:"security_id,type:uuid" json:"security_id,omitempty"`
	ShareholderID   *uuid.UUID `bun:"shareholder_id,type:uuid" json:"shareholder_id,omitempty"`
	CreatedAt       *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt       *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`

	Security    *Security    `bun:"rel:belongs-to,join:security_id=id" json:"security,omitempty"`
	Shareholder *Shareholder `bun:"rel:belongs-to,join:shareholder_id=id" json:"shareholder,omitempty"`
}

// Shareholder is a prospective or actual equity holder. A non-empty
// InviteToken means "already invited"; once the invite is accepted the
// token is replaced with InviteTokenConsumed and UserID is set.
type Shareholder struct {
	bun.BaseModel `bun:"table:shareholders,alias:shr"`
	ID            uuid.UUID       `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string          `bun:"name" json:"name,omitempty"`
	Type          ShareholderType `bun:"shareholder_type" json:"type,omitempty"`
	InvitedEmail  string          `bun:"invited_email" json:"invited_email,omitempty"`
	Address       string          `bun:"address" json:"address,omitempty"`
	UserID        *uuid.UUID      `bun:"user_id,type:uuid" json:"user_id,omitempty"`
	InviteToken   string          `bun:"invite_token" json:"invite_token,omitempty"`
	CreatedAt     *time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time      `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

// Invited reports whether this shareholder already holds an invite token
func (s *Shareholder) Invited() bool {
	return s != nil && s.InviteToken != ""
}
