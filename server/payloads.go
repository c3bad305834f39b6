package server

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/ishulabs/captable"
)

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// passwordStrength enforces the account password policy: at least five
// characters, with at least one letter and one digit.
func passwordStrength(value interface{}) error {
	password, _ := value.(string)
	if password == "" {
		return nil
	}
	if len(password) < 5 {
		return errors.New("must be at least 5 characters", errors.CategoryValidation)
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return errors.New("must contain at least one letter and one digit", errors.CategoryValidation)
	}
	return nil
}

// phoneNumber accepts any number phonenumbers can parse, defaulting to US
// formatting when no country prefix is present
func phoneNumber(value interface{}) error {
	phone, _ := value.(string)
	if phone == "" {
		return nil
	}
	parsed, err := phonenumbers.Parse(phone, "US")
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return errors.New("must be a valid phone number", errors.CategoryValidation)
	}
	return nil
}

type SignUpPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

func (p SignUpPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FirstName, validation.Required),
		validation.Field(&p.LastName, validation.Required),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required, validation.By(passwordStrength)),
		validation.Field(&p.Phone, validation.By(phoneNumber)),
	)
}

type SignInPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p SignInPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

type ChangePasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (p ChangePasswordPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.CurrentPassword, validation.Required),
		validation.Field(&p.NewPassword, validation.Required, validation.By(passwordStrength)),
	)
}

type AccountPayload struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	IncDate     *time.Time `json:"inc_date"`
	Website     string     `json:"website"`
	Currency    string     `json:"currency"`
	Country     string     `json:"country"`
	State       string     `json:"state"`
	CompanyType string     `json:"company_type"`
	Funding     string     `json:"funding"`
}

func (p AccountPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, is.UUID),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Website, is.URL),
		validation.Field(&p.Funding, validation.In(fundingStageValues()...)),
	)
}

// Model maps the payload onto an Account record; the caller assigns or
// keeps the ID
func (p AccountPayload) Model() *captable.Account {
	accountType := p.Type
	if accountType == "" {
		accountType = "company"
	}
	return &captable.Account{
		Type:        accountType,
		Name:        p.Name,
		IncDate:     p.IncDate,
		Website:     p.Website,
		Currency:    p.Currency,
		Country:     p.Country,
		State:       p.State,
		CompanyType: p.CompanyType,
		Funding:     p.Funding,
	}
}

type SecurityPayload struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Authorized  int64  `json:"authorized"`
	Liquidation string `json:"liquidation"`
}

func (p SecurityPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, is.UUID),
		validation.Field(&p.AccountID, validation.Required, is.UUID),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Type, validation.Required, validation.In(securityTypeValues()...)),
		validation.Field(&p.Authorized, validation.Min(0)),
	)
}

func (p SecurityPayload) Model() (*captable.Security, error) {
	accountID, err := uuid.Parse(p.AccountID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "invalid account id")
	}
	return &captable.Security{
		Name:        p.Name,
		Type:        p.Type,
		Authorized:  p.Authorized,
		Liquidation: p.Liquidation,
		AccountID:   &accountID,
	}, nil
}

type SecurityTransactionPayload struct {
	ID              string     `json:"id"`
	Status          bool       `json:"status"`
	Shares          int64      `json:"shares"`
	Price           int64      `json:"price"`
	Restricted      bool       `json:"restricted"`
	RestrictedUntil *time.Time `json:"restricted_until"`
	IssueDate       *time.Time `json:"issue_date"`
	SecurityID      string     `json:"security_id"`
	ShareholderID   string     `json:"shareholder_id"`
}

func (p SecurityTransactionPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, is.UUID),
		validation.Field(&p.SecurityID, validation.Required, is.UUID),
		validation.Field(&p.ShareholderID, validation.Required, is.UUID),
		validation.Field(&p.Shares, validation.Required, validation.Min(1)),
		validation.Field(&p.Price, validation.Min(0)),
	)
}

func (p SecurityTransactionPayload) Model() (*captable.SecurityTransaction, error) {
	securityID, err := uuid.Parse(p.SecurityID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "invalid security id")
	}
	shareholderID, err := uuid.Parse(p.ShareholderID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "invalid shareholder id")
	}
	return &captable.SecurityTransaction{
		Status:          p.Status,
		Shares:          p.Shares,
		Price:           p.Price,
		Restricted:      p.Restricted,
		RestrictedUntil: p.RestrictedUntil,
		IssueDate:       p.IssueDate,
		SecurityID:      &securityID,
		ShareholderID:   &shareholderID,
	}, nil
}

type ShareholderPayload struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	InvitedEmail string `json:"invited_email"`
	Address      string `json:"address"`
}

func (p ShareholderPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, is.UUID),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Type, validation.In(shareholderTypeValues()...)),
		validation.Field(&p.InvitedEmail, is.Email),
	)
}

func (p ShareholderPayload) Model() *captable.Shareholder {
	return &captable.Shareholder{
		Name:         p.Name,
		Type:         p.Type,
		InvitedEmail: normalizeEmail(p.InvitedEmail),
		Address:      p.Address,
	}
}

type InvitePayload struct {
	Email string `json:"email"`
}

func (p InvitePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
	)
}

// InviteAcceptPayload carries no email on purpose: the account is always
// created under the address the invite was sent to.
type InviteAcceptPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

func (p InviteAcceptPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FirstName, validation.Required),
		validation.Field(&p.LastName, validation.Required),
		validation.Field(&p.Password, validation.Required, validation.By(passwordStrength)),
	)
}

// CaptableInitPayload seeds a whole account in one request: the company, its
// share classes, and its initial shareholders.
type CaptableInitPayload struct {
	Account      AccountPayload       `json:"account"`
	Securities   []SecurityInit       `json:"securities"`
	Shareholders []ShareholderPayload `json:"shareholders"`
}

// SecurityInit is a security created alongside its account, so it carries
// no account id of its own
type SecurityInit struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Authorized  int64  `json:"authorized"`
	Liquidation string `json:"liquidation"`
}

func (p SecurityInit) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Type, validation.Required, validation.In(securityTypeValues()...)),
		validation.Field(&p.Authorized, validation.Min(0)),
	)
}

func (p CaptableInitPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Account, validation.Required),
		validation.Field(&p.Securities, validation.Required),
		validation.Field(&p.Shareholders),
	)
}

// normalizeEmail matches how accounts store addresses so lookups and
// uniqueness checks agree regardless of input casing
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func fundingStageValues() []interface{} {
	return []interface{}{
		captable.FundingNone,
		captable.FundingNotesOnly,
		captable.FundingSeed,
		captable.FundingSeriesA,
	}
}

func securityTypeValues() []interface{} {
	return []interface{}{
		captable.SecurityWarrant,
		captable.SecurityPreferredStock,
		captable.SecurityCommonStock,
		captable.SecurityOption,
	}
}

func shareholderTypeValues() []interface{} {
	return []interface{}{
		captable.ShareholderIndividual,
		captable.ShareholderNonIndividual,
	}
}
